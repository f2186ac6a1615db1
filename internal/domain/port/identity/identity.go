package identity

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
)

// Identity is the verified caller extracted from a bearer token.
// Role is the token's role claim when present; empty means the caller's role
// must be resolved from the profile store.
type Identity struct {
	UID      string
	Email    string
	Role     string
	Issuer   string
	IssuedAt int64
}

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	// Verify parses and validates a raw bearer token
	//
	// Possible errors:
	// - ErrUnauthenticated: if the token is missing, malformed or expired
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Directory manages identity accounts (credentials, email verification).
// It is deliberately separate from the profile store: the domain only ever
// consumes a verified (uid, role) pair.
type Directory interface {
	// CreateAccount registers a new account and returns it
	//
	// Possible errors:
	// - ErrPasswordTooWeak: if the password is under the minimum length
	// - ErrDuplicateAccount: if the email is already registered
	CreateAccount(ctx context.Context, email, password string, disabled bool) (*entity.Account, error)

	// GetAccount retrieves an account by uid
	GetAccount(ctx context.Context, uid string) (*entity.Account, error)

	// GetAccountByEmail retrieves an account by email
	GetAccountByEmail(ctx context.Context, email string) (*entity.Account, error)

	// SetEmailVerified flips the verification flag
	SetEmailVerified(ctx context.Context, uid string, verified bool) error

	// SetDisabled enables or disables sign-in for the account
	SetDisabled(ctx context.Context, uid string, disabled bool) error

	// DeleteAccount removes the account; deleting a missing account is not an error
	DeleteAccount(ctx context.Context, uid string) error

	// VerificationLink builds a signed email-verification link for the address
	VerificationLink(ctx context.Context, email string) (string, error)
}

package user

import (
	"context"
	"strings"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	identityport "github.com/cloudai/owner-console/internal/domain/port/identity"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
)

// MaxListLimit caps one page of the user list
const MaxListLimit = 500

// UserUseCase handles user profile management. Profile documents live in the
// store; credentials and email verification live in the identity directory.
type UserUseCase struct {
	users        persistence.UserRepository
	directory    identityport.Directory
	cascade      cascade.Runner
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewUserUseCase creates a new UserUseCase
func NewUserUseCase(
	users persistence.UserRepository,
	directory identityport.Directory,
	runner cascade.Runner,
	timeProvider coreport.TimeProvider,
	logger coreport.Logger,
) *UserUseCase {
	return &UserUseCase{
		users:        users,
		directory:    directory,
		cascade:      runner,
		timeProvider: timeProvider,
		logger:       logger,
	}
}

// ListedUser is one row of the console user list
type ListedUser struct {
	User          *entity.User
	EmailVerified bool
}

// List returns a page of profiles with the directory verification flag joined
// in. Directory lookups are best effort; a missing account reads as
// unverified.
func (u *UserUseCase) List(ctx context.Context, p persistence.UserListParams) ([]ListedUser, error) {
	if p.Limit <= 0 || p.Limit > MaxListLimit {
		p.Limit = MaxListLimit
	}
	if p.Role != "" && !entity.ValidRole(p.Role) {
		return nil, errs.ErrInvalidRole
	}
	if p.Status != "" && !entity.ValidUserStatus(p.Status) {
		return nil, errs.ErrInvalidStatus
	}

	rows, err := u.users.List(ctx, p)
	if err != nil {
		return nil, err
	}

	out := make([]ListedUser, 0, len(rows))
	for _, row := range rows {
		verified := false
		if acct, err := u.directory.GetAccount(ctx, row.UID); err == nil && acct != nil {
			verified = acct.EmailVerified
		}
		out = append(out, ListedUser{User: row, EmailVerified: verified})
	}
	return out, nil
}

// Get retrieves one profile by uid or email, with the verification flag.
func (u *UserUseCase) Get(ctx context.Context, uid, email string) (*ListedUser, error) {
	var (
		profile *entity.User
		err     error
	)
	switch {
	case uid != "":
		profile, err = u.users.GetByUID(ctx, uid)
	case email != "":
		profile, err = u.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	default:
		return nil, errs.ErrMissingID
	}
	if err != nil {
		return nil, err
	}

	verified := false
	if acct, dirErr := u.directory.GetAccount(ctx, profile.UID); dirErr == nil && acct != nil {
		verified = acct.EmailVerified
	}
	return &ListedUser{User: profile, EmailVerified: verified}, nil
}

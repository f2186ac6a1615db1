package persistence

import (
	"context"
	"time"

	"github.com/cloudai/owner-console/internal/domain/entity"
)

// UserListCursor marks where the previous page ended
type UserListCursor struct {
	CreatedAt *time.Time
	Email     string
}

// UserListParams narrows and pages user listings
type UserListParams struct {
	Role         string
	Status       string
	EmailPrefix  string
	OrderByEmail bool
	Cursor       *UserListCursor
	Limit        int
}

// UserRepository defines access to user profile documents
type UserRepository interface {
	// GetByUID retrieves a profile by uid
	//
	// Possible errors:
	// - ErrUserNotFound: if no profile exists
	// - ErrDatabaseConnection: if the store is unreachable
	GetByUID(ctx context.Context, uid string) (*entity.User, error)

	// GetByEmail retrieves a profile by exact email
	GetByEmail(ctx context.Context, email string) (*entity.User, error)

	// Create stores a new profile document
	Create(ctx context.Context, u *entity.User) error

	// Merge applies a partial field update, creating the document when absent
	Merge(ctx context.Context, uid string, fields map[string]any) error

	// List returns profiles matching the params
	List(ctx context.Context, p UserListParams) ([]*entity.User, error)

	// NamesByUID resolves display names for a set of uids; missing uids are
	// simply absent from the result
	NamesByUID(ctx context.Context, uids []string) (map[string]string, error)
}

package persistence

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
)

// TransactionRepository defines access to subscription transaction documents
type TransactionRepository interface {
	// GetByID retrieves a transaction by document id
	//
	// Possible errors:
	// - ErrNotFound: if no transaction with the id exists
	// - ErrDatabaseConnection: if the store is unreachable
	GetByID(ctx context.Context, id string) (*entity.Transaction, error)

	// List returns transactions in the given status, newest first
	List(ctx context.Context, status entity.TransactionStatus, limit int) ([]*entity.Transaction, error)

	// Merge applies a partial field update to an existing transaction
	Merge(ctx context.Context, id string, fields map[string]any) error
}

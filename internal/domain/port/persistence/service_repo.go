package persistence

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
)

// ServiceFilter narrows admin service listings
type ServiceFilter struct {
	ProviderID string
	Status     string
	Limit      int
}

// ServiceRepository defines access to service listing documents
type ServiceRepository interface {
	// GetByID retrieves a service by document id
	//
	// Possible errors:
	// - ErrNotFound: if no service with the id exists
	// - ErrDatabaseConnection: if the store is unreachable
	GetByID(ctx context.Context, id string) (*entity.Service, error)

	// Create stores a new service document
	Create(ctx context.Context, svc *entity.Service) error

	// Merge applies a partial field update to an existing document
	Merge(ctx context.Context, id string, fields map[string]any) error

	// Delete removes a service document
	Delete(ctx context.Context, id string) error

	// List returns services matching the filter, newest first
	List(ctx context.Context, f ServiceFilter) ([]*entity.Service, error)

	// ListCascadeCandidates returns up to limit services in the given moderation
	// status, scoped to a provider when providerID is non-empty. With
	// demotedOnly set, only cascade-marked records are returned. This is the
	// query feeding the lock cascade; every returned record leaves the result
	// set once transitioned, so callers page by re-querying.
	ListCascadeCandidates(ctx context.Context, providerID string, status entity.ServiceStatus, demotedOnly bool, limit int) ([]*entity.Service, error)
}

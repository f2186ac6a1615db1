package persistence

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
)

// SaleItemRepository defines access to sale item documents
type SaleItemRepository interface {
	GetByID(ctx context.Context, id string) (*entity.SaleItem, error)
	List(ctx context.Context, status entity.SaleItemStatus, limit int) ([]*entity.SaleItem, error)
	Merge(ctx context.Context, id string, fields map[string]any) error
	// DistinctProviderIDs returns unique provider ids across items in status
	DistinctProviderIDs(ctx context.Context, status entity.SaleItemStatus, limit int) ([]string, error)
	// GetMany retrieves items by id; missing ids are absent from the result
	GetMany(ctx context.Context, ids []string) (map[string]*entity.SaleItem, error)
}

// AdRepository defines access to promotional banner documents
type AdRepository interface {
	List(ctx context.Context, limit int) ([]*entity.Ad, error)
	Create(ctx context.Context, ad *entity.Ad) error
	Merge(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// ResourceFilter narrows student resource listings
type ResourceFilter struct {
	Type     string
	Language string
	Limit    int
}

// ResourceRepository defines access to student bank resource documents
type ResourceRepository interface {
	GetByID(ctx context.Context, id string) (*entity.StudentResource, error)
	List(ctx context.Context, f ResourceFilter) ([]*entity.StudentResource, error)
	Merge(ctx context.Context, id string, fields map[string]any) error
	Delete(ctx context.Context, id string) error
}

// SlotRequestFilter narrows slot request listings
type SlotRequestFilter struct {
	Status string
	UID    string
	Email  string
	Paid   *bool
	Limit  int
}

// SlotRequestRepository defines access to service slot request documents
type SlotRequestRepository interface {
	List(ctx context.Context, f SlotRequestFilter) ([]*entity.SlotRequest, error)
	Merge(ctx context.Context, id string, fields map[string]any) error
}

// DeletionRequestFilter narrows deletion request listings
type DeletionRequestFilter struct {
	Status    string
	UID       string
	ServiceID string
	Limit     int
}

// DeletionRequestRepository defines access to service deletion request documents
type DeletionRequestRepository interface {
	GetByID(ctx context.Context, id string) (*entity.DeletionRequest, error)
	List(ctx context.Context, f DeletionRequestFilter) ([]*entity.DeletionRequest, error)
	Merge(ctx context.Context, id string, fields map[string]any) error
}

// SettingsRepository defines access to the singleton settings documents
type SettingsRepository interface {
	GetFeatures(ctx context.Context) (*entity.FeatureSettings, error)
	SaveFeatures(ctx context.Context, f *entity.FeatureSettings) error
	GetHome(ctx context.Context) (*entity.HomeSettings, error)
	MergeHome(ctx context.Context, fields map[string]any) error
	GetStudentBank(ctx context.Context) (*entity.StudentBankSettings, error)
	MergeStudentBank(ctx context.Context, fields map[string]any) error
}

// ServiceEventRepository reads the append-only audit log. Writes go through
// the batch committer so an owner change and its audit record land in the
// same chunk.
type ServiceEventRepository interface {
	// HasReassignEvent reports whether a reassignment with this exact
	// service/target/key triple was already recorded
	HasReassignEvent(ctx context.Context, serviceID, toOwnerID, idempotencyKey string) (bool, error)
}

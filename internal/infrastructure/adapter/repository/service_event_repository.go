package repository

import (
	"context"
	"fmt"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ServiceEventRepository implements persistence.ServiceEventRepository using
// GORM. The audit log is append-only; inserts go through the chunk committer
// so they share a chunk with the mutation they describe.
type ServiceEventRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewServiceEventRepository creates a new ServiceEventRepository instance
func NewServiceEventRepository(db *gorm.DB, logger coreport.Logger) *ServiceEventRepository {
	return &ServiceEventRepository{db: db, logger: logger}
}

// HasReassignEvent reports whether a reassignment with this exact
// service/target/key triple was already recorded
func (r *ServiceEventRepository) HasReassignEvent(ctx context.Context, serviceID, toOwnerID, idempotencyKey string) (bool, error) {
	if idempotencyKey == "" {
		return false, nil
	}

	var count int64
	err := r.db.WithContext(ctx).Model(&model.ServiceEvent{}).
		Where("type = ?", entity.EventReassignOwner).
		Where("service_id = ?", serviceID).
		Where("to_owner_id = ?", toOwnerID).
		Where("idempotency_key = ?", idempotencyKey).
		Count(&count).Error
	if err != nil {
		r.logger.Error("Database error when checking reassign events", map[string]any{
			"service_id": serviceID,
			"error":      err.Error(),
		})
		return false, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return count > 0, nil
}

package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SlotRequestRepository implements persistence.SlotRequestRepository using GORM
type SlotRequestRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSlotRequestRepository creates a new SlotRequestRepository instance
func NewSlotRequestRepository(db *gorm.DB, logger coreport.Logger) *SlotRequestRepository {
	return &SlotRequestRepository{db: db, logger: logger}
}

func slotRequestModelToEntity(m *model.SlotRequest) *entity.SlotRequest {
	return &entity.SlotRequest{
		ID:                m.ID,
		UID:               m.UID,
		Email:             m.Email,
		DisplayName:       m.DisplayName,
		Role:              entity.Role(m.Role),
		Status:            entity.ServiceStatus(m.Status),
		Notes:             m.Notes,
		AdminNotes:        m.AdminNotes,
		Paid:              m.Paid,
		Consumed:          m.Consumed,
		ConsumedServiceID: m.ConsumedServiceID,
		CreatedAt:         m.CreatedAt,
		ApprovedAt:        m.ApprovedAt,
		ApprovedBy:        m.ApprovedBy,
	}
}

// List returns slot requests matching the filter, newest first
func (r *SlotRequestRepository) List(ctx context.Context, f persistence.SlotRequestFilter) ([]*entity.SlotRequest, error) {
	q := r.db.WithContext(ctx).Model(&model.SlotRequest{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UID != "" {
		q = q.Where("uid = ?", f.UID)
	}
	if f.Email != "" {
		q = q.Where("LOWER(email) = ?", strings.ToLower(f.Email))
	}
	if f.Paid != nil {
		q = q.Where("paid = ?", *f.Paid)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []model.SlotRequest
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		r.logger.Error("Database error when listing slot requests", map[string]any{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}

	out := make([]*entity.SlotRequest, 0, len(rows))
	for i := range rows {
		out = append(out, slotRequestModelToEntity(&rows[i]))
	}
	return out, nil
}

// Merge applies a partial field update to an existing slot request
func (r *SlotRequestRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.SlotRequest{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		r.logger.Error("Database error when updating slot request", map[string]any{
			"request_id": id,
			"error":      result.Error.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DeletionRequestRepository implements persistence.DeletionRequestRepository using GORM
type DeletionRequestRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewDeletionRequestRepository creates a new DeletionRequestRepository instance
func NewDeletionRequestRepository(db *gorm.DB, logger coreport.Logger) *DeletionRequestRepository {
	return &DeletionRequestRepository{db: db, logger: logger}
}

func deletionRequestModelToEntity(m *model.DeletionRequest) *entity.DeletionRequest {
	return &entity.DeletionRequest{
		ID:              m.ID,
		ServiceID:       m.ServiceID,
		UID:             m.UID,
		Email:           m.Email,
		DisplayName:     m.DisplayName,
		Status:          entity.ServiceStatus(m.Status),
		PriorStatus:     m.PriorStatus,
		Reason:          m.Reason,
		ServiceTitle:    m.ServiceTitle,
		ServiceCategory: m.ServiceCategory,
		CreatedAt:       m.CreatedAt,
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      m.ApprovedBy,
	}
}

func (r *DeletionRequestRepository) handleDatabaseError(operation string, err error, id string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"request_id": id,
		"error":      err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a deletion request by document id
func (r *DeletionRequestRepository) GetByID(ctx context.Context, id string) (*entity.DeletionRequest, error) {
	var m model.DeletionRequest
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting deletion request", result.Error, id)
	}
	return deletionRequestModelToEntity(&m), nil
}

// List returns deletion requests matching the filter, newest first
func (r *DeletionRequestRepository) List(ctx context.Context, f persistence.DeletionRequestFilter) ([]*entity.DeletionRequest, error) {
	q := r.db.WithContext(ctx).Model(&model.DeletionRequest{})
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.UID != "" {
		q = q.Where("uid = ?", f.UID)
	}
	if f.ServiceID != "" {
		q = q.Where("service_id = ?", f.ServiceID)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []model.DeletionRequest
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing deletion requests", err, "")
	}

	out := make([]*entity.DeletionRequest, 0, len(rows))
	for i := range rows {
		out = append(out, deletionRequestModelToEntity(&rows[i]))
	}
	return out, nil
}

// Merge applies a partial field update to an existing deletion request
func (r *DeletionRequestRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.DeletionRequest{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return r.handleDatabaseError("updating deletion request", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ResourceRepository implements persistence.ResourceRepository using GORM
type ResourceRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewResourceRepository creates a new ResourceRepository instance
func NewResourceRepository(db *gorm.DB, logger coreport.Logger) *ResourceRepository {
	return &ResourceRepository{db: db, logger: logger}
}

func resourceModelToEntity(m *model.StudentResource) *entity.StudentResource {
	return &entity.StudentResource{
		ID:          m.ID,
		Title:       m.Title,
		Description: m.Description,
		University:  m.University,
		Course:      m.Course,
		Year:        m.Year,
		Type:        m.Type,
		Language:    m.Language,
		Status:      entity.ServiceStatus(m.Status),
		PdfKey:      m.PdfKey,
		DriveLink:   m.DriveLink,
		DriveFileID: m.DriveFileID,
		UploaderID:  m.UploaderID,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ResourceRepository) handleDatabaseError(operation string, err error, id string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"resource_id": id,
		"error":       err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a resource by document id
func (r *ResourceRepository) GetByID(ctx context.Context, id string) (*entity.StudentResource, error) {
	var m model.StudentResource
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting resource", result.Error, id)
	}
	return resourceModelToEntity(&m), nil
}

// List returns resources matching the filter, newest first
func (r *ResourceRepository) List(ctx context.Context, f persistence.ResourceFilter) ([]*entity.StudentResource, error) {
	q := r.db.WithContext(ctx).Model(&model.StudentResource{})
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Language != "" {
		q = q.Where("language = ?", f.Language)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []model.StudentResource
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing resources", err, "")
	}

	out := make([]*entity.StudentResource, 0, len(rows))
	for i := range rows {
		out = append(out, resourceModelToEntity(&rows[i]))
	}
	return out, nil
}

// Merge applies a partial field update to an existing resource
func (r *ResourceRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.StudentResource{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return r.handleDatabaseError("updating resource", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a resource document
func (r *ResourceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.StudentResource{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting resource", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

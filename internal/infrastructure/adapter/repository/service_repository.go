package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// ServiceRepository implements persistence.ServiceRepository using GORM
type ServiceRepository struct {
	db              *gorm.DB
	logger          coreport.Logger
	errorClassifier *ErrorClassifier
}

// NewServiceRepository creates a new ServiceRepository instance
func NewServiceRepository(db *gorm.DB, logger coreport.Logger) *ServiceRepository {
	return &ServiceRepository{
		db:              db,
		logger:          logger,
		errorClassifier: NewErrorClassifier(),
	}
}

func serviceModelToEntity(m *model.Service) (*entity.Service, error) {
	svc := &entity.Service{
		ID:              m.ID,
		ProviderID:      m.ProviderID,
		OwnerEmail:      m.OwnerEmail,
		Title:           m.Title,
		Description:     m.Description,
		Status:          entity.ServiceStatus(m.Status),
		DemotedForLock:  m.DemotedForLock,
		ApprovedAt:      m.ApprovedAt,
		ApprovedBy:      m.ApprovedBy,
		Price:           m.Price,
		Category:        m.Category,
		City:            m.City,
		Area:            m.Area,
		ContactPhone:    m.ContactPhone,
		ContactWhatsapp: m.ContactWhatsapp,
		VideoURL:        m.VideoURL,
		Featured:        m.Featured,
		Priority:        m.Priority,
		Lat:             m.Lat,
		Lng:             m.Lng,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		UpdatedBy:       m.UpdatedBy,
	}
	if err := unmarshalJSONColumn(m.Images, &svc.Images); err != nil {
		return nil, fmt.Errorf("%w: decoding service images: %s", errs.ErrInternalServer, err.Error())
	}
	return svc, nil
}

func serviceEntityToModel(svc *entity.Service) (*model.Service, error) {
	m := &model.Service{
		ID:              svc.ID,
		ProviderID:      svc.ProviderID,
		OwnerEmail:      svc.OwnerEmail,
		Title:           svc.Title,
		Description:     svc.Description,
		Status:          string(svc.Status),
		DemotedForLock:  svc.DemotedForLock,
		ApprovedAt:      svc.ApprovedAt,
		ApprovedBy:      svc.ApprovedBy,
		Price:           svc.Price,
		Category:        svc.Category,
		City:            svc.City,
		Area:            svc.Area,
		ContactPhone:    svc.ContactPhone,
		ContactWhatsapp: svc.ContactWhatsapp,
		VideoURL:        svc.VideoURL,
		Featured:        svc.Featured,
		Priority:        svc.Priority,
		Lat:             svc.Lat,
		Lng:             svc.Lng,
		CreatedAt:       svc.CreatedAt,
		UpdatedAt:       svc.UpdatedAt,
		UpdatedBy:       svc.UpdatedBy,
	}
	if len(svc.Images) > 0 {
		b, err := json.Marshal(svc.Images)
		if err != nil {
			return nil, fmt.Errorf("%w: encoding service images: %s", errs.ErrInternalServer, err.Error())
		}
		m.Images = b
	}
	return m, nil
}

// handleDatabaseError standardizes database error handling
func (r *ServiceRepository) handleDatabaseError(operation string, err error, serviceID string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"service_id": serviceID,
		"error":      err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		r.logger.Warn("Service not found", map[string]any{
			"service_id": serviceID,
		})
		return errs.ErrNotFound
	}

	if r.errorClassifier.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: service %s already exists", errs.ErrBadRequest, serviceID)
	}

	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a service by document id
func (r *ServiceRepository) GetByID(ctx context.Context, id string) (*entity.Service, error) {
	var m model.Service
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting service", result.Error, id)
	}
	return serviceModelToEntity(&m)
}

// Create stores a new service document
func (r *ServiceRepository) Create(ctx context.Context, svc *entity.Service) error {
	m, err := serviceEntityToModel(svc)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Create(m)
	if result.Error != nil {
		return r.handleDatabaseError("creating service", result.Error, svc.ID)
	}

	r.logger.Info("Service created", map[string]any{
		"service_id":  svc.ID,
		"provider_id": svc.ProviderID,
		"status":      string(svc.Status),
	})
	return nil
}

// Merge applies a partial field update to an existing document
func (r *ServiceRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	normalized, err := normalizeWriteFields(fields)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	result := r.db.WithContext(ctx).Model(&model.Service{}).
		Where("id = ?", id).
		Updates(normalized)
	if result.Error != nil {
		return r.handleDatabaseError("updating service", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a service document
func (r *ServiceRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Service{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting service", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}

	r.logger.Info("Service deleted", map[string]any{
		"service_id": id,
	})
	return nil
}

// List returns services matching the filter, newest first
func (r *ServiceRepository) List(ctx context.Context, f persistence.ServiceFilter) ([]*entity.Service, error) {
	q := r.db.WithContext(ctx).Model(&model.Service{})
	if f.ProviderID != "" {
		q = q.Where("provider_id = ?", f.ProviderID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.Limit > 0 {
		q = q.Limit(f.Limit)
	}

	var rows []model.Service
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing services", err, "")
	}
	return serviceRowsToEntities(rows)
}

// ListCascadeCandidates returns up to limit services in the given moderation
// status, scoped to a provider when providerID is non-empty.
func (r *ServiceRepository) ListCascadeCandidates(ctx context.Context, providerID string, status entity.ServiceStatus, demotedOnly bool, limit int) ([]*entity.Service, error) {
	q := r.db.WithContext(ctx).Model(&model.Service{}).
		Where("status = ?", string(status))
	if providerID != "" {
		q = q.Where("provider_id = ?", providerID)
	}
	if demotedOnly {
		q = q.Where("demoted_for_lock = ?", true)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []model.Service
	if err := q.Order("created_at ASC").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing cascade candidates", err, "")
	}
	return serviceRowsToEntities(rows)
}

func serviceRowsToEntities(rows []model.Service) ([]*entity.Service, error) {
	out := make([]*entity.Service, 0, len(rows))
	for i := range rows {
		svc, err := serviceModelToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, svc)
	}
	return out, nil
}

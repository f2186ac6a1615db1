package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
)

// SaleItemRepository implements persistence.SaleItemRepository using GORM
type SaleItemRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewSaleItemRepository creates a new SaleItemRepository instance
func NewSaleItemRepository(db *gorm.DB, logger coreport.Logger) *SaleItemRepository {
	return &SaleItemRepository{db: db, logger: logger}
}

func saleItemModelToEntity(m *model.SaleItem) (*entity.SaleItem, error) {
	item := &entity.SaleItem{
		ID:           m.ID,
		ProviderID:   m.ProviderID,
		Title:        m.Title,
		Status:       entity.SaleItemStatus(m.Status),
		Price:        m.Price,
		City:         m.City,
		Condition:    m.Condition,
		TradeEnabled: m.TradeEnabled,
		ApprovedAt:   m.ApprovedAt,
		ApprovedBy:   m.ApprovedBy,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if err := unmarshalJSONColumn(m.Tags, &item.Tags); err != nil {
		return nil, fmt.Errorf("%w: decoding sale item tags: %s", errs.ErrInternalServer, err.Error())
	}
	if err := unmarshalJSONColumn(m.Images, &item.Images); err != nil {
		return nil, fmt.Errorf("%w: decoding sale item images: %s", errs.ErrInternalServer, err.Error())
	}
	return item, nil
}

func (r *SaleItemRepository) handleDatabaseError(operation string, err error, id string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"sale_item_id": id,
		"error":        err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// GetByID retrieves a sale item by document id
func (r *SaleItemRepository) GetByID(ctx context.Context, id string) (*entity.SaleItem, error) {
	var m model.SaleItem
	result := r.db.WithContext(ctx).First(&m, "id = ?", id)
	if result.Error != nil {
		return nil, r.handleDatabaseError("getting sale item", result.Error, id)
	}
	return saleItemModelToEntity(&m)
}

// List returns sale items in the given status, newest first
func (r *SaleItemRepository) List(ctx context.Context, status entity.SaleItemStatus, limit int) ([]*entity.SaleItem, error) {
	q := r.db.WithContext(ctx).Model(&model.SaleItem{})
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []model.SaleItem
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing sale items", err, "")
	}

	out := make([]*entity.SaleItem, 0, len(rows))
	for i := range rows {
		item, err := saleItemModelToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// Merge applies a partial field update to an existing sale item
func (r *SaleItemRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	normalized, err := normalizeWriteFields(fields)
	if err != nil {
		return fmt.Errorf("%w: %s", errs.ErrInternalServer, err.Error())
	}

	result := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Where("id = ?", id).
		Updates(normalized)
	if result.Error != nil {
		return r.handleDatabaseError("updating sale item", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// DistinctProviderIDs returns unique provider ids across items in status
func (r *SaleItemRepository) DistinctProviderIDs(ctx context.Context, status entity.SaleItemStatus, limit int) ([]string, error) {
	q := r.db.WithContext(ctx).Model(&model.SaleItem{}).
		Distinct("provider_id")
	if status != "" {
		q = q.Where("status = ?", string(status))
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	var ids []string
	if err := q.Pluck("provider_id", &ids).Error; err != nil {
		return nil, r.handleDatabaseError("listing sale providers", err, "")
	}
	return ids, nil
}

// GetMany retrieves items by id; missing ids are absent from the result
func (r *SaleItemRepository) GetMany(ctx context.Context, ids []string) (map[string]*entity.SaleItem, error) {
	if len(ids) == 0 {
		return map[string]*entity.SaleItem{}, nil
	}

	var rows []model.SaleItem
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("getting sale items", err, "")
	}

	out := make(map[string]*entity.SaleItem, len(rows))
	for i := range rows {
		item, err := saleItemModelToEntity(&rows[i])
		if err != nil {
			return nil, err
		}
		out[item.ID] = item
	}
	return out, nil
}

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

// AdRepository implements persistence.AdRepository using GORM
type AdRepository struct {
	db     *gorm.DB
	logger coreport.Logger
}

// NewAdRepository creates a new AdRepository instance
func NewAdRepository(db *gorm.DB, logger coreport.Logger) *AdRepository {
	return &AdRepository{db: db, logger: logger}
}

func adModelToEntity(m *model.Ad) *entity.Ad {
	return &entity.Ad{
		ID:         m.ID,
		Text:       m.Text,
		TextAr:     m.TextAr,
		Href:       m.Href,
		LinkURL:    m.LinkURL,
		ImageURL:   m.ImageURL,
		Title:      m.Title,
		SaleItemID: m.SaleItemID,
		Color:      m.Color,
		Active:     m.Active,
		Priority:   m.Priority,
		CreatedAt:  m.CreatedAt,
	}
}

func (r *AdRepository) handleDatabaseError(operation string, err error, id string) error {
	r.logger.Error(fmt.Sprintf("Database error when %s", operation), map[string]any{
		"ad_id": id,
		"error": err.Error(),
	})

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.ErrNotFound
	}
	return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
}

// List returns banners ordered by priority, then newest first
func (r *AdRepository) List(ctx context.Context, limit int) ([]*entity.Ad, error) {
	q := r.db.WithContext(ctx).Model(&model.Ad{}).
		Order("priority DESC").
		Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}

	var rows []model.Ad
	if err := q.Find(&rows).Error; err != nil {
		return nil, r.handleDatabaseError("listing ads", err, "")
	}

	out := make([]*entity.Ad, 0, len(rows))
	for i := range rows {
		out = append(out, adModelToEntity(&rows[i]))
	}
	return out, nil
}

// Create stores a new banner
func (r *AdRepository) Create(ctx context.Context, ad *entity.Ad) error {
	m := model.Ad{
		ID:         ad.ID,
		Text:       ad.Text,
		TextAr:     ad.TextAr,
		Href:       ad.Href,
		LinkURL:    ad.LinkURL,
		ImageURL:   ad.ImageURL,
		Title:      ad.Title,
		SaleItemID: ad.SaleItemID,
		Color:      ad.Color,
		Active:     ad.Active,
		Priority:   ad.Priority,
		CreatedAt:  ad.CreatedAt,
	}

	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return r.handleDatabaseError("creating ad", err, ad.ID)
	}

	r.logger.Info("Ad created", map[string]any{
		"ad_id": ad.ID,
	})
	return nil
}

// Merge applies a partial field update to an existing banner
func (r *AdRepository) Merge(ctx context.Context, id string, fields map[string]any) error {
	result := r.db.WithContext(ctx).Model(&model.Ad{}).
		Where("id = ?", id).
		Updates(fields)
	if result.Error != nil {
		return r.handleDatabaseError("updating ad", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// Delete removes a banner
func (r *AdRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&model.Ad{}, "id = ?", id)
	if result.Error != nil {
		return r.handleDatabaseError("deleting ad", result.Error, id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

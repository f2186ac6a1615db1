package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// docFieldKeys translates merge field names to the keys stored inside the
// settings documents. Fields not listed here address the row itself.
var docFieldKeys = map[string]string{
	"featured_video_ids": "featuredVideoIds",
	"landing_video_urls": "landingVideoUrls",
	"uploads_enabled":    "uploadsEnabled",
}

// SettingsRepository implements persistence.SettingsRepository using GORM.
// Each settings document is one JSON row keyed by a well-known id.
type SettingsRepository struct {
	db           *gorm.DB
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewSettingsRepository creates a new SettingsRepository instance
func NewSettingsRepository(db *gorm.DB, timeProvider coreport.TimeProvider, logger coreport.Logger) *SettingsRepository {
	return &SettingsRepository{db: db, timeProvider: timeProvider, logger: logger}
}

// loadDoc fetches a settings document; absent documents return nil without error
func (r *SettingsRepository) loadDoc(ctx context.Context, tx *gorm.DB, id string) (*model.SettingsDoc, error) {
	var doc model.SettingsDoc
	result := tx.WithContext(ctx).First(&doc, "id = ?", id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		r.logger.Error("Database error when loading settings", map[string]any{
			"doc_id": id,
			"error":  result.Error.Error(),
		})
		return nil, fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, result.Error.Error())
	}
	return &doc, nil
}

// saveDoc upserts a settings document
func (r *SettingsRepository) saveDoc(ctx context.Context, tx *gorm.DB, doc *model.SettingsDoc) error {
	err := tx.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(doc).Error
	if err != nil {
		r.logger.Error("Database error when saving settings", map[string]any{
			"doc_id": doc.ID,
			"error":  err.Error(),
		})
		return fmt.Errorf("%w: %s", errs.ErrDatabaseConnection, err.Error())
	}
	return nil
}

// mergeDoc applies a partial update to one settings document inside a
// transaction so concurrent merges cannot drop each other's fields.
func (r *SettingsRepository) mergeDoc(ctx context.Context, id string, fields map[string]any) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		doc, err := r.loadDoc(ctx, tx, id)
		if err != nil {
			return err
		}
		if doc == nil {
			doc = &model.SettingsDoc{ID: id, Data: []byte("{}")}
		}

		data := map[string]any{}
		if err := unmarshalJSONColumn(doc.Data, &data); err != nil {
			return fmt.Errorf("%w: decoding settings %s: %s", errs.ErrInternalServer, id, err.Error())
		}

		for k, v := range fields {
			switch k {
			case "updated_at":
				if at, ok := v.(time.Time); ok {
					doc.UpdatedAt = at
				}
			case "updated_by":
				if by, ok := v.(string); ok {
					doc.UpdatedBy = by
				}
			default:
				key := k
				if mapped, ok := docFieldKeys[k]; ok {
					key = mapped
				}
				data[key] = v
			}
		}

		raw, err := json.Marshal(data)
		if err != nil {
			return fmt.Errorf("%w: encoding settings %s: %s", errs.ErrInternalServer, id, err.Error())
		}
		doc.Data = raw
		if doc.UpdatedAt.IsZero() {
			doc.UpdatedAt = r.timeProvider.Now()
		}
		return r.saveDoc(ctx, tx, doc)
	})
}

// GetFeatures returns the feature-flag document, or nil when never saved
func (r *SettingsRepository) GetFeatures(ctx context.Context) (*entity.FeatureSettings, error) {
	doc, err := r.loadDoc(ctx, r.db, model.SettingsDocFeatures)
	if err != nil || doc == nil {
		return nil, err
	}

	var f entity.FeatureSettings
	if err := unmarshalJSONColumn(doc.Data, &f); err != nil {
		return nil, fmt.Errorf("%w: decoding feature settings: %s", errs.ErrInternalServer, err.Error())
	}
	return &f, nil
}

// SaveFeatures replaces the feature-flag document
func (r *SettingsRepository) SaveFeatures(ctx context.Context, f *entity.FeatureSettings) error {
	raw, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("%w: encoding feature settings: %s", errs.ErrInternalServer, err.Error())
	}

	doc := &model.SettingsDoc{
		ID:        model.SettingsDocFeatures,
		Data:      raw,
		UpdatedAt: r.timeProvider.Now(),
	}
	return r.saveDoc(ctx, r.db, doc)
}

// GetHome returns the homepage curation document, or nil when never saved
func (r *SettingsRepository) GetHome(ctx context.Context) (*entity.HomeSettings, error) {
	doc, err := r.loadDoc(ctx, r.db, model.SettingsDocHome)
	if err != nil || doc == nil {
		return nil, err
	}

	var h entity.HomeSettings
	if err := unmarshalJSONColumn(doc.Data, &h); err != nil {
		return nil, fmt.Errorf("%w: decoding home settings: %s", errs.ErrInternalServer, err.Error())
	}
	return &h, nil
}

// MergeHome applies a partial update to the homepage curation document
func (r *SettingsRepository) MergeHome(ctx context.Context, fields map[string]any) error {
	return r.mergeDoc(ctx, model.SettingsDocHome, fields)
}

// GetStudentBank returns the student bank gate document, or nil when never saved
func (r *SettingsRepository) GetStudentBank(ctx context.Context) (*entity.StudentBankSettings, error) {
	doc, err := r.loadDoc(ctx, r.db, model.SettingsDocStudentBank)
	if err != nil || doc == nil {
		return nil, err
	}

	data := struct {
		UploadsEnabled bool `json:"uploadsEnabled"`
	}{}
	if err := unmarshalJSONColumn(doc.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: decoding student bank settings: %s", errs.ErrInternalServer, err.Error())
	}

	s := &entity.StudentBankSettings{
		UploadsEnabled: data.UploadsEnabled,
		UpdatedBy:      doc.UpdatedBy,
	}
	if !doc.UpdatedAt.IsZero() {
		at := doc.UpdatedAt
		s.UpdatedAt = &at
	}
	return s, nil
}

// MergeStudentBank applies a partial update to the student bank gate document
func (r *SettingsRepository) MergeStudentBank(ctx context.Context, fields map[string]any) error {
	return r.mergeDoc(ctx, model.SettingsDocStudentBank, fields)
}

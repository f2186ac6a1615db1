package ad

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/cloudai/owner-console/internal/domain/entity"
	errs "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
)

// ListLimit caps the banner listing
const ListLimit = 200

// AdUseCase manages promotional banners
type AdUseCase struct {
	ads          persistence.AdRepository
	timeProvider coreport.TimeProvider
	logger       coreport.Logger
}

// NewAdUseCase creates a new AdUseCase
func NewAdUseCase(ads persistence.AdRepository, timeProvider coreport.TimeProvider, logger coreport.Logger) *AdUseCase {
	return &AdUseCase{ads: ads, timeProvider: timeProvider, logger: logger}
}

// List returns all banners, priority then recency ordered by the store.
func (a *AdUseCase) List(ctx context.Context) ([]*entity.Ad, error) {
	return a.ads.List(ctx, ListLimit)
}

// CreateInput carries a new banner
type CreateInput struct {
	Text       string
	TextAr     string
	Href       string
	LinkURL    string
	ImageURL   string
	Title      string
	SaleItemID string
	Color      string
	Active     bool
	Priority   int
}

// Create stores a new banner. At least one of the two text variants is
// required; unknown colors fall back to the default.
func (a *AdUseCase) Create(ctx context.Context, in CreateInput) (*entity.Ad, error) {
	text := strings.TrimSpace(in.Text)
	textAr := strings.TrimSpace(in.TextAr)
	if text == "" && textAr == "" {
		return nil, errs.ErrMissingField
	}

	ad := &entity.Ad{
		ID:        uuid.NewString(),
		Text:      text,
		TextAr:    textAr,
		Href:      in.Href,
		LinkURL:   in.LinkURL,
		ImageURL:  in.ImageURL,
		Title:     in.Title,
		Color:     entity.NormalizeAdColor(in.Color),
		Active:    in.Active,
		Priority:  in.Priority,
		CreatedAt: a.timeProvider.Now(),
	}
	if in.SaleItemID != "" {
		ad.SaleItemID = &in.SaleItemID
	}

	if err := a.ads.Create(ctx, ad); err != nil {
		return nil, err
	}
	a.logger.Info("Ad created", map[string]any{"adId": ad.ID})
	return ad, nil
}

// adPatchFields is the allow-list of editable banner columns
var adPatchFields = map[string]struct{}{
	"text":         {},
	"text_ar":      {},
	"href":         {},
	"link_url":     {},
	"image_url":    {},
	"title":        {},
	"sale_item_id": {},
	"color":        {},
	"active":       {},
	"priority":     {},
}

// Update applies a partial banner patch.
func (a *AdUseCase) Update(ctx context.Context, id string, fields map[string]any) error {
	if id == "" {
		return errs.ErrMissingID
	}

	patch := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := adPatchFields[k]; !ok {
			continue
		}
		if k == "color" {
			s, ok := v.(string)
			if !ok {
				return errs.ErrBadRequest
			}
			patch[k] = entity.NormalizeAdColor(s)
			continue
		}
		patch[k] = v
	}
	if len(patch) == 0 {
		return errs.ErrBadRequest
	}

	return a.ads.Merge(ctx, id, patch)
}

// Delete removes a banner.
func (a *AdUseCase) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errs.ErrMissingID
	}
	return a.ads.Delete(ctx, id)
}

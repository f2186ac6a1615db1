package settings

import (
	"context"

	"github.com/cloudai/owner-console/internal/domain/entity"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/domain/usecase/cascade"
)

// SettingsUseCase handles the singleton settings documents and runs the
// pricing-lock cascade when a features save flips the effective provider lock.
type SettingsUseCase struct {
	settings persistence.SettingsRepository
	services persistence.ServiceRepository
	cascade  cascade.Runner
	logger   coreport.Logger
}

// NewSettingsUseCase creates a new SettingsUseCase
func NewSettingsUseCase(
	settings persistence.SettingsRepository,
	services persistence.ServiceRepository,
	runner cascade.Runner,
	logger coreport.Logger,
) *SettingsUseCase {
	return &SettingsUseCase{
		settings: settings,
		services: services,
		cascade:  runner,
		logger:   logger,
	}
}

// GetFeatures returns the feature flags, falling back to defaults when the
// document is absent.
func (s *SettingsUseCase) GetFeatures(ctx context.Context) (*entity.FeatureSettings, error) {
	f, err := s.settings.GetFeatures(ctx)
	if err != nil {
		return nil, err
	}
	if f == nil {
		def := entity.DefaultFeatureSettings()
		return &def, nil
	}
	return f, nil
}

// SaveFeaturesResult reports the persisted flags and any cascade fallout
type SaveFeaturesResult struct {
	Features          *entity.FeatureSettings
	UpdatedDemoted    int
	UpdatedReapproved int
}

// FeaturesPatch is a features save as received from the console. Nil fields
// were omitted from the request and fall back to the defaults, so a partial
// save cannot silently zero a flag.
type FeaturesPatch struct {
	PricingEnabled         *bool
	ShowForProviders       *bool
	ShowForSeekers         *bool
	EnforceAfterMonths     *int
	LockAllToPricing       *bool
	LockProvidersToPricing *bool
	LockSeekersToPricing   *bool
	ShowCityViews          *bool
}

// Resolve materializes the patch over the default document
func (p FeaturesPatch) Resolve() entity.FeatureSettings {
	f := entity.DefaultFeatureSettings()
	if p.PricingEnabled != nil {
		f.PricingEnabled = *p.PricingEnabled
	}
	if p.ShowForProviders != nil {
		f.ShowForProviders = *p.ShowForProviders
	}
	if p.ShowForSeekers != nil {
		f.ShowForSeekers = *p.ShowForSeekers
	}
	if p.EnforceAfterMonths != nil {
		f.EnforceAfterMonths = *p.EnforceAfterMonths
	}
	if p.LockAllToPricing != nil {
		f.LockAllToPricing = *p.LockAllToPricing
	}
	if p.LockProvidersToPricing != nil {
		f.LockProvidersToPricing = *p.LockProvidersToPricing
	}
	if p.LockSeekersToPricing != nil {
		f.LockSeekersToPricing = *p.LockSeekersToPricing
	}
	if p.ShowCityViews != nil {
		f.ShowCityViews = *p.ShowCityViews
	}
	return f
}

// SaveFeatures persists the feature flags, then compares the effective
// provider lock before and after. A rising edge demotes every approved
// service; a falling edge restores the cascade-demoted set. The flags are
// saved even when the cascade afterwards fails.
func (s *SettingsUseCase) SaveFeatures(ctx context.Context, actorUID string, patch FeaturesPatch) (*SaveFeaturesResult, error) {
	next := patch.Resolve()
	if next.EnforceAfterMonths < 0 {
		next.EnforceAfterMonths = 0
	}

	prev, err := s.GetFeatures(ctx)
	if err != nil {
		return nil, err
	}
	prevLocked := cascade.ProvidersLocked(*prev)
	nextLocked := cascade.ProvidersLocked(next)

	if err := s.settings.SaveFeatures(ctx, &next); err != nil {
		return nil, err
	}

	result := &SaveFeaturesResult{Features: &next}
	edge := cascade.Detect(prevLocked, nextLocked)
	if edge == cascade.EdgeNone {
		return result, nil
	}

	count, err := s.cascade.Apply(ctx, edge, "", actorUID)
	if err != nil {
		s.logger.Error("Feature flags saved but lock cascade failed", map[string]any{
			"edge":  edge.String(),
			"actor": actorUID,
			"error": err.Error(),
		})
		return nil, err
	}

	switch edge {
	case cascade.EdgeRising:
		result.UpdatedDemoted = count
	case cascade.EdgeFalling:
		result.UpdatedReapproved = count
	}
	return result, nil
}

// FeaturedVideo is one curated entry with the minimal service info the
// console list needs.
type FeaturedVideo struct {
	ID       string
	Title    string
	Status   entity.ServiceStatus
	HasVideo bool
	Missing  bool
}

// GetFeaturedVideos returns the curated featured list with each referenced
// service resolved. Ids pointing at deleted services are kept and flagged.
func (s *SettingsUseCase) GetFeaturedVideos(ctx context.Context) ([]FeaturedVideo, error) {
	home, err := s.settings.GetHome(ctx)
	if err != nil {
		return nil, err
	}
	if home == nil {
		return []FeaturedVideo{}, nil
	}

	out := make([]FeaturedVideo, 0, len(home.FeaturedVideoIDs))
	for _, id := range home.FeaturedVideoIDs {
		svc, err := s.services.GetByID(ctx, id)
		if err != nil || svc == nil {
			out = append(out, FeaturedVideo{ID: id, Missing: true})
			continue
		}
		out = append(out, FeaturedVideo{
			ID:       id,
			Title:    svc.Title,
			Status:   svc.Status,
			HasVideo: svc.VideoURL != "",
		})
	}
	return out, nil
}

// SaveFeaturedVideos replaces the curated featured list, deduplicated and
// capped at MaxFeaturedVideos.
func (s *SettingsUseCase) SaveFeaturedVideos(ctx context.Context, ids []string) ([]string, error) {
	seen := make(map[string]struct{}, len(ids))
	clean := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		clean = append(clean, id)
		if len(clean) == entity.MaxFeaturedVideos {
			break
		}
	}

	if err := s.settings.MergeHome(ctx, map[string]any{"featured_video_ids": clean}); err != nil {
		return nil, err
	}
	return clean, nil
}

// GetLandingVideos returns the landing page video URLs.
func (s *SettingsUseCase) GetLandingVideos(ctx context.Context) ([]string, error) {
	home, err := s.settings.GetHome(ctx)
	if err != nil {
		return nil, err
	}
	if home == nil || home.LandingVideoURLs == nil {
		return []string{}, nil
	}
	return home.LandingVideoURLs, nil
}

// SaveLandingVideos normalizes the given YouTube URLs to embed form, drops
// empties, caps the list at MaxLandingVideos and persists it.
func (s *SettingsUseCase) SaveLandingVideos(ctx context.Context, raw []string) ([]string, error) {
	urls := make([]string, 0, len(raw))
	for _, u := range raw {
		n := NormalizeYouTubeURL(u)
		if n == "" {
			continue
		}
		urls = append(urls, n)
		if len(urls) == entity.MaxLandingVideos {
			break
		}
	}

	if err := s.settings.MergeHome(ctx, map[string]any{"landing_video_urls": urls}); err != nil {
		return nil, err
	}
	return urls, nil
}

package handler

import (
	"net/http"

	"github.com/cloudai/owner-console/internal/domain/entity"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	settingsUseCase "github.com/cloudai/owner-console/internal/domain/usecase/settings"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SettingsHandler handles feature-flag and homepage curation requests
type SettingsHandler struct {
	settings *settingsUseCase.SettingsUseCase
	logger   coreport.Logger
}

// NewSettingsHandler creates a new settings handler instance
func NewSettingsHandler(settings *settingsUseCase.SettingsUseCase, logger coreport.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// GetFeatures handles GET /api/settings/features
func (h *SettingsHandler) GetFeatures(c *gin.Context) {
	features, err := h.settings.GetFeatures(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load feature settings", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, featureSettingsToDTO(features))
}

// SaveFeatures handles POST /api/settings/features
func (h *SettingsHandler) SaveFeatures(c *gin.Context) {
	var req dto.SaveFeaturesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	result, err := h.settings.SaveFeatures(c.Request.Context(), actor.UID, settingsUseCase.FeaturesPatch{
		PricingEnabled:         req.PricingEnabled,
		ShowForProviders:       req.ShowForProviders,
		ShowForSeekers:         req.ShowForSeekers,
		EnforceAfterMonths:     req.EnforceAfterMonths,
		LockAllToPricing:       req.LockAllToPricing,
		LockProvidersToPricing: req.LockProvidersToPricing,
		LockSeekersToPricing:   req.LockSeekersToPricing,
		ShowCityViews:          req.ShowCityViews,
	})
	if err != nil {
		h.logger.Error("Failed to save feature settings", map[string]any{
			"actor": actor.UID,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.SaveFeaturesResponse{
		OK:                true,
		Features:          featureSettingsToDTO(result.Features),
		UpdatedDemoted:    result.UpdatedDemoted,
		UpdatedReapproved: result.UpdatedReapproved,
	})
}

// GetFeaturedVideos handles GET /api/settings/home-featured
func (h *SettingsHandler) GetFeaturedVideos(c *gin.Context) {
	videos, err := h.settings.GetFeaturedVideos(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load featured videos", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	entries := make([]dto.FeaturedVideoEntry, 0, len(videos))
	for _, v := range videos {
		entries = append(entries, dto.FeaturedVideoEntry{
			ID:       v.ID,
			Title:    v.Title,
			Status:   string(v.Status),
			HasVideo: v.HasVideo,
			Missing:  v.Missing,
		})
	}
	c.JSON(http.StatusOK, dto.FeaturedVideosResponse{Videos: entries})
}

// SaveFeaturedVideos handles POST /api/settings/home-featured
func (h *SettingsHandler) SaveFeaturedVideos(c *gin.Context) {
	var req dto.SaveFeaturedVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	ids, err := h.settings.SaveFeaturedVideos(c.Request.Context(), req.IDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SaveFeaturedVideosResponse{OK: true, IDs: ids})
}

// GetLandingVideos handles GET /api/settings/landing-videos
func (h *SettingsHandler) GetLandingVideos(c *gin.Context) {
	urls, err := h.settings.GetLandingVideos(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to load landing videos", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.LandingVideosResponse{URLs: urls})
}

// SaveLandingVideos handles POST /api/settings/landing-videos
func (h *SettingsHandler) SaveLandingVideos(c *gin.Context) {
	var req dto.SaveLandingVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	urls, err := h.settings.SaveLandingVideos(c.Request.Context(), req.URLs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SaveLandingVideosResponse{OK: true, URLs: urls})
}

func featureSettingsToDTO(f *entity.FeatureSettings) *dto.FeatureSettings {
	if f == nil {
		return nil
	}
	return &dto.FeatureSettings{
		PricingEnabled:         f.PricingEnabled,
		ShowForProviders:       f.ShowForProviders,
		ShowForSeekers:         f.ShowForSeekers,
		EnforceAfterMonths:     f.EnforceAfterMonths,
		LockAllToPricing:       f.LockAllToPricing,
		LockProvidersToPricing: f.LockProvidersToPricing,
		LockSeekersToPricing:   f.LockSeekersToPricing,
		ShowCityViews:          f.ShowCityViews,
	}
}

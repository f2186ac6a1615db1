package handler

import (
	"net/http"

	"github.com/cloudai/owner-console/internal/domain/entity"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	adUseCase "github.com/cloudai/owner-console/internal/domain/usecase/ad"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// AdHandler handles promotional banner requests
type AdHandler struct {
	ads    *adUseCase.AdUseCase
	logger coreport.Logger
}

// NewAdHandler creates a new ad handler instance
func NewAdHandler(ads *adUseCase.AdUseCase, logger coreport.Logger) *AdHandler {
	return &AdHandler{ads: ads, logger: logger}
}

// List handles GET /api/ads/list
func (h *AdHandler) List(c *gin.Context) {
	rows, err := h.ads.List(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list ads", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	ads := make([]dto.AdResponse, 0, len(rows))
	for _, ad := range rows {
		ads = append(ads, adToDTO(ad))
	}
	c.JSON(http.StatusOK, dto.AdListResponse{Ads: ads})
}

// Create handles POST /api/ads/create
func (h *AdHandler) Create(c *gin.Context) {
	var req dto.CreateAdRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	created, err := h.ads.Create(c.Request.Context(), adUseCase.CreateInput{
		Text:       req.Text,
		TextAr:     req.TextAr,
		Href:       req.Href,
		LinkURL:    req.LinkURL,
		ImageURL:   req.ImageURL,
		Title:      req.Title,
		SaleItemID: req.SaleItemID,
		Color:      req.Color,
		Active:     req.Active,
		Priority:   req.Priority,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, adToDTO(created))
}

// Update handles POST /api/ads/update with a free-form patch body
func (h *AdHandler) Update(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	id, _ := body["id"].(string)
	delete(body, "id")

	if err := h.ads.Update(c.Request.Context(), id, body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// Delete handles POST /api/ads/delete
func (h *AdHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if err := h.ads.Delete(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func adToDTO(ad *entity.Ad) dto.AdResponse {
	return dto.AdResponse{
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
}

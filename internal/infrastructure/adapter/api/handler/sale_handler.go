package handler

import (
	"net/http"
	"strings"

	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	saleUseCase "github.com/cloudai/owner-console/internal/domain/usecase/sale"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SaleHandler handles sale item moderation requests
type SaleHandler struct {
	sales  *saleUseCase.SaleUseCase
	logger coreport.Logger
}

// NewSaleHandler creates a new sale handler instance
func NewSaleHandler(sales *saleUseCase.SaleUseCase, logger coreport.Logger) *SaleHandler {
	return &SaleHandler{sales: sales, logger: logger}
}

// List handles GET /api/sales/list
func (h *SaleHandler) List(c *gin.Context) {
	rows, err := h.sales.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.logger.Error("Failed to list sale items", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	items := make([]dto.SaleItemResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, dto.SaleItemResponse{
			ID:           row.Item.ID,
			ProviderID:   row.Item.ProviderID,
			ProviderName: row.ProviderName,
			Title:        row.Item.Title,
			Status:       string(row.Item.Status),
			Price:        row.Item.Price,
			City:         row.Item.City,
			Condition:    row.Item.Condition,
			TradeEnabled: row.Item.TradeEnabled,
			Tags:         row.Item.Tags,
			ImageURL:     row.Item.FirstImageURL(),
			ApprovedAt:   row.Item.ApprovedAt,
			CreatedAt:    row.Item.CreatedAt,
		})
	}
	c.JSON(http.StatusOK, dto.SaleListResponse{Items: items})
}

// Update handles POST /api/sales/update
func (h *SaleHandler) Update(c *gin.Context) {
	var req dto.UpdateSaleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	if err := h.sales.Update(c.Request.Context(), actor.UID, req.ID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// ProviderIDs handles GET /api/sales/provider-ids
func (h *SaleHandler) ProviderIDs(c *gin.Context) {
	var saleIDs []string
	if raw := c.Query("saleIds"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				saleIDs = append(saleIDs, id)
			}
		}
	}
	withNames := c.Query("withNames") == "true" || c.Query("withNames") == "1"

	refs, err := h.sales.ProviderIDs(c.Request.Context(), c.Query("status"), saleIDs, withNames)
	if err != nil {
		respondError(c, err)
		return
	}

	providers := make([]dto.ProviderRefResponse, 0, len(refs))
	for _, ref := range refs {
		providers = append(providers, dto.ProviderRefResponse{UID: ref.UID, Name: ref.Name})
	}
	c.JSON(http.StatusOK, dto.ProviderIDsResponse{Providers: providers})
}

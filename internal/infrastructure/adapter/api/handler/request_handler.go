package handler

import (
	"net/http"
	"strconv"

	"github.com/cloudai/owner-console/internal/domain/entity"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	deletionUseCase "github.com/cloudai/owner-console/internal/domain/usecase/deletion"
	slotUseCase "github.com/cloudai/owner-console/internal/domain/usecase/slot"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// SlotHandler handles extra-slot request administration
type SlotHandler struct {
	slots  *slotUseCase.SlotUseCase
	logger coreport.Logger
}

// NewSlotHandler creates a new slot handler instance
func NewSlotHandler(slots *slotUseCase.SlotUseCase, logger coreport.Logger) *SlotHandler {
	return &SlotHandler{slots: slots, logger: logger}
}

// List handles GET /api/service-slots/list
func (h *SlotHandler) List(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	filter := persistence.SlotRequestFilter{
		Status: c.Query("status"),
		UID:    c.Query("uid"),
		Email:  c.Query("email"),
		Limit:  limit,
	}
	if raw := c.Query("paid"); raw != "" {
		paid := raw == "true" || raw == "1"
		filter.Paid = &paid
	}

	rows, err := h.slots.List(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("Failed to list slot requests", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	requests := make([]dto.SlotRequestResponse, 0, len(rows))
	for _, r := range rows {
		requests = append(requests, slotRequestToDTO(r))
	}
	c.JSON(http.StatusOK, dto.SlotRequestListResponse{Requests: requests})
}

// Update handles POST /api/service-slots/update
func (h *SlotHandler) Update(c *gin.Context) {
	var req dto.UpdateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	err := h.slots.Update(c.Request.Context(), actor.UID, slotUseCase.UpdateInput{
		ID:         req.ID,
		Status:     req.Status,
		Paid:       req.Paid,
		AdminNotes: req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// DeletionHandler handles service deletion request administration
type DeletionHandler struct {
	deletions *deletionUseCase.DeletionUseCase
	logger    coreport.Logger
}

// NewDeletionHandler creates a new deletion handler instance
func NewDeletionHandler(deletions *deletionUseCase.DeletionUseCase, logger coreport.Logger) *DeletionHandler {
	return &DeletionHandler{deletions: deletions, logger: logger}
}

// List handles GET /api/service-deletions/list
func (h *DeletionHandler) List(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	rows, err := h.deletions.List(c.Request.Context(), persistence.DeletionRequestFilter{
		Status:    c.Query("status"),
		UID:       c.Query("uid"),
		ServiceID: c.Query("serviceId"),
		Limit:     limit,
	})
	if err != nil {
		h.logger.Error("Failed to list deletion requests", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	requests := make([]dto.DeletionRequestResponse, 0, len(rows))
	for _, r := range rows {
		requests = append(requests, deletionRequestToDTO(r))
	}
	c.JSON(http.StatusOK, dto.DeletionRequestListResponse{Requests: requests})
}

// Decide handles POST /api/service-deletions/decide
func (h *DeletionHandler) Decide(c *gin.Context) {
	var req dto.DecideDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	if err := h.deletions.Decide(c.Request.Context(), actor.UID, req.ID, req.Action); err != nil {
		h.logger.Error("Deletion request decision failed", map[string]any{
			"id":     req.ID,
			"action": req.Action,
			"actor":  actor.UID,
			"error":  err.Error(),
		})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		respondBadRequest(c, "Invalid limit parameter")
		return 0, false
	}
	return n, true
}

func slotRequestToDTO(r *entity.SlotRequest) dto.SlotRequestResponse {
	return dto.SlotRequestResponse{
		ID:                r.ID,
		UID:               r.UID,
		Email:             r.Email,
		DisplayName:       r.DisplayName,
		Role:              string(r.Role),
		Status:            string(r.Status),
		Notes:             r.Notes,
		AdminNotes:        r.AdminNotes,
		Paid:              r.Paid,
		Consumed:          r.Consumed,
		ConsumedServiceID: r.ConsumedServiceID,
		CreatedAt:         r.CreatedAt,
		ApprovedAt:        r.ApprovedAt,
		ApprovedBy:        r.ApprovedBy,
	}
}

func deletionRequestToDTO(r *entity.DeletionRequest) dto.DeletionRequestResponse {
	return dto.DeletionRequestResponse{
		ID:              r.ID,
		ServiceID:       r.ServiceID,
		UID:             r.UID,
		Email:           r.Email,
		DisplayName:     r.DisplayName,
		Status:          string(r.Status),
		Reason:          r.Reason,
		ServiceTitle:    r.ServiceTitle,
		ServiceCategory: r.ServiceCategory,
		CreatedAt:       r.CreatedAt,
		ApprovedAt:      r.ApprovedAt,
		ApprovedBy:      r.ApprovedBy,
	}
}

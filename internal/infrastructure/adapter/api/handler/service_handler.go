package handler

import (
	"net/http"

	"github.com/cloudai/owner-console/internal/domain/entity"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	serviceUseCase "github.com/cloudai/owner-console/internal/domain/usecase/service"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// ServiceHandler handles service moderation and administration requests
type ServiceHandler struct {
	services *serviceUseCase.ServiceUseCase
	logger   coreport.Logger
}

// NewServiceHandler creates a new service handler instance
func NewServiceHandler(services *serviceUseCase.ServiceUseCase, logger coreport.Logger) *ServiceHandler {
	return &ServiceHandler{services: services, logger: logger}
}

// List handles GET /api/services/list
func (h *ServiceHandler) List(c *gin.Context) {
	rows, err := h.services.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.logger.Error("Failed to list services", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ServiceListResponse{Services: listedServicesToDTO(rows)})
}

// Update handles POST /api/services/update
func (h *ServiceHandler) Update(c *gin.Context) {
	var req dto.UpdateServiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	if err := h.services.Update(c.Request.Context(), actor.UID, req.ID, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// AdminList handles GET /api/services/admin/list
func (h *ServiceHandler) AdminList(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	rows, err := h.services.AdminList(c.Request.Context(), serviceUseCase.AdminListParams{
		ProviderUID: c.Query("providerUid"),
		Email:       c.Query("email"),
		Status:      c.Query("status"),
		Query:       c.Query("q"),
		Limit:       limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ServiceListResponse{Services: listedServicesToDTO(rows)})
}

// AdminCreate handles POST /api/services/admin/create
func (h *ServiceHandler) AdminCreate(c *gin.Context) {
	var req dto.AdminCreateServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	created, err := h.services.AdminCreate(c.Request.Context(), actor.UID, serviceUseCase.AdminCreateInput{
		ProviderUID:     req.ProviderUID,
		ProviderEmail:   req.ProviderEmail,
		Title:           req.Title,
		Description:     req.Description,
		Status:          req.Status,
		Price:           req.Price,
		Category:        req.Category,
		City:            req.City,
		Area:            req.Area,
		ContactPhone:    req.ContactPhone,
		ContactWhatsapp: req.ContactWhatsapp,
		ImageURL:        req.ImageURL,
		VideoURL:        req.VideoURL,
	})
	if err != nil {
		h.logger.Error("Failed to create service", map[string]any{
			"actor": actor.UID,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, serviceToDTO(created, ""))
}

// AdminUpdate handles POST /api/services/admin/update.
// The body is a free-form patch; id, status and featured are peeled off and
// the remaining keys go through the allow-listed field filter.
func (h *ServiceHandler) AdminUpdate(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	in := serviceUseCase.AdminUpdateInput{Fields: body}
	if id, ok := body["id"].(string); ok {
		in.ID = id
	}
	delete(body, "id")
	if status, ok := body["status"].(string); ok {
		in.Status = status
		delete(body, "status")
	}
	if featured, ok := body["featured"].(bool); ok {
		in.Featured = &featured
		delete(body, "featured")
	}

	actor := middleware.CallerIdentity(c)
	if err := h.services.AdminUpdate(c.Request.Context(), actor.UID, in); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// AdminDelete handles POST /api/services/admin/delete
func (h *ServiceHandler) AdminDelete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if err := h.services.AdminDelete(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// BulkDelete handles POST /api/services/admin/bulk-delete
func (h *ServiceHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	deleted, err := h.services.BulkDelete(c.Request.Context(), req.IDs)
	if err != nil {
		h.logger.Error("Bulk service delete failed", map[string]any{
			"requested": len(req.IDs),
			"deleted":   deleted,
			"error":     err.Error(),
		})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkDeleteResponse{OK: true, Deleted: deleted})
}

// ReassignOwner handles POST /api/services/admin/reassign-owner
func (h *ServiceHandler) ReassignOwner(c *gin.Context) {
	var req dto.ReassignOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	result, err := h.services.ReassignOwner(c.Request.Context(), actor.UID, actor.Email, serviceUseCase.ReassignInput{
		IDs:            req.IDs,
		TargetEmail:    req.TargetEmail,
		AssignToSelf:   req.AssignToSelf,
		IdempotencyKey: req.IdempotencyKey,
	})
	if err != nil {
		h.logger.Error("Owner reassignment failed", map[string]any{
			"actor": actor.UID,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}

	outcomes := make([]dto.ReassignOutcome, 0, len(result.Results))
	for _, r := range result.Results {
		outcomes = append(outcomes, dto.ReassignOutcome{ID: r.ID, Result: r.Result})
	}
	c.JSON(http.StatusOK, dto.ReassignOwnerResponse{
		OK:          true,
		Updated:     result.Updated,
		NotFound:    result.NotFound,
		Skipped:     result.Skipped,
		Results:     outcomes,
		TargetUID:   result.TargetUID,
		TargetEmail: result.TargetEmail,
	})
}

func listedServicesToDTO(rows []serviceUseCase.ListedService) []dto.ServiceResponse {
	out := make([]dto.ServiceResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, serviceToDTO(row.Service, row.ProviderName))
	}
	return out
}

func serviceToDTO(s *entity.Service, providerName string) dto.ServiceResponse {
	return dto.ServiceResponse{
		ID:              s.ID,
		ProviderID:      s.ProviderID,
		ProviderName:    providerName,
		OwnerEmail:      s.OwnerEmail,
		Title:           s.Title,
		Description:     s.Description,
		Status:          string(s.Status),
		DemotedForLock:  s.DemotedForLock,
		Price:           s.Price,
		Category:        s.Category,
		City:            s.City,
		Area:            s.Area,
		ContactPhone:    s.ContactPhone,
		ContactWhatsapp: s.ContactWhatsapp,
		ImageURL:        s.FirstImageURL(),
		VideoURL:        s.VideoURL,
		Featured:        s.Featured,
		Priority:        s.Priority,
		ApprovedAt:      s.ApprovedAt,
		ApprovedBy:      s.ApprovedBy,
		CreatedAt:       s.CreatedAt,
	}
}

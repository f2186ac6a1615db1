package handler

import (
	"net/http"

	"github.com/cloudai/owner-console/internal/domain/entity"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	resourceUseCase "github.com/cloudai/owner-console/internal/domain/usecase/resource"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// ResourceHandler handles student bank administration requests
type ResourceHandler struct {
	resources *resourceUseCase.ResourceUseCase
	logger    coreport.Logger
}

// NewResourceHandler creates a new resource handler instance
func NewResourceHandler(resources *resourceUseCase.ResourceUseCase, logger coreport.Logger) *ResourceHandler {
	return &ResourceHandler{resources: resources, logger: logger}
}

// List handles GET /api/student-bank/admin/list
func (h *ResourceHandler) List(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}

	rows, err := h.resources.List(c.Request.Context(), c.Query("q"), c.Query("type"), c.Query("language"), limit)
	if err != nil {
		h.logger.Error("Failed to list student resources", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	resources := make([]dto.ResourceResponse, 0, len(rows))
	for _, r := range rows {
		resources = append(resources, resourceToDTO(r))
	}
	c.JSON(http.StatusOK, dto.ResourceListResponse{Resources: resources})
}

// Update handles POST /api/student-bank/admin/update with a free-form patch body
func (h *ResourceHandler) Update(c *gin.Context) {
	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	id, _ := body["id"].(string)
	delete(body, "id")

	if err := h.resources.Update(c.Request.Context(), id, body); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// Delete handles POST /api/student-bank/admin/delete
func (h *ResourceHandler) Delete(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if err := h.resources.Delete(c.Request.Context(), req.ID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// SignedURL handles POST /api/student-bank/admin/signed-url
func (h *ResourceHandler) SignedURL(c *gin.Context) {
	var req dto.IDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	link, err := h.resources.SignedURL(c.Request.Context(), req.ID)
	if err != nil {
		h.logger.Error("Failed to build resource download link", map[string]any{
			"id":    req.ID,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SignedURLResponse{OK: true, URL: link.URL, Source: link.Source})
}

// GetSettings handles GET /api/student-bank/admin/settings
func (h *ResourceHandler) GetSettings(c *gin.Context) {
	settings, err := h.resources.GetSettings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StudentBankSettingsResponse{
		UploadsEnabled: settings.UploadsEnabled,
		UpdatedAt:      settings.UpdatedAt,
		UpdatedBy:      settings.UpdatedBy,
	})
}

// SaveSettings handles POST /api/student-bank/admin/settings
func (h *ResourceHandler) SaveSettings(c *gin.Context) {
	var req dto.SaveStudentBankSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	settings, err := h.resources.SaveSettings(c.Request.Context(), actor.UID, req.UploadsEnabled)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.StudentBankSettingsResponse{
		UploadsEnabled: settings.UploadsEnabled,
		UpdatedAt:      settings.UpdatedAt,
		UpdatedBy:      settings.UpdatedBy,
	})
}

func resourceToDTO(r *entity.StudentResource) dto.ResourceResponse {
	return dto.ResourceResponse{
		ID:          r.ID,
		Title:       r.Title,
		Description: r.Description,
		University:  r.University,
		Course:      r.Course,
		Year:        r.Year,
		Type:        r.Type,
		Language:    r.Language,
		Status:      string(r.Status),
		HasFile:     r.HasFile(),
		UploaderID:  r.UploaderID,
		CreatedAt:   r.CreatedAt,
	}
}

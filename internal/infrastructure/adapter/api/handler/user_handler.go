package handler

import (
	"encoding/json"
	"net/http"

	"github.com/cloudai/owner-console/internal/domain/entity"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	userUseCase "github.com/cloudai/owner-console/internal/domain/usecase/user"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// UserHandler handles user administration requests
type UserHandler struct {
	users  *userUseCase.UserUseCase
	logger coreport.Logger
}

// NewUserHandler creates a new user handler instance
func NewUserHandler(users *userUseCase.UserUseCase, logger coreport.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

// List handles POST /api/users/list
func (h *UserHandler) List(c *gin.Context) {
	var req dto.UserListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	limit := req.Limit
	if limit <= 0 || limit > userUseCase.MaxListLimit {
		limit = userUseCase.MaxListLimit
	}

	params := persistence.UserListParams{
		Role:         req.Role,
		Status:       req.Status,
		EmailPrefix:  req.EmailPrefix,
		OrderByEmail: req.OrderBy == "email",
		Limit:        limit,
	}
	if req.Cursor != nil {
		params.Cursor = &persistence.UserListCursor{
			CreatedAt: req.Cursor.CreatedAt,
			Email:     req.Cursor.Email,
		}
	}

	rows, err := h.users.List(c.Request.Context(), params)
	if err != nil {
		h.logger.Error("Failed to list users", map[string]any{"error": err.Error()})
		respondError(c, err)
		return
	}

	users := make([]dto.UserResponse, 0, len(rows))
	for _, row := range rows {
		users = append(users, listedUserToDTO(row))
	}

	resp := dto.UserListResponse{Users: users}
	if len(rows) == limit {
		last := rows[len(rows)-1].User
		if params.OrderByEmail {
			resp.NextCursor = &dto.UserListCursor{Email: last.Email}
		} else {
			createdAt := last.CreatedAt
			resp.NextCursor = &dto.UserListCursor{CreatedAt: &createdAt}
		}
	}
	c.JSON(http.StatusOK, resp)
}

// Get handles POST /api/users/get
func (h *UserHandler) Get(c *gin.Context) {
	var req dto.UserGetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	row, err := h.users.Get(c.Request.Context(), req.UID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, listedUserToDTO(*row))
}

// Create handles POST /api/users/create
func (h *UserHandler) Create(c *gin.Context) {
	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	created, err := h.users.Create(c.Request.Context(), userUseCase.CreateUserInput{
		Email:       req.Email,
		Password:    req.Password,
		DisplayName: req.DisplayName,
		Role:        req.Role,
		Status:      req.Status,
		Plan:        req.Plan,
	})
	if err != nil {
		h.logger.Error("Failed to create user", map[string]any{
			"email": req.Email,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, userToDTO(created, false))
}

// Delete handles POST /api/users/delete
func (h *UserHandler) Delete(c *gin.Context) {
	var req dto.UIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if err := h.users.Delete(c.Request.Context(), req.UID); err != nil {
		h.logger.Error("Failed to delete user", map[string]any{
			"uid":   req.UID,
			"error": err.Error(),
		})
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// SetStatus handles POST /api/users/set-status
func (h *UserHandler) SetStatus(c *gin.Context) {
	var req dto.SetUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	result, err := h.users.SetStatus(c.Request.Context(), actor.UID, req.UID, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SetUserStatusResponse{
		OK:              true,
		Status:          string(result.Status),
		UpdatedServices: result.UpdatedServices,
	})
}

// SetPricingGate handles POST /api/users/set-pricing-gate
func (h *UserHandler) SetPricingGate(c *gin.Context) {
	var req dto.SetPricingGateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	patch, err := pricingGatePatchFromDTO(req)
	if err != nil {
		respondBadRequest(c, "Invalid pricing gate field: "+err.Error())
		return
	}

	actor := middleware.CallerIdentity(c)
	result, err := h.users.SetPricingGate(c.Request.Context(), actor.UID, req.UID, patch)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.SetPricingGateResponse{
		OK:              true,
		PricingGate:     pricingGateToDTO(result.PricingGate),
		UpdatedServices: result.UpdatedServices,
	})
}

// SetEmailVerified handles POST /api/users/set-email-verified
func (h *UserHandler) SetEmailVerified(c *gin.Context) {
	var req dto.SetEmailVerifiedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	if err := h.users.SetEmailVerified(c.Request.Context(), req.UID, req.Verified); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.OKResponse{OK: true})
}

// GenerateVerificationLink handles POST /api/users/generate-verification-link
func (h *UserHandler) GenerateVerificationLink(c *gin.Context) {
	var req dto.VerificationLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request format: "+err.Error())
		return
	}

	link, err := h.users.GenerateVerificationLink(c.Request.Context(), req.UID, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.VerificationLinkResponse{OK: true, Link: link})
}

func listedUserToDTO(row userUseCase.ListedUser) dto.UserResponse {
	return userToDTO(row.User, row.EmailVerified)
}

func userToDTO(u *entity.User, emailVerified bool) dto.UserResponse {
	return dto.UserResponse{
		UID:           u.UID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Role:          string(u.Role),
		Plan:          u.Plan,
		Status:        string(u.Status),
		EmailVerified: emailVerified,
		PricingGate:   pricingGateToDTO(u.PricingGate),
		CreatedAt:     u.CreatedAt,
	}
}

func pricingGateToDTO(g *entity.PricingGate) *dto.PricingGateView {
	if g == nil {
		return nil
	}
	return &dto.PricingGateView{
		Mode:               g.Mode,
		ShowAt:             g.ShowAt,
		EnforceAfterMonths: g.EnforceAfterMonths,
	}
}

// pricingGatePatchFromDTO turns the tri-state wire fields into a patch:
// an absent field is untouched, a JSON null clears it, a value sets it.
func pricingGatePatchFromDTO(req dto.SetPricingGateRequest) (userUseCase.PricingGatePatch, error) {
	var patch userUseCase.PricingGatePatch

	if len(req.Mode) > 0 {
		if string(req.Mode) == "null" {
			patch.ClearMode = true
		} else {
			var mode string
			if err := json.Unmarshal(req.Mode, &mode); err != nil {
				return patch, err
			}
			patch.Mode = &mode
		}
	}

	if len(req.ShowAt) > 0 {
		if string(req.ShowAt) == "null" {
			patch.ClearShowAt = true
		} else {
			var showAt string
			if err := json.Unmarshal(req.ShowAt, &showAt); err != nil {
				return patch, err
			}
			patch.ShowAt = &showAt
		}
	}

	if len(req.EnforceAfterMonths) > 0 {
		if string(req.EnforceAfterMonths) == "null" {
			patch.ClearEnforceAfterMonths = true
		} else {
			var months int
			if err := json.Unmarshal(req.EnforceAfterMonths, &months); err != nil {
				return patch, err
			}
			patch.EnforceAfterMonths = &months
		}
	}

	return patch, nil
}

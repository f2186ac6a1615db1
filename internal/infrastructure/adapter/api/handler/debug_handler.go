package handler

import (
	"net/http"

	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	identityport "github.com/cloudai/owner-console/internal/domain/port/identity"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/middleware"
	"github.com/gin-gonic/gin"
)

// DebugHandler exposes the token introspection endpoint
type DebugHandler struct {
	verifier identityport.TokenVerifier
	logger   coreport.Logger
}

// NewDebugHandler creates a new debug handler instance
func NewDebugHandler(verifier identityport.TokenVerifier, logger coreport.Logger) *DebugHandler {
	return &DebugHandler{verifier: verifier, logger: logger}
}

// WhoAmI handles GET /api/debug/whoami. It reports the decoded token without
// any role requirement so operators can diagnose auth problems.
func (h *DebugHandler) WhoAmI(c *gin.Context) {
	token := middleware.BearerToken(c)
	identity, err := h.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		c.JSON(http.StatusOK, dto.WhoAmIResponse{OK: false, Error: err.Error()})
		return
	}
	c.JSON(http.StatusOK, dto.WhoAmIResponse{
		OK:       true,
		UID:      identity.UID,
		Email:    identity.Email,
		Issuer:   identity.Issuer,
		IssuedAt: identity.IssuedAt,
	})
}

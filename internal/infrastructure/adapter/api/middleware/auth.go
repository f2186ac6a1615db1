package middleware

import (
	"net/http"
	"strings"

	"github.com/cloudai/owner-console/internal/domain/entity"
	domainerr "github.com/cloudai/owner-console/internal/domain/error"
	coreport "github.com/cloudai/owner-console/internal/domain/port/core"
	identityport "github.com/cloudai/owner-console/internal/domain/port/identity"
	"github.com/cloudai/owner-console/internal/domain/port/persistence"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// Context keys under which the verified caller is stored
const (
	identityKey = "console.identity"
	roleKey     = "console.role"
)

// Authenticator verifies bearer tokens and resolves the caller's role.
// A role claim embedded in the token wins; otherwise the role comes from
// the caller's profile document.
type Authenticator struct {
	verifier identityport.TokenVerifier
	users    persistence.UserRepository
	logger   coreport.Logger
}

// NewAuthenticator creates an authenticator backed by the given verifier and profile store
func NewAuthenticator(
	verifier identityport.TokenVerifier,
	users persistence.UserRepository,
	logger coreport.Logger,
) *Authenticator {
	return &Authenticator{verifier: verifier, users: users, logger: logger}
}

// BearerToken extracts the raw token from the Authorization header
func BearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CallerIdentity returns the verified caller stored by the auth middleware
func CallerIdentity(c *gin.Context) *identityport.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*identityport.Identity)
	return id
}

// CallerRole returns the resolved role stored by the auth middleware
func CallerRole(c *gin.Context) entity.Role {
	v, ok := c.Get(roleKey)
	if !ok {
		return ""
	}
	role, _ := v.(entity.Role)
	return role
}

// RequireModerator verifies the bearer token and admits owner and admin callers
func (a *Authenticator) RequireModerator() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, role, ok := a.authenticate(c)
		if !ok {
			return
		}
		if !role.IsModerator() {
			a.logger.Warn("Request with insufficient role rejected", map[string]any{
				"uid":  identity.UID,
				"role": string(role),
				"path": c.Request.URL.Path,
			})
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Insufficient role",
			})
			return
		}

		c.Set(identityKey, identity)
		c.Set(roleKey, role)
		c.Next()
	}
}

// RequireAdmin gates destructive endpoints. It assumes RequireModerator already
// ran on the route group and only rechecks the stored role.
func (a *Authenticator) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		role := CallerRole(c)
		if role != entity.RoleAdmin && role != entity.RoleOwner {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Admin role required",
			})
			return
		}
		c.Next()
	}
}

func (a *Authenticator) authenticate(c *gin.Context) (*identityport.Identity, entity.Role, bool) {
	token := BearerToken(c)
	identity, err := a.verifier.Verify(c.Request.Context(), token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
			Code:    domainerr.ErrorCode(domainerr.ErrUnauthenticated),
			Message: "Missing or invalid bearer token",
		})
		return nil, "", false
	}

	role := entity.Role(identity.Role)
	if role == "" {
		profile, err := a.users.GetByUID(c.Request.Context(), identity.UID)
		if err != nil {
			a.logger.Warn("Role lookup failed for authenticated caller", map[string]any{
				"uid":   identity.UID,
				"error": err.Error(),
			})
			c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{
				Code:    domainerr.ErrorCode(domainerr.ErrForbidden),
				Message: "Insufficient role",
			})
			return nil, "", false
		}
		role = profile.Role
	}
	return identity, role, true
}

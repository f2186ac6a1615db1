package handler

import (
	"net/http"

	domainerr "github.com/cloudai/owner-console/internal/domain/error"
	"github.com/cloudai/owner-console/internal/infrastructure/adapter/api/dto"
	"github.com/gin-gonic/gin"
)

// respondError maps a domain error to its HTTP status and standardized code
func respondError(c *gin.Context, err error) {
	c.JSON(domainerr.HTTPStatus(err), dto.ErrorResponse{
		Code:    domainerr.ErrorCode(err),
		Message: err.Error(),
	})
}

// respondBadRequest reports a malformed request body or parameter
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    domainerr.ErrorCode(domainerr.ErrBadRequest),
		Message: message,
	})
}

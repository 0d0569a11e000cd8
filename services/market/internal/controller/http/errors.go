package http

import (
	"net/http"
	"strconv"

	"lead-market/pkg/logger"
	"lead-market/pkg/middleware"
	"lead-market/services/market/internal/entity"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func statusFor(err error) int {
	switch entity.KindOf(err) {
	case entity.KindValidation:
		return http.StatusBadRequest
	case entity.KindNotFound:
		return http.StatusNotFound
	case entity.KindConflict:
		return http.StatusConflict
	case entity.KindAuthorization:
		return http.StatusUnauthorized
	case entity.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, log *logger.Logger, err error) {
	status := statusFor(err)
	message := err.Error()
	if status >= http.StatusInternalServerError {
		log.Error("%s %s failed: %v", c.Request.Method, c.FullPath(), err)
		if entity.KindOf(err) == entity.KindInternal {
			message = "internal server error"
		}
	}
	c.JSON(status, ErrorResponse{Error: message, Code: entity.CodeOf(err)})
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error(), Code: entity.ErrInvalidInput.Code})
}

func currentUser(c *gin.Context) (string, entity.UserRole) {
	return c.GetString(middleware.ContextUserID), entity.UserRole(c.GetString(middleware.ContextUserRole))
}

func pagination(c *gin.Context, defaultLimit int) (int, int) {
	limit := defaultLimit
	offset := 0

	if limitStr := c.Query("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	if offsetStr := c.Query("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}
	return limit, offset
}

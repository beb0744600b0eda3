package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cineasta-server/internal/model"
)

// APIError представляет стандартизированный ответ об ошибке.
type APIError struct {
	Message string `json:"message"`
}

// handleServiceError отображает доменные ошибки в HTTP статусы.
// Тексты внутренних ошибок наружу не отдаются.
func handleServiceError(c *gin.Context, err error, logger *zap.Logger) {
	var statusCode int
	var apiErr APIError

	switch {
	case errors.Is(err, model.ErrUnauthorized):
		statusCode = http.StatusForbidden
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, model.ErrNotFound), errors.Is(err, model.ErrUserNotFound):
		statusCode = http.StatusNotFound
		apiErr = APIError{Message: "Resource not found or access denied"}
	case errors.Is(err, model.ErrInvalidTransition):
		statusCode = http.StatusConflict
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, model.ErrBadRequest):
		statusCode = http.StatusBadRequest
		apiErr = APIError{Message: err.Error()}
	case errors.Is(err, model.ErrGenerationFailed):
		statusCode = http.StatusBadGateway
		apiErr = APIError{Message: "Image generation service unavailable"}
	case errors.Is(err, model.ErrStorageUnavailable), errors.Is(err, model.ErrDatabaseUnavailable):
		statusCode = http.StatusServiceUnavailable
		apiErr = APIError{Message: "Service temporarily unavailable"}
	default:
		logger.Error("Unhandled service error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		apiErr = APIError{Message: "Internal server error"}
	}

	c.AbortWithStatusJSON(statusCode, apiErr)
}

package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"trashit/internal/domain"
	"trashit/internal/middleware"
	"trashit/internal/vision"
)

// APIResponse is the envelope for error responses.
type APIResponse struct {
	Success bool      `json:"success"`
	Error   *APIError `json:"error,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrMissingFile):
		return http.StatusBadRequest, "MISSING_FILE", "multipart field \"file\" is required"
	case errors.Is(err, domain.ErrEmptyFile):
		return http.StatusBadRequest, "EMPTY_FILE", "uploaded file is empty"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: jpg, png, webp"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnparseableVisionResponse):
		return http.StatusBadGateway, "UNPARSEABLE_VISION_RESPONSE", "vision model returned no usable classification"
	case errors.Is(err, domain.ErrVisionRateLimited):
		return http.StatusTooManyRequests, "VISION_RATE_LIMITED", "vision service is rate limited; retry later"
	case errors.Is(err, domain.ErrVisionTimeout):
		return http.StatusGatewayTimeout, "VISION_TIMEOUT", "vision service did not respond in time"
	case errors.Is(err, domain.ErrVisionUnavailable):
		return http.StatusBadGateway, "VISION_UNAVAILABLE", "vision service is unavailable"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)

	var rlErr *vision.RateLimitError
	if status == http.StatusTooManyRequests && errors.As(err, &rlErr) {
		c.Header("Retry-After", strconv.Itoa(int(rlErr.RetryAfter.Seconds())))
	}

	log := middleware.GetLogger(c)
	if status >= 500 {
		log.Error("request failed", zap.String("code", code), zap.Error(err))
	} else {
		log.Info("request rejected", zap.String("code", code), zap.Error(err))
	}
	_ = c.Error(err)
	RespondError(c, status, code, msg)
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"trashit/internal/domain"
	"trashit/internal/service"
)

// ValuationHandler handles image analysis endpoints.
type ValuationHandler struct {
	svc      service.ValuationService
	maxBytes int64
}

// NewValuationHandler creates a new ValuationHandler.
func NewValuationHandler(svc service.ValuationService, maxBytes int64) *ValuationHandler {
	return &ValuationHandler{svc: svc, maxBytes: maxBytes}
}

// multipartOverhead leaves room for boundaries and part headers around the file.
const multipartOverhead = 64 << 10

// Analyze handles POST /analyze-waste
// Expects multipart/form-data with an image in field "file".
func (h *ValuationHandler) Analyze(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes+multipartOverhead)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			HandleError(c, domain.ErrFileTooLarge)
			return
		}
		HandleError(c, domain.ErrMissingFile)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > h.maxBytes {
		HandleError(c, domain.ErrFileTooLarge)
		return
	}

	resp, err := h.svc.Analyze(c.Request.Context(), service.AnalyzeInput{
		File:     file,
		Filename: header.Filename,
	})
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

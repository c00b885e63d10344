package handler_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trashit/internal/domain"
	"trashit/internal/handler"
	"trashit/internal/service"
	"trashit/internal/vision"
	"trashit/mocks"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func pcbValuation() *domain.ValuationResponse {
	return &domain.ValuationResponse{
		WasteType:      "PCB",
		Condition:      "clean",
		UsabilityScore: 0.83,
		QualityGrade:   domain.GradeA,
		MaterialsDetected: []domain.DetectedMaterial{
			{Material: "Gold", Confidence: 0.8},
			{Material: "Copper", Confidence: 0.5},
		},
		Pricing:           domain.Pricing{PricePerKg: 293.5, PriceRange: [2]float64{264.15, 322.85}},
		PricingBreakdown:  domain.PriceBreakdown{BasePrice: 250, GradeMultiplier: 1, MaterialBonus: 43.5},
		VendorTrustScore:  1.0,
		RecommendedBuyers: []string{"Precious Metal Refiners", "Wire & Cable Manufacturers"},
		AIVerified:        true,
	}
}

func TestValuationHandler_Analyze_Success(t *testing.T) {
	mockSvc := new(mocks.MockValuationService)
	h := handler.NewValuationHandler(mockSvc, 1<<20)

	image := []byte{0xFF, 0xD8, 0xFF, 0xE0, 'j', 'p', 'g'}
	mockSvc.On("Analyze", mock.Anything, mock.MatchedBy(func(in service.AnalyzeInput) bool {
		data, _ := io.ReadAll(in.File)
		return in.Filename == "board.jpg" && bytes.Equal(data, image)
	})).Return(pcbValuation(), nil)

	body, contentType := multipartBody(t, "file", "board.jpg", image)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/analyze-waste", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PCB", resp["waste_type"])
	assert.Equal(t, "A", resp["quality_grade"])
	assert.Equal(t, true, resp["ai_verified"])
	assert.Equal(t, 1.0, resp["vendor_trust_score"])
	pricing := resp["pricing"].(map[string]interface{})
	assert.Equal(t, 293.5, pricing["price_per_kg"])
	assert.Equal(t, []interface{}{264.15, 322.85}, pricing["price_range"])
	breakdown := resp["pricing_breakdown"].(map[string]interface{})
	assert.Equal(t, 43.5, breakdown["material_bonus"])
	assert.Len(t, resp["materials_detected"], 2)
	assert.Equal(t, []interface{}{"Precious Metal Refiners", "Wire & Cable Manufacturers"}, resp["recommended_buyers"])
	mockSvc.AssertExpectations(t)
}

func TestValuationHandler_Analyze_NoFile(t *testing.T) {
	mockSvc := new(mocks.MockValuationService)
	h := handler.NewValuationHandler(mockSvc, 1<<20)

	body, contentType := multipartBody(t, "image", "board.jpg", []byte("x"))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/analyze-waste", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var resp handler.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "MISSING_FILE", resp.Error.Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestValuationHandler_Analyze_NotMultipart(t *testing.T) {
	mockSvc := new(mocks.MockValuationService)
	h := handler.NewValuationHandler(mockSvc, 1<<20)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/analyze-waste", bytes.NewBufferString(`{"file":"x"}`))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Analyze(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValuationHandler_Analyze_TooLarge(t *testing.T) {
	mockSvc := new(mocks.MockValuationService)
	h := handler.NewValuationHandler(mockSvc, 1024)

	body, contentType := multipartBody(t, "file", "big.jpg", make([]byte, 200<<10))
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/analyze-waste", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	mockSvc.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestValuationHandler_Analyze_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"unparseable", fmt.Errorf("%w: no JSON object", domain.ErrUnparseableVisionResponse), http.StatusBadGateway, "UNPARSEABLE_VISION_RESPONSE"},
		{"non_finite_price", fmt.Errorf("evaluating classification: %w: price is not finite", domain.ErrUnparseableVisionResponse), http.StatusBadGateway, "UNPARSEABLE_VISION_RESPONSE"},
		{"unavailable", fmt.Errorf("%w: boom", domain.ErrVisionUnavailable), http.StatusBadGateway, "VISION_UNAVAILABLE"},
		{"timeout", fmt.Errorf("%w: deadline", domain.ErrVisionTimeout), http.StatusGatewayTimeout, "VISION_TIMEOUT"},
		{"unsupported", domain.ErrUnsupportedFileType, http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE"},
		{"empty", domain.ErrEmptyFile, http.StatusBadRequest, "EMPTY_FILE"},
		{"too_large", domain.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE"},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockSvc := new(mocks.MockValuationService)
			h := handler.NewValuationHandler(mockSvc, 1<<20)
			mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(nil, tt.err)

			body, contentType := multipartBody(t, "file", "x.jpg", []byte{0xFF, 0xD8, 0xFF})
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request, _ = http.NewRequest(http.MethodPost, "/analyze-waste", body)
			c.Request.Header.Set("Content-Type", contentType)

			h.Analyze(c)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp handler.APIResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
		})
	}
}

func TestValuationHandler_Analyze_RateLimitedSetsRetryAfter(t *testing.T) {
	mockSvc := new(mocks.MockValuationService)
	h := handler.NewValuationHandler(mockSvc, 1<<20)
	rlErr := vision.NewRateLimitError("gemini", errors.New("429"), 42)
	mockSvc.On("Analyze", mock.Anything, mock.Anything).Return(nil, fmt.Errorf("%w: %w", domain.ErrVisionRateLimited, rlErr))

	body, contentType := multipartBody(t, "file", "x.jpg", []byte{0xFF, 0xD8, 0xFF})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/analyze-waste", body)
	c.Request.Header.Set("Content-Type", contentType)

	h.Analyze(c)

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "42", w.Header().Get("Retry-After"))
}

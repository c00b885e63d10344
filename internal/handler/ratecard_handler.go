package handler

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"trashit/internal/ratecard"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	csvContentType  = "text/csv; charset=utf-8"
)

// RateCardHandler serves the active valuation tables.
type RateCardHandler struct {
	card ratecard.Card
}

// NewRateCardHandler creates a new RateCardHandler for a card built at start-up.
func NewRateCardHandler(card ratecard.Card) *RateCardHandler {
	return &RateCardHandler{card: card}
}

// Get handles GET /rate-card
func (h *RateCardHandler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.card)
}

// Export handles GET /rate-card/export?format=csv|xlsx
func (h *RateCardHandler) Export(c *gin.Context) {
	var buf bytes.Buffer

	switch strings.ToLower(c.DefaultQuery("format", "csv")) {
	case "csv":
		if err := ratecard.WriteCSV(&buf, h.card); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="rate-card.csv"`)
		c.Data(http.StatusOK, csvContentType, buf.Bytes())
	case "xlsx":
		if err := ratecard.WriteXLSX(&buf, h.card); err != nil {
			HandleError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="rate-card.xlsx"`)
		c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
	default:
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
	}
}

package ratecard_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"trashit/internal/ratecard"
	"trashit/internal/valuation"
)

func TestBuild_DefaultTables(t *testing.T) {
	card := ratecard.Build(valuation.DefaultTables())

	assert.Equal(t, []ratecard.Entry{
		{Name: "Metal", Value: 180},
		{Name: "Mixed E-waste", Value: 90},
		{Name: "PCB", Value: 250},
		{Name: "Plastic", Value: 30},
	}, card.BasePrices)
	assert.Equal(t, 50.0, card.DefaultBasePrice)
	assert.Equal(t, []ratecard.Entry{{Name: "A", Value: 1}, {Name: "B", Value: 0.75}, {Name: "C", Value: 0.5}}, card.GradeMultipliers)
	assert.Len(t, card.MaterialValues, 7)
	assert.Equal(t, "Aluminum", card.MaterialValues[0].Name)
	require.Len(t, card.Buyers, 5)
	assert.Equal(t, ratecard.BuyerEntry{Material: "Aluminum", Industries: []string{"Metal Smelters"}}, card.Buyers[0])
	require.Len(t, card.GradeBands, 3)
	assert.Equal(t, ratecard.BandEntry{Condition: "clean", AMin: 0.75, BMin: 0.5}, card.GradeBands[0])
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	card := ratecard.Build(valuation.DefaultTables())

	require.NoError(t, ratecard.WriteCSV(&buf, card))

	data := buf.Bytes()
	require.True(t, bytes.HasPrefix(data, ratecard.BOM))

	records, err := csv.NewReader(bytes.NewReader(data[len(ratecard.BOM):])).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"Section", "Name", "Value"}, records[0])
	assert.Contains(t, records, []string{"base_price", "PCB", "250.00"})
	assert.Contains(t, records, []string{"base_price", "default", "50.00"})
	assert.Contains(t, records, []string{"grade_multiplier", "B", "0.75"})
	assert.Contains(t, records, []string{"buyer_industries", "Copper", "Wire & Cable Manufacturers"})
	assert.Contains(t, records, []string{"grade_band_a_min", "damaged", "0.95"})
	assert.Len(t, records, 1+len(card.Rows()))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, ratecard.WriteXLSX(&buf, ratecard.Build(valuation.DefaultTables())))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	assert.Equal(t, []string{"Base Prices", "Grade Multipliers", "Material Values", "Buyers", "Grade Bands"}, f.GetSheetList())

	rows, err := f.GetRows("Base Prices")
	require.NoError(t, err)
	assert.Equal(t, []string{"Waste Type", "Base Price (INR/kg)"}, rows[0])
	assert.Equal(t, []string{"Metal", "180"}, rows[1])
	assert.Equal(t, "(default)", rows[len(rows)-1][0])

	bands, err := f.GetRows("Grade Bands")
	require.NoError(t, err)
	assert.Equal(t, []string{"mixed", "0.85", "0.6"}, bands[2])
}

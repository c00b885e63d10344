package ratecard

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	sheetBasePrices  = "Base Prices"
	sheetMultipliers = "Grade Multipliers"
	sheetMaterials   = "Material Values"
	sheetBuyers      = "Buyers"
	sheetGradeBands  = "Grade Bands"
)

// WriteXLSX writes the card as a workbook with one sheet per table.
func WriteXLSX(w io.Writer, c Card) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	basePrices := entryRows(c.BasePrices)
	basePrices = append(basePrices, []interface{}{"(default)", c.DefaultBasePrice})

	buyers := make([][]interface{}, 0, len(c.Buyers))
	for _, b := range c.Buyers {
		buyers = append(buyers, []interface{}{b.Material, strings.Join(b.Industries, "; ")})
	}

	bands := make([][]interface{}, 0, len(c.GradeBands))
	for _, b := range c.GradeBands {
		bands = append(bands, []interface{}{b.Condition, b.AMin, b.BMin})
	}

	sheets := []struct {
		name   string
		header []interface{}
		rows   [][]interface{}
	}{
		{sheetBasePrices, []interface{}{"Waste Type", "Base Price (INR/kg)"}, basePrices},
		{sheetMultipliers, []interface{}{"Grade", "Multiplier"}, entryRows(c.GradeMultipliers)},
		{sheetMaterials, []interface{}{"Material", "Value (INR/kg)"}, entryRows(c.MaterialValues)},
		{sheetBuyers, []interface{}{"Material", "Buyer Industries"}, buyers},
		{sheetGradeBands, []interface{}{"Condition", "Grade A Min", "Grade B Min"}, bands},
	}

	for i, s := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", s.name); err != nil {
				return fmt.Errorf("renaming sheet: %w", err)
			}
		} else if _, err := f.NewSheet(s.name); err != nil {
			return fmt.Errorf("creating sheet %q: %w", s.name, err)
		}

		if err := f.SetSheetRow(s.name, "A1", &s.header); err != nil {
			return fmt.Errorf("writing %q header: %w", s.name, err)
		}
		for r, row := range s.rows {
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(s.name, cell, &row); err != nil {
				return fmt.Errorf("writing %q row %d: %w", s.name, r+2, err)
			}
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func entryRows(entries []Entry) [][]interface{} {
	rows := make([][]interface{}, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []interface{}{e.Name, e.Value})
	}
	return rows
}

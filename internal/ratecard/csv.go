package ratecard

import (
	"encoding/csv"
	"io"
	"strconv"
)

// BOM is the UTF-8 byte order mark, written first so Excel on Windows reads UTF-8.
var BOM = []byte{0xEF, 0xBB, 0xBF}

var csvHeader = []string{"Section", "Name", "Value"}

// WriteCSV writes the card as a BOM-prefixed CSV document.
func WriteCSV(w io.Writer, c Card) error {
	if _, err := w.Write(BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	if err := cw.WriteAll(c.Rows()); err != nil {
		return err
	}
	return cw.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// Package ratecard renders the active valuation tables as JSON, CSV and XLSX.
package ratecard

import (
	"sort"
	"strings"

	"trashit/internal/domain"
	"trashit/internal/valuation"
)

// Entry is one named numeric rate.
type Entry struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// BuyerEntry lists the buyer industries for a material.
type BuyerEntry struct {
	Material   string   `json:"material"`
	Industries []string `json:"industries"`
}

// BandEntry holds the grade thresholds for a condition.
type BandEntry struct {
	Condition string  `json:"condition"`
	AMin      float64 `json:"a_min"`
	BMin      float64 `json:"b_min"`
}

// Card is the rate card served at GET /rate-card.
type Card struct {
	BasePrices       []Entry      `json:"base_prices"`
	DefaultBasePrice float64      `json:"default_base_price"`
	GradeMultipliers []Entry      `json:"grade_multipliers"`
	MaterialValues   []Entry      `json:"material_values"`
	Buyers           []BuyerEntry `json:"buyers"`
	GradeBands       []BandEntry  `json:"grade_bands"`
}

// Build flattens the tables into a Card with every list sorted by name.
func Build(t valuation.Tables) Card {
	card := Card{
		BasePrices:       sortedEntries(t.BasePrice),
		DefaultBasePrice: valuation.DefaultBasePrice,
		MaterialValues:   sortedEntries(t.MaterialValue),
	}

	multipliers := make(map[string]float64, len(t.GradeMultiplier))
	for g, m := range t.GradeMultiplier {
		multipliers[string(g)] = m
	}
	card.GradeMultipliers = sortedEntries(multipliers)

	for _, material := range sortedKeys(t.Industries) {
		inds := append([]string(nil), t.Industries[material]...)
		sort.Strings(inds)
		card.Buyers = append(card.Buyers, BuyerEntry{Material: material, Industries: inds})
	}

	for _, cond := range []domain.Condition{domain.ConditionClean, domain.ConditionMixed, domain.ConditionDamaged} {
		if b, ok := t.GradeBands[cond]; ok {
			card.GradeBands = append(card.GradeBands, BandEntry{Condition: string(cond), AMin: b.AMin, BMin: b.BMin})
		}
	}
	return card
}

// Rows returns the card as section/name/value rows, in the order the exports write them.
func (c Card) Rows() [][]string {
	var rows [][]string
	for _, e := range c.BasePrices {
		rows = append(rows, []string{"base_price", e.Name, formatFloat(e.Value)})
	}
	rows = append(rows, []string{"base_price", "default", formatFloat(c.DefaultBasePrice)})
	for _, e := range c.GradeMultipliers {
		rows = append(rows, []string{"grade_multiplier", e.Name, formatFloat(e.Value)})
	}
	for _, e := range c.MaterialValues {
		rows = append(rows, []string{"material_value", e.Name, formatFloat(e.Value)})
	}
	for _, b := range c.Buyers {
		rows = append(rows, []string{"buyer_industries", b.Material, strings.Join(b.Industries, "; ")})
	}
	for _, b := range c.GradeBands {
		rows = append(rows,
			[]string{"grade_band_a_min", b.Condition, formatFloat(b.AMin)},
			[]string{"grade_band_b_min", b.Condition, formatFloat(b.BMin)},
		)
	}
	return rows
}

func sortedEntries(m map[string]float64) []Entry {
	out := make([]Entry, 0, len(m))
	for _, k := range sortedKeys(m) {
		out = append(out, Entry{Name: k, Value: m[k]})
	}
	return out
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

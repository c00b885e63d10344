// Package valuation holds the deterministic part of the e-waste valuation:
// grading, pricing, confidence verification, buyer matching and trust scoring.
// Every function is pure; lookup tables are passed in explicitly and never mutated.
package valuation

import (
	"math"

	"trashit/internal/config"
	"trashit/internal/domain"
)

// DefaultBasePrice is used for waste types missing from the base price table.
const DefaultBasePrice = 50.0

// GradeBand holds the minimum usability score needed for grades A and B.
type GradeBand struct {
	AMin float64 `json:"a_min"`
	BMin float64 `json:"b_min"`
}

// Tables is the immutable lookup data used by the valuation functions.
// Build it once at start-up and share it between requests read-only.
type Tables struct {
	BasePrice       map[string]float64             `json:"base_price"`
	GradeMultiplier map[domain.Grade]float64       `json:"grade_multiplier"`
	MaterialValue   map[string]float64             `json:"material_value"`
	Industries      map[string][]string            `json:"industries"`
	GradeBands      map[domain.Condition]GradeBand `json:"grade_bands"`
}

// DefaultTables returns the built-in price, material and industry tables
// with the default grade bands.
func DefaultTables() Tables {
	return Tables{
		BasePrice: map[string]float64{
			domain.WasteTypePCB:     250,
			domain.WasteTypeMetal:   180,
			domain.WasteTypePlastic: 30,
			domain.WasteTypeMixed:   90,
		},
		GradeMultiplier: map[domain.Grade]float64{
			domain.GradeA: 1.0,
			domain.GradeB: 0.75,
			domain.GradeC: 0.5,
		},
		MaterialValue: map[string]float64{
			domain.MaterialGold:     5000,
			domain.MaterialCopper:   700,
			domain.MaterialLithium:  1200,
			domain.MaterialAluminum: 200,
			domain.MaterialIron:     100,
			domain.MaterialPlastic:  30,
			domain.MaterialSilicon:  150,
		},
		Industries: map[string][]string{
			domain.MaterialGold:     {"Precious Metal Refiners"},
			domain.MaterialCopper:   {"Wire & Cable Manufacturers"},
			domain.MaterialPlastic:  {"Polymer Recycling Units"},
			domain.MaterialLithium:  {"Battery Recyclers"},
			domain.MaterialAluminum: {"Metal Smelters"},
		},
		GradeBands: DefaultGradeBands(),
	}
}

// DefaultGradeBands returns the assumed usability thresholds per condition.
// No reference thresholds exist for this mapping; operators tune them through config.
func DefaultGradeBands() map[domain.Condition]GradeBand {
	return map[domain.Condition]GradeBand{
		domain.ConditionClean:   {AMin: 0.75, BMin: 0.50},
		domain.ConditionMixed:   {AMin: 0.85, BMin: 0.60},
		domain.ConditionDamaged: {AMin: 0.95, BMin: 0.70},
	}
}

// NewTables returns the default tables with grade bands taken from cfg.
func NewTables(cfg *config.GradingConfig) Tables {
	t := DefaultTables()
	t.GradeBands = map[domain.Condition]GradeBand{
		domain.ConditionClean:   {AMin: cfg.Clean.AMin, BMin: cfg.Clean.BMin},
		domain.ConditionMixed:   {AMin: cfg.Mixed.AMin, BMin: cfg.Mixed.BMin},
		domain.ConditionDamaged: {AMin: cfg.Damaged.AMin, BMin: cfg.Damaged.BMin},
	}
	return t
}

// round2 rounds to two decimal places, half away from zero.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

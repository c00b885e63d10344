package valuation_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"trashit/internal/config"
	"trashit/internal/domain"
	"trashit/internal/valuation"
)

// These cases exercise the assumed default bands:
// clean {A 0.75, B 0.50}, mixed {A 0.85, B 0.60}, damaged {A 0.95, B 0.70}.
func TestAssignGrade_DefaultBands(t *testing.T) {
	bands := valuation.DefaultGradeBands()

	tests := []struct {
		name      string
		condition string
		score     float64
		want      domain.Grade
	}{
		{"clean_high", "clean", 0.83, domain.GradeA},
		{"clean_at_a_threshold", "clean", 0.75, domain.GradeA},
		{"clean_mid", "clean", 0.6, domain.GradeB},
		{"clean_low", "clean", 0.2, domain.GradeC},
		{"mixed_high", "mixed", 0.9, domain.GradeA},
		{"mixed_just_below_a", "mixed", 0.84, domain.GradeB},
		{"mixed_low", "mixed", 0.5, domain.GradeC},
		{"damaged_perfect", "damaged", 1.0, domain.GradeA},
		{"damaged_good", "damaged", 0.8, domain.GradeB},
		{"damaged_mid", "damaged", 0.6, domain.GradeC},
		{"case_and_space_insensitive", "  Clean ", 0.8, domain.GradeA},
		{"unknown_condition_uses_damaged", "shredded", 0.8, domain.GradeB},
		{"empty_condition_uses_damaged", "", 0.9, domain.GradeB},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, valuation.AssignGrade(bands, tt.condition, tt.score))
		})
	}
}

func TestAssignGrade_ClampsScore(t *testing.T) {
	bands := valuation.DefaultGradeBands()

	assert.Equal(t, domain.GradeA, valuation.AssignGrade(bands, "damaged", 7.5))
	assert.Equal(t, domain.GradeC, valuation.AssignGrade(bands, "clean", -3))
	assert.Equal(t, domain.GradeC, valuation.AssignGrade(bands, "clean", math.NaN()))
}

func TestAssignGrade_HigherUsabilityNeverLowersGrade(t *testing.T) {
	bands := valuation.DefaultGradeBands()
	rank := map[domain.Grade]int{domain.GradeC: 0, domain.GradeB: 1, domain.GradeA: 2}

	for _, cond := range []string{"clean", "mixed", "damaged"} {
		prev := -1
		for s := 0.0; s <= 1.0; s += 0.05 {
			r := rank[valuation.AssignGrade(bands, cond, s)]
			assert.GreaterOrEqual(t, r, prev, "condition %s score %.2f", cond, s)
			prev = r
		}
	}
}

func TestAssignGrade_CleanerConditionNeverLowersGrade(t *testing.T) {
	bands := valuation.DefaultGradeBands()
	rank := map[domain.Grade]int{domain.GradeC: 0, domain.GradeB: 1, domain.GradeA: 2}

	for s := 0.0; s <= 1.0; s += 0.05 {
		clean := rank[valuation.AssignGrade(bands, "clean", s)]
		mixed := rank[valuation.AssignGrade(bands, "mixed", s)]
		damaged := rank[valuation.AssignGrade(bands, "damaged", s)]
		assert.GreaterOrEqual(t, clean, mixed)
		assert.GreaterOrEqual(t, mixed, damaged)
	}
}

func TestNewTables_UsesConfiguredBands(t *testing.T) {
	tables := valuation.NewTables(&config.GradingConfig{
		Clean:   config.GradeBandConfig{AMin: 0.9, BMin: 0.4},
		Mixed:   config.GradeBandConfig{AMin: 0.95, BMin: 0.5},
		Damaged: config.GradeBandConfig{AMin: 0.99, BMin: 0.8},
	})

	assert.Equal(t, domain.GradeB, valuation.AssignGrade(tables.GradeBands, "clean", 0.8))
	assert.Equal(t, domain.GradeB, valuation.AssignGrade(tables.GradeBands, "clean", 0.4))
	assert.Equal(t, 250.0, tables.BasePrice[domain.WasteTypePCB])
}

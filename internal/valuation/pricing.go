package valuation

import (
	"fmt"
	"math"

	"trashit/internal/domain"
)

const (
	materialBonusRate = 0.01
	rangeLowFactor    = 0.9
	rangeHighFactor   = 1.1
)

// PredictPrice computes the per-kg price estimate for a waste sample.
//
// Unknown waste types use DefaultBasePrice and unknown materials add nothing.
// A grade outside A/B/C is a caller bug and returns domain.ErrInvalidGrade.
// Confidences are not range-checked; they only scale the material bonus.
// A bonus or price that is not finite means the classification is unusable and
// returns domain.ErrUnparseableVisionResponse.
func PredictPrice(t Tables, wasteType string, grade domain.Grade, materials []domain.DetectedMaterial) (domain.PricingResult, error) {
	base, ok := t.BasePrice[wasteType]
	if !ok {
		base = DefaultBasePrice
	}

	multiplier, ok := t.GradeMultiplier[grade]
	if !ok {
		return domain.PricingResult{}, fmt.Errorf("%w: %q", domain.ErrInvalidGrade, grade)
	}

	bonus := MaterialBonus(t.MaterialValue, materials)
	final := base*multiplier + bonus

	res := domain.PricingResult{
		Price: round2(final),
		Range: [2]float64{round2(final * rangeLowFactor), round2(final * rangeHighFactor)},
		Breakdown: domain.PriceBreakdown{
			BasePrice:       base,
			GradeMultiplier: multiplier,
			MaterialBonus:   round2(bonus),
		},
	}
	for _, v := range []float64{res.Price, res.Range[0], res.Range[1], res.Breakdown.MaterialBonus} {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return domain.PricingResult{}, fmt.Errorf("%w: price is not finite (material bonus %v)", domain.ErrUnparseableVisionResponse, bonus)
		}
	}
	return res, nil
}

// MaterialBonus sums value × confidence × 1% over the detected materials.
func MaterialBonus(values map[string]float64, materials []domain.DetectedMaterial) float64 {
	var bonus float64
	for _, m := range materials {
		bonus += values[m.Material] * m.Confidence * materialBonusRate
	}
	return bonus
}

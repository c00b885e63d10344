package valuation_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trashit/internal/domain"
	"trashit/internal/valuation"
)

func materialsWithConfidence(confs ...float64) []domain.DetectedMaterial {
	out := make([]domain.DetectedMaterial, len(confs))
	for i, c := range confs {
		out[i] = domain.DetectedMaterial{Material: domain.MaterialCopper, Confidence: c}
	}
	return out
}

func TestVerifyConfidence(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		assert.False(t, valuation.VerifyConfidence(nil))
		assert.False(t, valuation.VerifyConfidence([]domain.DetectedMaterial{}))
	})

	t.Run("mean_exactly_threshold", func(t *testing.T) {
		assert.True(t, valuation.VerifyConfidence(materialsWithConfidence(0.6)))
		assert.True(t, valuation.VerifyConfidence(materialsWithConfidence(0.4, 0.8)))
		assert.True(t, valuation.VerifyConfidence(materialsWithConfidence(0.6, 0.6, 0.6)))
	})

	t.Run("mean_just_below_threshold", func(t *testing.T) {
		assert.False(t, valuation.VerifyConfidence(materialsWithConfidence(0.599999)))
	})

	t.Run("mean_above_threshold", func(t *testing.T) {
		assert.True(t, valuation.VerifyConfidence(materialsWithConfidence(0.91, 0.42)))
	})

	t.Run("mean_below_threshold", func(t *testing.T) {
		assert.False(t, valuation.VerifyConfidence(materialsWithConfidence(0.9, 0.1, 0.2)))
	})
}

func TestMatchIndustries_GoldAndCopper(t *testing.T) {
	materials := []domain.DetectedMaterial{
		{Material: domain.MaterialGold},
		{Material: domain.MaterialCopper},
	}

	buyers := valuation.MatchIndustries(valuation.DefaultTables().Industries, materials)

	assert.Equal(t, []string{"Precious Metal Refiners", "Wire & Cable Manufacturers"}, buyers)
}

func TestMatchIndustries_Deduplicates(t *testing.T) {
	industries := map[string][]string{
		"Gold":   {"Precious Metal Refiners", "E-waste Aggregators"},
		"Copper": {"Wire & Cable Manufacturers", "E-waste Aggregators"},
	}
	materials := []domain.DetectedMaterial{
		{Material: "Copper"}, {Material: "Gold"}, {Material: "Gold"},
	}

	buyers := valuation.MatchIndustries(industries, materials)

	assert.Equal(t, []string{"E-waste Aggregators", "Precious Metal Refiners", "Wire & Cable Manufacturers"}, buyers)
}

func TestMatchIndustries_UnknownMaterials(t *testing.T) {
	materials := []domain.DetectedMaterial{{Material: domain.MaterialIron}, {Material: domain.MaterialSilicon}}

	buyers := valuation.MatchIndustries(valuation.DefaultTables().Industries, materials)

	assert.NotNil(t, buyers)
	assert.Empty(t, buyers)
}

func TestVendorTrustScore(t *testing.T) {
	assert.Equal(t, 0.5, valuation.VendorTrustScore(false, domain.GradeB))
	assert.Equal(t, 0.5, valuation.VendorTrustScore(false, domain.GradeC))
	assert.Equal(t, 0.7, valuation.VendorTrustScore(false, domain.GradeA))
	assert.Equal(t, 0.8, valuation.VendorTrustScore(true, domain.GradeB))
	assert.Equal(t, 1.0, valuation.VendorTrustScore(true, domain.GradeA))
}

func TestEvaluate_PCBScenario(t *testing.T) {
	vr := &domain.VisionResult{
		WasteType:      domain.WasteTypePCB,
		Condition:      "clean",
		UsabilityScore: 0.83, // grade A under the assumed clean band
		MaterialsDetected: []domain.DetectedMaterial{
			{Material: domain.MaterialGold, Confidence: 0.8},
			{Material: domain.MaterialCopper, Confidence: 0.5},
		},
	}

	v, err := valuation.Evaluate(valuation.DefaultTables(), vr)

	require.NoError(t, err)
	assert.Equal(t, domain.GradeA, v.Grade)
	assert.InDelta(t, 293.5, v.Pricing.Price, 1e-9)
	assert.True(t, v.AIVerified) // mean 0.65
	assert.Equal(t, 1.0, v.TrustScore)
	assert.Equal(t, []string{"Precious Metal Refiners", "Wire & Cable Manufacturers"}, v.Buyers)
}

func TestEvaluate_NoMaterials(t *testing.T) {
	vr := &domain.VisionResult{WasteType: domain.WasteTypePlastic, Condition: "damaged", UsabilityScore: 0.1}

	v, err := valuation.Evaluate(valuation.DefaultTables(), vr)

	require.NoError(t, err)
	assert.Equal(t, domain.GradeC, v.Grade)
	assert.False(t, v.AIVerified)
	assert.Equal(t, 0.5, v.TrustScore)
	assert.InDelta(t, 15.0, v.Pricing.Price, 1e-9)
	assert.Empty(t, v.Buyers)
}

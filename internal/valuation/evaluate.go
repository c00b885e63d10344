package valuation

import "trashit/internal/domain"

// Valuation is the combined output of the deterministic pipeline.
type Valuation struct {
	Grade      domain.Grade
	Pricing    domain.PricingResult
	AIVerified bool
	Buyers     []string
	TrustScore float64
}

// Evaluate runs grading, pricing, verification, matching and trust scoring in sequence.
func Evaluate(t Tables, vr *domain.VisionResult) (*Valuation, error) {
	grade := AssignGrade(t.GradeBands, vr.Condition, vr.UsabilityScore)

	pricing, err := PredictPrice(t, vr.WasteType, grade, vr.MaterialsDetected)
	if err != nil {
		return nil, err
	}

	verified := VerifyConfidence(vr.MaterialsDetected)

	return &Valuation{
		Grade:      grade,
		Pricing:    pricing,
		AIVerified: verified,
		Buyers:     MatchIndustries(t.Industries, vr.MaterialsDetected),
		TrustScore: VendorTrustScore(verified, grade),
	}, nil
}

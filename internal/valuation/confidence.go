package valuation

import "trashit/internal/domain"

// VerificationThreshold is the mean confidence needed for a result to count as AI verified.
const VerificationThreshold = 0.6

// Absorbs float noise from summing confidences so a mean that is 0.6 on paper is not rejected.
const meanEpsilon = 1e-9

// VerifyConfidence reports whether the mean confidence of materials reaches
// VerificationThreshold. An empty list is never verified.
func VerifyConfidence(materials []domain.DetectedMaterial) bool {
	if len(materials) == 0 {
		return false
	}
	var sum float64
	for _, m := range materials {
		sum += m.Confidence
	}
	mean := sum / float64(len(materials))
	return mean+meanEpsilon >= VerificationThreshold
}

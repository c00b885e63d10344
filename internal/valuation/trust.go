package valuation

import "trashit/internal/domain"

const (
	trustBase          = 0.5
	trustVerifiedBonus = 0.3
	trustGradeABonus   = 0.2
)

// VendorTrustScore is 0.5, plus 0.3 when AI verified, plus 0.2 for grade A.
func VendorTrustScore(aiVerified bool, grade domain.Grade) float64 {
	score := trustBase
	if aiVerified {
		score += trustVerifiedBonus
	}
	if grade == domain.GradeA {
		score += trustGradeABonus
	}
	return round2(score)
}

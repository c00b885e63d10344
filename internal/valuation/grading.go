package valuation

import (
	"math"

	"trashit/internal/domain"
)

// AssignGrade maps a condition label and usability score to a quality grade.
// The score is clamped to [0,1]; unknown conditions use the damaged band.
func AssignGrade(bands map[domain.Condition]GradeBand, condition string, usability float64) domain.Grade {
	if math.IsNaN(usability) {
		usability = 0
	}
	score := clamp(usability, 0, 1)

	band, ok := bands[domain.NormalizeCondition(condition)]
	if !ok {
		return domain.GradeC
	}

	switch {
	case score >= band.AMin:
		return domain.GradeA
	case score >= band.BMin:
		return domain.GradeB
	default:
		return domain.GradeC
	}
}

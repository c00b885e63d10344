package valuation

import (
	"sort"

	"trashit/internal/domain"
)

// MatchIndustries returns the buyer industries for the detected materials,
// without duplicates and sorted lexicographically.
func MatchIndustries(industries map[string][]string, materials []domain.DetectedMaterial) []string {
	seen := make(map[string]struct{})
	buyers := make([]string, 0, len(materials))
	for _, m := range materials {
		for _, ind := range industries[m.Material] {
			if _, dup := seen[ind]; dup {
				continue
			}
			seen[ind] = struct{}{}
			buyers = append(buyers, ind)
		}
	}
	sort.Strings(buyers)
	return buyers
}

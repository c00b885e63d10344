package domain

import "strings"

// Grade is the discrete quality tier assigned to a waste sample.
type Grade string

const (
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
)

// Valid reports whether g is one of A, B or C.
func (g Grade) Valid() bool {
	switch g {
	case GradeA, GradeB, GradeC:
		return true
	}
	return false
}

// Condition is the physical state reported by the vision model.
type Condition string

const (
	ConditionClean   Condition = "clean"
	ConditionMixed   Condition = "mixed"
	ConditionDamaged Condition = "damaged"
)

// NormalizeCondition lowercases and trims a raw condition label.
// Labels outside the known set are returned as ConditionDamaged.
func NormalizeCondition(raw string) Condition {
	switch c := Condition(strings.ToLower(strings.TrimSpace(raw))); c {
	case ConditionClean, ConditionMixed, ConditionDamaged:
		return c
	default:
		return ConditionDamaged
	}
}

// Waste types the vision prompt asks the model to choose from.
const (
	WasteTypePCB     = "PCB"
	WasteTypeMetal   = "Metal"
	WasteTypePlastic = "Plastic"
	WasteTypeMixed   = "Mixed E-waste"
)

// Material names the vision prompt asks the model to choose from.
const (
	MaterialGold     = "Gold"
	MaterialCopper   = "Copper"
	MaterialLithium  = "Lithium"
	MaterialAluminum = "Aluminum"
	MaterialIron     = "Iron"
	MaterialPlastic  = "Plastic"
	MaterialSilicon  = "Silicon"
)

// AllowedContentTypes lists the image MIME types accepted for analysis,
// mapped to the file extension used when archiving.
var AllowedContentTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

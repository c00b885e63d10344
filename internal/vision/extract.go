package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"trashit/internal/domain"
)

// visionResultSchema is the JSON schema a vision response must satisfy.
// Confidence has no bounds; out-of-range values only scale the price bonus.
const visionResultSchema = `{
  "type": "object",
  "required": ["waste_type", "condition", "usability_score", "materials_detected"],
  "properties": {
    "waste_type": {"type": "string"},
    "condition": {"type": "string"},
    "usability_score": {"type": "number"},
    "materials_detected": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["material", "confidence"],
        "properties": {
          "material": {"type": "string"},
          "confidence": {"type": "number"}
        }
      }
    }
  }
}`

var visionSchema = mustCompileSchema(visionResultSchema)

func mustCompileSchema(src string) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		panic(fmt.Sprintf("vision: compiling result schema: %v", err))
	}
	return s
}

// ExtractJSONObject returns the first balanced {...} object in text.
// Braces inside JSON strings are ignored.
func ExtractJSONObject(text string) (string, error) {
	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", fmt.Errorf("no JSON object found in response: %s", truncate(text, 200))
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}
	return "", fmt.Errorf("unbalanced JSON object in response: %s", truncate(text[start:], 200))
}

// ParseVisionResult extracts, validates and decodes the vision model's answer.
// Every failure wraps domain.ErrUnparseableVisionResponse.
func ParseVisionResult(text string) (*domain.VisionResult, error) {
	raw, err := ExtractJSONObject(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrUnparseableVisionResponse, err)
	}

	result, err := visionSchema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid JSON: %v", domain.ErrUnparseableVisionResponse, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return nil, fmt.Errorf("%w: schema violations: %s", domain.ErrUnparseableVisionResponse, strings.Join(msgs, "; "))
	}

	var vr domain.VisionResult
	if err := json.Unmarshal([]byte(raw), &vr); err != nil {
		return nil, fmt.Errorf("%w: decoding: %v (raw: %s)", domain.ErrUnparseableVisionResponse, err, truncate(raw, 500))
	}
	if vr.MaterialsDetected == nil {
		vr.MaterialsDetected = []domain.DetectedMaterial{}
	}
	return &vr, nil
}

package port

import "context"

// ClassifyInput carries the image sent to the vision model.
type ClassifyInput struct {
	ImageBytes  []byte
	ContentType string
}

// ClassifyOutput contains the raw text returned by a vision model.
// The text is expected to embed one JSON object shaped like domain.VisionResult.
type ClassifyOutput struct {
	Text      string
	ModelUsed string
	Provider  string
}

// VisionClassifier abstracts the external image classification model.
type VisionClassifier interface {
	Classify(ctx context.Context, input ClassifyInput) (*ClassifyOutput, error)
}

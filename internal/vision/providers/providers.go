// Package providers registers every built-in vision provider with the vision factory.
package providers

import (
	"trashit/internal/config"
	"trashit/internal/port"
	"trashit/internal/vision"
	"trashit/internal/vision/claude"
	"trashit/internal/vision/gemini"
	"trashit/internal/vision/openai"
)

// RegisterAll registers the gemini, claude and openai providers.
func RegisterAll() {
	vision.RegisterProvider("gemini", func(cfg *config.VisionProviderConfig) (port.VisionClassifier, error) {
		return gemini.NewClassifier(cfg)
	})
	vision.RegisterProvider("claude", func(cfg *config.VisionProviderConfig) (port.VisionClassifier, error) {
		return claude.NewClassifier(cfg), nil
	})
	vision.RegisterProvider("openai", func(cfg *config.VisionProviderConfig) (port.VisionClassifier, error) {
		return openai.NewClassifier(cfg), nil
	})
}

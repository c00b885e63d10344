// Package gemini classifies waste images with the Gemini API through the genai SDK.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"trashit/internal/config"
	"trashit/internal/port"
	"trashit/internal/vision"
)

const provider = "gemini"

// Classifier implements port.VisionClassifier using Google's Gemini API.
type Classifier struct {
	client *genai.Client
	model  string
}

// NewClassifier creates a Gemini-based vision classifier.
func NewClassifier(cfg *config.VisionProviderConfig) (*Classifier, error) {
	return newClassifier(cfg, "")
}

// NewClassifierWithEndpoint creates a classifier pointing at a custom API base URL (for testing).
func NewClassifierWithEndpoint(cfg *config.VisionProviderConfig, endpoint string) (*Classifier, error) {
	return newClassifier(cfg, endpoint)
}

func newClassifier(cfg *config.VisionProviderConfig, endpoint string) (*Classifier, error) {
	model := cfg.DefaultModel
	if model == "" {
		model = "gemini-2.0-flash"
	}
	timeout := time.Duration(cfg.TimeoutSecs) * time.Second
	if timeout == 0 {
		timeout = 60 * time.Second
	}

	cc := &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: &http.Client{Timeout: timeout},
	}
	if endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: endpoint}
	}

	client, err := genai.NewClient(context.Background(), cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &Classifier{client: client, model: model}, nil
}

func (c *Classifier) Classify(ctx context.Context, input port.ClassifyInput) (*port.ClassifyOutput, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(input.ImageBytes, input.ContentType),
		genai.NewPartFromText(vision.Prompt),
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		Temperature:      genai.Ptr[float32](0),
	})
	if err != nil {
		return nil, mapError(ctx, err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return nil, fmt.Errorf("empty response from API: no candidates")
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
		return nil, fmt.Errorf("output truncated (finishReason: MAX_TOKENS)")
	}

	text := resp.Text()
	if text == "" {
		return nil, fmt.Errorf("empty response from API")
	}

	return &port.ClassifyOutput{
		Text:      text,
		ModelUsed: c.model,
		Provider:  provider,
	}, nil
}

func mapError(ctx context.Context, err error) error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		baseErr := fmt.Errorf("gemini API error (status %d): %w", apiErr.Code, err)
		switch {
		case apiErr.Code == http.StatusTooManyRequests:
			return vision.NewRateLimitError(provider, baseErr, 0)
		case apiErr.Code >= http.StatusInternalServerError:
			return &vision.TransientError{Err: baseErr, Provider: provider}
		}
		return baseErr
	}
	return vision.RequestError(ctx, provider, err)
}

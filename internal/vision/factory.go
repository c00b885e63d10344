package vision

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"go.uber.org/zap"

	"trashit/internal/config"
	"trashit/internal/port"
)

// ProviderFactory is a function that creates a VisionClassifier from a provider config.
type ProviderFactory func(cfg *config.VisionProviderConfig) (port.VisionClassifier, error)

const fingerprintLen = 12

// registry of vision provider factories, populated explicitly via RegisterProvider.
var providers = map[string]ProviderFactory{}

// RegisterProvider registers a vision provider factory by name.
func RegisterProvider(name string, factory ProviderFactory) {
	providers[name] = factory
}

// NewClassifier creates a VisionClassifier from a provider config using the registered factory.
func NewClassifier(cfg *config.VisionProviderConfig) (port.VisionClassifier, error) {
	factory, ok := providers[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unknown vision provider: %s", cfg.Provider)
	}
	return factory(cfg)
}

// NewFromConfig builds the classifier chain: every configured provider is
// instrumented and retried, and more than one provider is wrapped in a FallbackClassifier.
func NewFromConfig(cfg *config.VisionConfig, logger *zap.Logger) (port.VisionClassifier, error) {
	provCfgs := cfg.Providers()
	classifiers := make([]port.VisionClassifier, 0, len(provCfgs))
	names := make([]string, 0, len(provCfgs))

	for _, pc := range provCfgs {
		c, err := NewClassifier(pc)
		if err != nil {
			return nil, fmt.Errorf("creating %s classifier: %w", pc.Provider, err)
		}
		c = &instrumented{inner: c, provider: pc.Provider}
		c = NewRetryClassifier(c, pc.Provider, pc.MaxRetries, cfg.RetryBackoff, logger)
		classifiers = append(classifiers, c)
		names = append(names, pc.Provider)
		logger.Info("vision provider configured",
			zap.String("provider", pc.Provider),
			zap.String("model", pc.DefaultModel),
			zap.Int("max_retries", pc.MaxRetries),
		)
	}

	if len(classifiers) == 1 {
		return classifiers[0], nil
	}
	return NewFallbackClassifier(classifiers, names, logger), nil
}

// Fingerprint identifies the prompt and the provider/model chain behind a
// classification. It changes whenever any of them changes.
func Fingerprint(cfg *config.VisionConfig) string {
	h := sha256.New()
	h.Write([]byte(Prompt))
	for _, pc := range cfg.Providers() {
		fmt.Fprintf(h, "\x00%s/%s", pc.Provider, pc.DefaultModel)
	}
	return hex.EncodeToString(h.Sum(nil))[:fingerprintLen]
}

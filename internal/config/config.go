package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Log     LogConfig
	CORS    CORSConfig
	Upload  UploadConfig
	Vision  VisionConfig
	Grading GradingConfig
	Cache   CacheConfig
	Archive ArchiveConfig
	Metrics MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Environment     string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig limits what POST /analyze-waste accepts.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// VisionProviderConfig holds settings for a single vision model provider.
type VisionProviderConfig struct {
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`
}

// VisionConfig holds vision classifier settings with multi-provider support.
type VisionConfig struct {
	// Legacy flat fields, used when no primary provider is configured.
	Provider     string `mapstructure:"provider"`
	APIKey       string `mapstructure:"api_key"`
	DefaultModel string `mapstructure:"default_model"`
	MaxRetries   int    `mapstructure:"max_retries"`
	TimeoutSecs  int    `mapstructure:"timeout_secs"`

	Primary   VisionProviderConfig `mapstructure:"primary"`
	Secondary VisionProviderConfig `mapstructure:"secondary"`
	Tertiary  VisionProviderConfig `mapstructure:"tertiary"`

	// RequestTimeout bounds the whole classification, including retries and fallback.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	RetryBackoff   time.Duration `mapstructure:"retry_backoff"`
}

// PrimaryConfig returns the primary provider config, falling back to legacy flat fields.
func (v *VisionConfig) PrimaryConfig() *VisionProviderConfig {
	if v.Primary.Provider != "" {
		return &v.Primary
	}
	return &VisionProviderConfig{
		Provider:     v.Provider,
		APIKey:       v.APIKey,
		DefaultModel: v.DefaultModel,
		MaxRetries:   v.MaxRetries,
		TimeoutSecs:  v.TimeoutSecs,
	}
}

// SecondaryConfig returns the secondary provider config, or nil if not configured.
func (v *VisionConfig) SecondaryConfig() *VisionProviderConfig {
	if v.Secondary.Provider != "" {
		return &v.Secondary
	}
	return nil
}

// TertiaryConfig returns the tertiary provider config, or nil if not configured.
func (v *VisionConfig) TertiaryConfig() *VisionProviderConfig {
	if v.Tertiary.Provider != "" {
		return &v.Tertiary
	}
	return nil
}

// Providers returns the configured providers in fallback order.
func (v *VisionConfig) Providers() []*VisionProviderConfig {
	out := []*VisionProviderConfig{v.PrimaryConfig()}
	if s := v.SecondaryConfig(); s != nil {
		out = append(out, s)
	}
	if t := v.TertiaryConfig(); t != nil {
		out = append(out, t)
	}
	return out
}

// GradeBandConfig holds the minimum usability score for grades A and B.
type GradeBandConfig struct {
	AMin float64 `mapstructure:"a_min"`
	BMin float64 `mapstructure:"b_min"`
}

// GradingConfig holds the grade bands per condition.
type GradingConfig struct {
	Clean   GradeBandConfig `mapstructure:"clean"`
	Mixed   GradeBandConfig `mapstructure:"mixed"`
	Damaged GradeBandConfig `mapstructure:"damaged"`
}

// CacheConfig holds the Redis classification cache settings.
type CacheConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Address   string        `mapstructure:"address"`
	Password  string        `mapstructure:"password"`
	DB        int           `mapstructure:"db"`
	TTL       time.Duration `mapstructure:"ttl"`
	KeyPrefix string        `mapstructure:"key_prefix"`
}

// ArchiveConfig holds settings for archiving analyzed images.
type ArchiveConfig struct {
	Provider  string `mapstructure:"provider"`
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds Prometheus exposition settings.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from environment variables with the TRASHIT_ prefix.
// A .env file in the working directory is loaded first when present.
func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetEnvPrefix("TRASHIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8000")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "90s")
	v.SetDefault("server.shutdown_timeout", "15s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 10)

	// Vision defaults (legacy flat)
	v.SetDefault("vision.provider", "gemini")
	v.SetDefault("vision.api_key", "")
	v.SetDefault("vision.default_model", "")
	v.SetDefault("vision.max_retries", 2)
	v.SetDefault("vision.timeout_secs", 60)
	v.SetDefault("vision.request_timeout", "75s")
	v.SetDefault("vision.retry_backoff", "500ms")

	// Vision primary/secondary/tertiary defaults
	for _, slot := range []string{"primary", "secondary", "tertiary"} {
		v.SetDefault("vision."+slot+".provider", "")
		v.SetDefault("vision."+slot+".api_key", "")
		v.SetDefault("vision."+slot+".default_model", "")
		v.SetDefault("vision."+slot+".max_retries", 2)
		v.SetDefault("vision."+slot+".timeout_secs", 60)
	}

	// Grading defaults
	v.SetDefault("grading.clean.a_min", 0.75)
	v.SetDefault("grading.clean.b_min", 0.50)
	v.SetDefault("grading.mixed.a_min", 0.85)
	v.SetDefault("grading.mixed.b_min", 0.60)
	v.SetDefault("grading.damaged.a_min", 0.95)
	v.SetDefault("grading.damaged.b_min", 0.70)

	// Cache defaults
	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.address", "localhost:6379")
	v.SetDefault("cache.password", "")
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl", "24h")
	v.SetDefault("cache.key_prefix", "trashit:vision:")

	// Archive defaults
	v.SetDefault("archive.provider", "noop")
	v.SetDefault("archive.region", "ap-south-1")
	v.SetDefault("archive.bucket", "trashit-uploads")
	v.SetDefault("archive.endpoint", "")
	v.SetDefault("archive.prefix", "uploads")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "TRASHIT_SERVER_PORT",
		"server.read_timeout":     "TRASHIT_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "TRASHIT_SERVER_WRITE_TIMEOUT",
		"server.shutdown_timeout": "TRASHIT_SERVER_SHUTDOWN_TIMEOUT",
		"server.environment":      "TRASHIT_SERVER_ENVIRONMENT",
		"log.level":               "TRASHIT_LOG_LEVEL",
		"log.format":              "TRASHIT_LOG_FORMAT",
		"cors.allowed_origins":    "TRASHIT_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb": "TRASHIT_UPLOAD_MAX_FILE_SIZE_MB",
		"vision.provider":         "TRASHIT_VISION_PROVIDER",
		"vision.api_key":          "TRASHIT_VISION_API_KEY",
		"vision.default_model":    "TRASHIT_VISION_DEFAULT_MODEL",
		"vision.max_retries":      "TRASHIT_VISION_MAX_RETRIES",
		"vision.timeout_secs":     "TRASHIT_VISION_TIMEOUT_SECS",
		"vision.request_timeout":  "TRASHIT_VISION_REQUEST_TIMEOUT",
		"vision.retry_backoff":    "TRASHIT_VISION_RETRY_BACKOFF",
		"grading.clean.a_min":     "TRASHIT_GRADING_CLEAN_A_MIN",
		"grading.clean.b_min":     "TRASHIT_GRADING_CLEAN_B_MIN",
		"grading.mixed.a_min":     "TRASHIT_GRADING_MIXED_A_MIN",
		"grading.mixed.b_min":     "TRASHIT_GRADING_MIXED_B_MIN",
		"grading.damaged.a_min":   "TRASHIT_GRADING_DAMAGED_A_MIN",
		"grading.damaged.b_min":   "TRASHIT_GRADING_DAMAGED_B_MIN",
		"cache.enabled":           "TRASHIT_CACHE_ENABLED",
		"cache.address":           "TRASHIT_CACHE_ADDRESS",
		"cache.password":          "TRASHIT_CACHE_PASSWORD",
		"cache.db":                "TRASHIT_CACHE_DB",
		"cache.ttl":               "TRASHIT_CACHE_TTL",
		"cache.key_prefix":        "TRASHIT_CACHE_KEY_PREFIX",
		"archive.provider":        "TRASHIT_ARCHIVE_PROVIDER",
		"archive.region":          "TRASHIT_ARCHIVE_REGION",
		"archive.bucket":          "TRASHIT_ARCHIVE_BUCKET",
		"archive.endpoint":        "TRASHIT_ARCHIVE_ENDPOINT",
		"archive.access_key":      "TRASHIT_ARCHIVE_ACCESS_KEY",
		"archive.secret_key":      "TRASHIT_ARCHIVE_SECRET_KEY",
		"archive.prefix":          "TRASHIT_ARCHIVE_PREFIX",
		"metrics.enabled":         "TRASHIT_METRICS_ENABLED",
		"metrics.path":            "TRASHIT_METRICS_PATH",
	}
	for _, slot := range []string{"primary", "secondary", "tertiary"} {
		for _, field := range []string{"provider", "api_key", "default_model", "max_retries", "timeout_secs"} {
			key := "vision." + slot + "." + field
			envBindings[key] = "TRASHIT_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		}
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if TRASHIT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("TRASHIT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:            serverPort,
		ReadTimeout:     v.GetDuration("server.read_timeout"),
		WriteTimeout:    v.GetDuration("server.write_timeout"),
		ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		Environment:     v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	// Parse CORS allowed origins from comma-separated string
	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	cfg.Upload = UploadConfig{MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb")}

	cfg.Vision = VisionConfig{
		Provider:       v.GetString("vision.provider"),
		APIKey:         v.GetString("vision.api_key"),
		DefaultModel:   v.GetString("vision.default_model"),
		MaxRetries:     v.GetInt("vision.max_retries"),
		TimeoutSecs:    v.GetInt("vision.timeout_secs"),
		Primary:        providerConfig(v, "primary"),
		Secondary:      providerConfig(v, "secondary"),
		Tertiary:       providerConfig(v, "tertiary"),
		RequestTimeout: v.GetDuration("vision.request_timeout"),
		RetryBackoff:   v.GetDuration("vision.retry_backoff"),
	}
	// GEMINI_API_KEY is honored for the default gemini provider so existing deployments keep working.
	if cfg.Vision.APIKey == "" && cfg.Vision.Provider == "gemini" {
		cfg.Vision.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	cfg.Grading = GradingConfig{
		Clean:   GradeBandConfig{AMin: v.GetFloat64("grading.clean.a_min"), BMin: v.GetFloat64("grading.clean.b_min")},
		Mixed:   GradeBandConfig{AMin: v.GetFloat64("grading.mixed.a_min"), BMin: v.GetFloat64("grading.mixed.b_min")},
		Damaged: GradeBandConfig{AMin: v.GetFloat64("grading.damaged.a_min"), BMin: v.GetFloat64("grading.damaged.b_min")},
	}

	cfg.Cache = CacheConfig{
		Enabled:   v.GetBool("cache.enabled"),
		Address:   v.GetString("cache.address"),
		Password:  v.GetString("cache.password"),
		DB:        v.GetInt("cache.db"),
		TTL:       v.GetDuration("cache.ttl"),
		KeyPrefix: v.GetString("cache.key_prefix"),
	}

	cfg.Archive = ArchiveConfig{
		Provider:  v.GetString("archive.provider"),
		Region:    v.GetString("archive.region"),
		Bucket:    v.GetString("archive.bucket"),
		Endpoint:  v.GetString("archive.endpoint"),
		AccessKey: v.GetString("archive.access_key"),
		SecretKey: v.GetString("archive.secret_key"),
		Prefix:    v.GetString("archive.prefix"),
	}

	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
		Path:    v.GetString("metrics.path"),
	}

	return cfg, nil
}

func providerConfig(v *viper.Viper, slot string) VisionProviderConfig {
	prefix := "vision." + slot + "."
	return VisionProviderConfig{
		Provider:     v.GetString(prefix + "provider"),
		APIKey:       v.GetString(prefix + "api_key"),
		DefaultModel: v.GetString(prefix + "default_model"),
		MaxRetries:   v.GetInt(prefix + "max_retries"),
		TimeoutSecs:  v.GetInt(prefix + "timeout_secs"),
	}
}

// loadEnvFile loads .env from the working directory or its parent, if present.
// Variables already set in the environment are not overridden.
func loadEnvFile() {
	for _, path := range []string{".env", "../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config contains all runtime settings for the call orchestrator service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	// ProviderMode selects the speech stack: auto | sarvam | mock.
	ProviderMode string
	// BrainMode selects the reasoning backend: auto | openai | mock.
	BrainMode string

	SarvamAPIKey  string
	SarvamBaseURL string

	OpenAIAPIKey  string
	ReasonerModel string

	GNewsAPIKey     string
	GNewsBaseURL    string
	GeocodeBaseURL  string
	ForecastBaseURL string

	// FulfillmentBaseURL is where the booking/ordering mock endpoints live.
	// Empty means the service's own bind address.
	FulfillmentBaseURL string

	TTSSpeaker string
	TTSModel   string
	TTSPitch   float64
	TTSSpeed   float64

	StageTimeout        time.Duration
	ToolDispatchTimeout time.Duration
	MaxAudioBytes       int64

	PersonaPromptPath string

	DatabaseURL string
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:            envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:    envOrDefault("APP_METRICS_NAMESPACE", "shakti"),
		ProviderMode:        envOrDefault("PROVIDER_MODE", "auto"),
		BrainMode:           envOrDefault("BRAIN_MODE", "auto"),
		SarvamAPIKey:        envTrimmed("SARVAM_API_KEY"),
		SarvamBaseURL:       envOrDefault("SARVAM_BASE_URL", "https://api.sarvam.ai"),
		OpenAIAPIKey:        envTrimmed("OPENAI_API_KEY"),
		ReasonerModel:       envOrDefault("REASONER_MODEL", "gpt-4.1"),
		GNewsAPIKey:         envTrimmed("GNEWS_API_KEY"),
		GNewsBaseURL:        envOrDefault("GNEWS_BASE_URL", "https://gnews.io/api/v4"),
		GeocodeBaseURL:      envOrDefault("GEOCODE_BASE_URL", "https://geocoding-api.open-meteo.com"),
		ForecastBaseURL:     envOrDefault("FORECAST_BASE_URL", "https://api.open-meteo.com"),
		FulfillmentBaseURL:  envTrimmed("FULFILLMENT_BASE_URL"),
		TTSSpeaker:          envOrDefault("TTS_SPEAKER", "anushka"),
		TTSModel:            envOrDefault("TTS_MODEL", "bulbul:v2"),
		TTSPitch:            0.0,
		TTSSpeed:            1.0,
		StageTimeout:        30 * time.Second,
		ToolDispatchTimeout: 15 * time.Second,
		MaxAudioBytes:       10 << 20,
		PersonaPromptPath:   envTrimmed("PERSONA_PROMPT_PATH"),
		DatabaseURL:         envTrimmed("DATABASE_URL"),
		ShutdownTimeout:     15 * time.Second,
	}

	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.StageTimeout, err = durationFromEnv("APP_STAGE_TIMEOUT", cfg.StageTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ToolDispatchTimeout, err = durationFromEnv("APP_TOOL_DISPATCH_TIMEOUT", cfg.ToolDispatchTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.MaxAudioBytes, err = int64FromEnv("APP_MAX_AUDIO_BYTES", cfg.MaxAudioBytes)
	if err != nil {
		return Config{}, err
	}
	cfg.TTSPitch, err = floatFromEnv("TTS_PITCH", cfg.TTSPitch)
	if err != nil {
		return Config{}, err
	}
	cfg.TTSSpeed, err = floatFromEnv("TTS_SPEED", cfg.TTSSpeed)
	if err != nil {
		return Config{}, err
	}

	if cfg.StageTimeout < time.Second {
		return Config{}, fmt.Errorf("APP_STAGE_TIMEOUT must be at least 1s")
	}
	if cfg.ToolDispatchTimeout < time.Second {
		return Config{}, fmt.Errorf("APP_TOOL_DISPATCH_TIMEOUT must be at least 1s")
	}
	if cfg.MaxAudioBytes <= 0 {
		return Config{}, fmt.Errorf("APP_MAX_AUDIO_BYTES must be positive")
	}
	if cfg.TTSPitch < -1 || cfg.TTSPitch > 1 {
		return Config{}, fmt.Errorf("TTS_PITCH must be within [-1, 1]")
	}
	if cfg.TTSSpeed <= 0 || cfg.TTSSpeed > 2 {
		return Config{}, fmt.Errorf("TTS_SPEED must be within (0, 2]")
	}

	return cfg, nil
}

// FulfillmentURL resolves the base URL the booking connectors call.
func (c Config) FulfillmentURL() string {
	if c.FulfillmentBaseURL != "" {
		return strings.TrimRight(c.FulfillmentBaseURL, "/")
	}
	addr := c.BindAddr
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr
}

func envOrDefault(key, fallback string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}

func int64FromEnv(key string, fallback int64) (int64, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return n, nil
}

func floatFromEnv(key string, fallback float64) (float64, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return f, nil
}

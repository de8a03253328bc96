package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/nfrund/emitter/internal/pubsub"
)

// Config holds all configuration for the application.
type Config struct {
	LogFormat     string   `validate:"oneof=text json"`
	LogLevel      string   `validate:"oneof=debug info warn error"`
	ErrorPolicy   string   `validate:"oneof=failfast continue"`
	ForwardTopics []string `validate:"dive,required"`
	GPUBackend    string   `validate:"oneof=software none"`
	CatalogPath   string
	Tracing       pubsub.TracingConfig
}

// New loads a .env file when present, then reads configuration from
// environment variables and validates it.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}
	return FromEnv()
}

// FromEnv reads configuration from environment variables only.
func FromEnv() (*Config, error) {
	tracing := pubsub.DefaultTracingConfig()
	if v := getEnv("EMITTER_TRACING_ENABLED", ""); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid EMITTER_TRACING_ENABLED %q: %w", v, err)
		}
		tracing.Enabled = enabled
	}
	tracing.ServiceName = getEnv("EMITTER_TRACING_SERVICE_NAME", tracing.ServiceName)
	tracing.ZipkinURL = getEnv("EMITTER_TRACING_ZIPKIN_URL", tracing.ZipkinURL)

	cfg := &Config{
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
		LogLevel:      strings.ToLower(getEnv("LOG_LEVEL", "info")),
		ErrorPolicy:   strings.ToLower(getEnv("EMITTER_ERROR_POLICY", "failfast")),
		ForwardTopics: splitList(os.Getenv("EMITTER_FORWARD_TOPICS")),
		GPUBackend:    strings.ToLower(getEnv("EMITTER_GPU_BACKEND", "software")),
		CatalogPath:   os.Getenv("EMITTER_CATALOG"),
		Tracing:       tracing,
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

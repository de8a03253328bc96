package config

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{
		"LOG_FORMAT", "LOG_LEVEL", "EMITTER_ERROR_POLICY", "EMITTER_FORWARD_TOPICS",
		"EMITTER_GPU_BACKEND", "EMITTER_CATALOG", "EMITTER_TRACING_ENABLED",
		"EMITTER_TRACING_SERVICE_NAME", "EMITTER_TRACING_ZIPKIN_URL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "failfast", cfg.ErrorPolicy)
	assert.Empty(t, cfg.ForwardTopics)
	assert.Equal(t, "software", cfg.GPUBackend)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "emitter", cfg.Tracing.ServiceName)
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("LOG_FORMAT", "JSON")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("EMITTER_ERROR_POLICY", "continue")
	t.Setenv("EMITTER_FORWARD_TOPICS", " render.frame.done, ,gpu.uniform.written ")
	t.Setenv("EMITTER_GPU_BACKEND", "none")
	t.Setenv("EMITTER_CATALOG", "topics.json")
	t.Setenv("EMITTER_TRACING_ENABLED", "true")
	t.Setenv("EMITTER_TRACING_ZIPKIN_URL", "http://zipkin:9411/api/v2/spans")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "continue", cfg.ErrorPolicy)
	assert.Equal(t, []string{"render.frame.done", "gpu.uniform.written"}, cfg.ForwardTopics)
	assert.Equal(t, "none", cfg.GPUBackend)
	assert.Equal(t, "topics.json", cfg.CatalogPath)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "http://zipkin:9411/api/v2/spans", cfg.Tracing.ZipkinURL)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
		field string
	}{
		{"log format", "LOG_FORMAT", "xml", "LogFormat"},
		{"log level", "LOG_LEVEL", "trace", "LogLevel"},
		{"error policy", "EMITTER_ERROR_POLICY", "retry", "ErrorPolicy"},
		{"gpu backend", "EMITTER_GPU_BACKEND", "vulkan", "GPUBackend"},
		{"zipkin url", "EMITTER_TRACING_ZIPKIN_URL", "not a url", "ZipkinURL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)

			_, err := FromEnv()
			require.Error(t, err)

			var verrs validator.ValidationErrors
			require.ErrorAs(t, err, &verrs)
			assert.Equal(t, tt.field, verrs[0].Field())
		})
	}
}

func TestFromEnv_BadTracingFlag(t *testing.T) {
	t.Setenv("EMITTER_TRACING_ENABLED", "maybe")

	_, err := FromEnv()
	assert.ErrorContains(t, err, "EMITTER_TRACING_ENABLED")
}

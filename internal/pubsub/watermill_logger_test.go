package pubsub

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
)

func TestSlogAdapter_Levels(t *testing.T) {
	tests := []struct {
		name    string
		level   slog.Level
		log     func(watermill.LoggerAdapter)
		visible bool
	}{
		{"info hidden at info", slog.LevelInfo, func(l watermill.LoggerAdapter) { l.Info("Pub/Sub closed", nil) }, false},
		{"info shown at debug", slog.LevelDebug, func(l watermill.LoggerAdapter) { l.Info("Pub/Sub closed", nil) }, true},
		{"trace hidden at debug", slog.LevelDebug, func(l watermill.LoggerAdapter) { l.Trace("Sending msg", nil) }, false},
		{"error shown at info", slog.LevelInfo, func(l watermill.LoggerAdapter) { l.Error("Pub/Sub closed", errors.New("boom"), nil) }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: tt.level}))

			tt.log(NewSlogAdapter(logger))

			if tt.visible {
				assert.Contains(t, buf.String(), "Pub/Sub closed")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestSlogAdapter_Fields(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	adapter := NewSlogAdapter(logger).With(watermill.LogFields{"topic": "gpu.uniform.written"})
	adapter.Error("Failed to publish", errors.New("closed"), watermill.LogFields{"uuid": "abc"})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "topic=gpu.uniform.written")
	assert.Contains(t, out, "uuid=abc")
	assert.Contains(t, out, "error=closed")
}

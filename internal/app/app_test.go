package app

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/nfrund/emitter/internal/config"
	"github.com/nfrund/emitter/internal/events"
	"github.com/nfrund/emitter/internal/pubsub"
	"github.com/nfrund/emitter/internal/topicmgr"
)

func testConfig() *config.Config {
	return &config.Config{
		LogFormat:   "text",
		LogLevel:    "error",
		ErrorPolicy: "failfast",
		GPUBackend:  "software",
		Tracing:     pubsub.DefaultTracingConfig(),
	}
}

func newTestApp(t *testing.T, cfg *config.Config, fs afero.Fs) *App {
	t.Helper()

	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	if fs == nil {
		fs = afero.NewMemMapFs()
	}
	a, err := New(cfg, fs)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })
	return a
}

func TestNew_RegistersBuiltinTopics(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	for _, name := range []string{"gpu.device.status", "gpu.uniform.written", "demo.value"} {
		_, ok := a.Topics.Get(name)
		assert.True(t, ok, "expected %s in catalog", name)
	}
	assert.Len(t, a.Topics.ListByScope(topicmgr.ScopeCore), 2)
}

func TestNew_LoadsCatalog(t *testing.T) {
	fs := afero.NewMemMapFs()
	catalog := `{"topics":[{"name":"render.frame.done","owner":"render","scope":"app","description":"frame submitted"}]}`
	require.NoError(t, afero.WriteFile(fs, "topics.json", []byte(catalog), 0o644))

	cfg := testConfig()
	cfg.CatalogPath = "topics.json"
	a := newTestApp(t, cfg, fs)

	_, ok := a.Topics.Get("render.frame.done")
	assert.True(t, ok)
}

func TestNew_Errors(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	t.Run("missing catalog", func(t *testing.T) {
		cfg := testConfig()
		cfg.CatalogPath = "missing.json"
		_, err := New(cfg, afero.NewMemMapFs())
		assert.Error(t, err)
	})

	t.Run("unknown policy", func(t *testing.T) {
		cfg := testConfig()
		cfg.ErrorPolicy = "retry"
		_, err := New(cfg, afero.NewMemMapFs())
		assert.ErrorContains(t, err, events.ErrUnknownPolicy.Error())
	})

	t.Run("releases services built before the failure", func(t *testing.T) {
		previousProvider := otel.GetTracerProvider()
		t.Cleanup(func() { otel.SetTracerProvider(previousProvider) })

		cfg := testConfig()
		cfg.Tracing = pubsub.TracingConfig{
			Enabled:     true,
			ServiceName: "emitter-test",
			ZipkinURL:   "http://localhost:9411/api/v2/spans",
		}
		cfg.GPUBackend = "vulkan"

		_, err := New(cfg, afero.NewMemMapFs())
		require.Error(t, err)

		// The tracer provider installed during construction has been shut down.
		_, span := otel.Tracer("after-failure").Start(context.Background(), "check")
		defer span.End()
		assert.False(t, span.IsRecording())
	})

	t.Run("unknown gpu backend", func(t *testing.T) {
		cfg := testConfig()
		cfg.GPUBackend = "vulkan"
		_, err := New(cfg, afero.NewMemMapFs())
		assert.ErrorContains(t, err, "unknown gpu backend")
	})
}

func TestRunDemo(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	var out bytes.Buffer
	require.NoError(t, a.RunDemo(context.Background(), &out))

	assert.Equal(t,
		"publish demo.value 1\nA(1)\nB(1)\nunsubscribe A\npublish demo.value 2\nB(2)\n",
		out.String())
	assert.Equal(t, 0, a.Dispatcher.ListenerCount(DemoPublished.Name()), "demo cleans up its listeners")
}

type failingWriter struct{}

func (failingWriter) Write(p []byte) (int, error) {
	return 0, errors.New("closed pipe")
}

func TestRunDemo_WriterFailureCleansUp(t *testing.T) {
	a := newTestApp(t, testConfig(), nil)

	err := a.RunDemo(context.Background(), failingWriter{})
	require.Error(t, err)

	var lerr *events.ListenerError
	require.ErrorAs(t, err, &lerr)
	assert.Equal(t, 0, lerr.Index)
	assert.Equal(t, 0, a.Dispatcher.ListenerCount(DemoPublished.Name()))
}

func TestTeardown(t *testing.T) {
	var order []string
	td := &teardown{}
	td.add(func() error { order = append(order, "tracing"); return nil })
	td.add(func() error { order = append(order, "bus"); return errors.New("bus stuck") })
	td.add(func() error { order = append(order, "forwarder"); return nil })

	err := td.run()
	assert.EqualError(t, err, "bus stuck")
	assert.Equal(t, []string{"forwarder", "bus", "tracing"}, order)

	assert.NoError(t, td.run(), "hooks run once")
	assert.Len(t, order, 3)
}

func TestClose_Twice(t *testing.T) {
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	a, err := New(testConfig(), afero.NewMemMapFs())
	require.NoError(t, err)

	require.NoError(t, a.Close())
	assert.NoError(t, a.Close())
}

func TestProbeGPU(t *testing.T) {
	ctx := context.Background()

	t.Run("software backend", func(t *testing.T) {
		a := newTestApp(t, testConfig(), nil)

		var statuses []DeviceStatus
		var writes []UniformWrite
		events.Listen(a.Dispatcher, DeviceStatusChanged, func(ctx context.Context, s DeviceStatus) error {
			statuses = append(statuses, s)
			return nil
		})
		events.Listen(a.Dispatcher, UniformWritten, func(ctx context.Context, w UniformWrite) error {
			writes = append(writes, w)
			return nil
		})

		result, err := a.ProbeGPU(ctx, []byte{1, 2, 3, 4, 5})
		require.NoError(t, err)

		assert.True(t, result.Status.Available)
		assert.Len(t, result.Buffer, 16)
		assert.Equal(t, []byte{1, 2, 3, 4, 5}, result.Buffer[:5])
		assert.Equal(t, []DeviceStatus{{Backend: "software", Available: true}}, statuses)
		assert.Equal(t, []UniformWrite{{Bytes: 5, BufferSize: 16}}, writes)
	})

	t.Run("no graphics", func(t *testing.T) {
		cfg := testConfig()
		cfg.GPUBackend = "none"
		a := newTestApp(t, cfg, nil)

		result, err := a.ProbeGPU(ctx, []byte{1})
		require.NoError(t, err)
		assert.False(t, result.Status.Available)
		assert.Nil(t, result.Buffer)
	})
}

func TestForwardedTopicsReachBus(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg := testConfig()
	cfg.ForwardTopics = []string{UniformWritten.Name()}
	a := newTestApp(t, cfg, nil)

	received := make(chan pubsub.Message, 1)
	require.NoError(t, a.Bus.Subscribe(ctx, UniformWritten.Name(), func(ctx context.Context, msg pubsub.Message) error {
		received <- msg
		return nil
	}))

	_, err := a.ProbeGPU(ctx, make([]byte, 32))
	require.NoError(t, err)

	select {
	case msg := <-received:
		assert.JSONEq(t, `[{"bytes":32,"buffer_size":32}]`, string(msg.Payload))
	case <-time.After(2 * time.Second):
		t.Fatal("forwarded message not received")
	}
}

func TestAlignUp(t *testing.T) {
	assert.Equal(t, uint64(16), alignUp(0, 16))
	assert.Equal(t, uint64(16), alignUp(1, 16))
	assert.Equal(t, uint64(16), alignUp(16, 16))
	assert.Equal(t, uint64(32), alignUp(17, 16))
}

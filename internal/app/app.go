// Package app wires the dispatcher, topic catalog, asynchronous bus and
// graphics host together for the command-line entrypoint.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/samber/do/v2"
	"github.com/spf13/afero"
	"go.opentelemetry.io/otel/trace"

	"github.com/nfrund/emitter/internal/config"
	"github.com/nfrund/emitter/internal/events"
	"github.com/nfrund/emitter/internal/gpu"
	"github.com/nfrund/emitter/internal/logging"
	"github.com/nfrund/emitter/internal/pubsub"
	"github.com/nfrund/emitter/internal/topicmgr"
)

// App holds the process-wide services. Build it once at startup with New
// and release it with Close.
type App struct {
	Config     *config.Config
	Logger     *slog.Logger
	Dispatcher *events.Dispatcher
	Topics     *topicmgr.Manager
	Bus        *pubsub.WatermillBridge
	Forwarder  *pubsub.Forwarder
	GPU        *GPU

	teardown *teardown
}

// Tracing pairs the tracer with its shutdown hook.
type Tracing struct {
	Tracer   trace.Tracer
	Shutdown func()
}

// GPU is the configured graphics host. Host is nil for the "none" backend.
type GPU struct {
	Backend string
	Host    gpu.Host
}

// New builds the application from cfg. fs is used to read the optional
// topic catalog.
func New(cfg *config.Config, fs afero.Fs) (*App, error) {
	injector := do.New()
	release := &teardown{}

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, release)
	do.ProvideValue[afero.Fs](injector, fs)
	do.Provide(injector, provideLogger)
	do.Provide(injector, provideTracing)
	do.Provide(injector, provideTopics)
	do.Provide(injector, provideDispatcher)
	do.Provide(injector, provideBus)
	do.Provide(injector, provideForwarder)
	do.Provide(injector, provideGPU)
	do.Provide(injector, provideApp)

	a, err := do.Invoke[*App](injector)
	if err != nil {
		// Release whatever was built before the failing provider.
		return nil, errors.Join(err, release.run())
	}
	return a, nil
}

// Close stops forwarding and releases the bus and tracer.
func (a *App) Close() error {
	return a.teardown.run()
}

// teardown collects release hooks as services are built and runs them in
// reverse order.
type teardown struct {
	mu    sync.Mutex
	hooks []func() error
}

func (t *teardown) add(hook func() error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hooks = append(t.hooks, hook)
}

// run calls every hook once, newest first, and joins their errors.
func (t *teardown) run() error {
	t.mu.Lock()
	hooks := t.hooks
	t.hooks = nil
	t.mu.Unlock()

	var errs []error
	for i := len(hooks) - 1; i >= 0; i-- {
		if err := hooks[i](); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func provideLogger(i do.Injector) (*slog.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return logging.New(cfg.LogFormat, cfg.LogLevel), nil
}

func provideTracing(i do.Injector) (*Tracing, error) {
	cfg := do.MustInvoke[*config.Config](i)
	tracer, shutdown, err := pubsub.SetupOTel(context.Background(), cfg.Tracing)
	if err != nil {
		return nil, fmt.Errorf("failed to set up tracing: %w", err)
	}
	do.MustInvoke[*teardown](i).add(func() error {
		shutdown()
		return nil
	})
	return &Tracing{Tracer: tracer, Shutdown: shutdown}, nil
}

func provideTopics(i do.Injector) (*topicmgr.Manager, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)

	manager := topicmgr.NewManager()
	if err := RegisterTopics(manager); err != nil {
		return nil, fmt.Errorf("failed to register built-in topics: %w", err)
	}

	if cfg.CatalogPath != "" {
		n, err := manager.LoadCatalog(do.MustInvoke[afero.Fs](i), cfg.CatalogPath)
		if err != nil {
			return nil, err
		}
		logger.Info("Loaded topic catalog", "path", cfg.CatalogPath, "topics", n)
	}

	return manager, nil
}

func provideDispatcher(i do.Injector) (*events.Dispatcher, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)
	tracing, err := do.Invoke[*Tracing](i)
	if err != nil {
		return nil, err
	}

	policy, err := events.ParseErrorPolicy(cfg.ErrorPolicy)
	if err != nil {
		return nil, err
	}

	return events.NewDispatcher(
		events.WithErrorPolicy(policy),
		events.WithLogger(logger.With("component", "events")),
		events.WithTracer(tracing.Tracer),
	), nil
}

func provideBus(i do.Injector) (*pubsub.WatermillBridge, error) {
	cfg := do.MustInvoke[*config.Config](i)

	var bus *pubsub.WatermillBridge
	if cfg.Tracing.Enabled {
		tracing, err := do.Invoke[*Tracing](i)
		if err != nil {
			return nil, err
		}
		bus = pubsub.NewWatermillBridgeWithTracer(tracing.Tracer)
	} else {
		bus = pubsub.NewWatermillBridge()
	}

	do.MustInvoke[*teardown](i).add(func() error {
		if err := bus.Close(); err != nil {
			return fmt.Errorf("failed to close bus: %w", err)
		}
		return nil
	})
	return bus, nil
}

func provideForwarder(i do.Injector) (*pubsub.Forwarder, error) {
	cfg := do.MustInvoke[*config.Config](i)
	logger := do.MustInvoke[*slog.Logger](i)

	dispatcher, err := do.Invoke[*events.Dispatcher](i)
	if err != nil {
		return nil, err
	}
	bus, err := do.Invoke[*pubsub.WatermillBridge](i)
	if err != nil {
		return nil, err
	}
	topics, err := do.Invoke[*topicmgr.Manager](i)
	if err != nil {
		return nil, err
	}

	for _, name := range cfg.ForwardTopics {
		if _, ok := topics.Get(name); !ok {
			logger.Warn("Forwarding topic missing from catalog", "topic", name)
		}
	}

	forwarder := pubsub.NewForwarder(dispatcher, bus)
	forwarder.Forward(cfg.ForwardTopics...)
	do.MustInvoke[*teardown](i).add(func() error {
		forwarder.Stop()
		return nil
	})
	return forwarder, nil
}

func provideGPU(i do.Injector) (*GPU, error) {
	cfg := do.MustInvoke[*config.Config](i)
	host, err := gpu.HostFor(cfg.GPUBackend)
	if err != nil {
		return nil, err
	}
	return &GPU{Backend: cfg.GPUBackend, Host: host}, nil
}

func provideApp(i do.Injector) (*App, error) {
	a := &App{
		Config:   do.MustInvoke[*config.Config](i),
		Logger:   do.MustInvoke[*slog.Logger](i),
		teardown: do.MustInvoke[*teardown](i),
	}

	var err error
	if _, err = do.Invoke[*Tracing](i); err != nil {
		return nil, err
	}
	if a.Topics, err = do.Invoke[*topicmgr.Manager](i); err != nil {
		return nil, err
	}
	if a.Dispatcher, err = do.Invoke[*events.Dispatcher](i); err != nil {
		return nil, err
	}
	if a.Bus, err = do.Invoke[*pubsub.WatermillBridge](i); err != nil {
		return nil, err
	}
	if a.Forwarder, err = do.Invoke[*pubsub.Forwarder](i); err != nil {
		return nil, err
	}
	if a.GPU, err = do.Invoke[*GPU](i); err != nil {
		return nil, err
	}
	return a, nil
}

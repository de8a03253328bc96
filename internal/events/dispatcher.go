package events

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sort"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Dispatcher maps topic names to ordered listener sequences and invokes them
// synchronously on Publish. It is safe for concurrent use.
type Dispatcher struct {
	mu        sync.RWMutex
	listeners map[string][]*Listener

	policy ErrorPolicy
	logger *slog.Logger
	tracer trace.Tracer

	published atomic.Uint64
	delivered atomic.Uint64
	failed    atomic.Uint64
}

// Stats holds dispatcher counters.
type Stats struct {
	Published uint64 `json:"published"` // Publish calls
	Delivered uint64 `json:"delivered"` // listener invocations that returned nil
	Failed    uint64 `json:"failed"`    // listener invocations that returned an error
	Topics    int    `json:"topics"`
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		listeners: make(map[string][]*Listener),
		policy:    FailFast,
		logger:    slog.Default().With("component", "events"),
		tracer:    noop.NewTracerProvider().Tracer("emitter-events"),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Subscribe appends l to topic's listener sequence, creating the sequence on
// first use. Subscribing the same listener again registers it again.
func (d *Dispatcher) Subscribe(topic string, l *Listener) {
	if l == nil || l.fn == nil {
		d.logger.Warn("Ignoring nil listener", "topic", topic)
		return
	}

	d.mu.Lock()
	d.listeners[topic] = append(d.listeners[topic], l)
	count := len(d.listeners[topic])
	d.mu.Unlock()

	d.logger.Debug("Listener subscribed", "topic", topic, "listener_id", l.ID(), "listeners", count)
}

// On wraps fn in a new Listener, subscribes it to topic and returns it so it
// can be passed to Unsubscribe later.
func (d *Dispatcher) On(topic string, fn HandlerFunc) *Listener {
	l := NewListener(fn)
	d.Subscribe(topic, l)
	return l
}

// Unsubscribe removes every occurrence of l from topic. The order of the
// remaining listeners is kept. Unknown topics and listeners are ignored.
func (d *Dispatcher) Unsubscribe(topic string, l *Listener) {
	if l == nil {
		return
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	current, ok := d.listeners[topic]
	if !ok {
		return
	}

	// A fresh slice keeps snapshots held by in-flight publishes intact.
	remaining := make([]*Listener, 0, len(current))
	for _, existing := range current {
		if existing != l {
			remaining = append(remaining, existing)
		}
	}
	d.listeners[topic] = remaining

	if removed := len(current) - len(remaining); removed > 0 {
		d.logger.Debug("Listener unsubscribed", "topic", topic, "listener_id", l.ID(), "removed", removed)
	}
}

// UnsubscribeAll clears every listener on topic. The topic itself stays
// known to the dispatcher with an empty sequence.
func (d *Dispatcher) UnsubscribeAll(topic string) {
	d.mu.Lock()
	d.listeners[topic] = []*Listener{}
	d.mu.Unlock()

	d.logger.Debug("Cleared listeners", "topic", topic)
}

// Publish invokes every listener registered for topic, in registration order,
// passing args to each. A topic with no listeners is a no-op.
//
// The listener sequence is captured when Publish starts; subscriptions made
// by a listener during the call apply from the next Publish. Under the
// FailFast policy the first listener error stops the call and is returned as
// a *ListenerError. Listener panics are not recovered.
func (d *Dispatcher) Publish(ctx context.Context, topic string, args ...any) (err error) {
	d.published.Add(1)

	d.mu.RLock()
	snapshot := slices.Clone(d.listeners[topic])
	d.mu.RUnlock()

	ctx, span := d.tracer.Start(ctx, "events.publish."+topic,
		trace.WithAttributes(
			attribute.String("events.topic", topic),
			attribute.Int("events.listeners", len(snapshot)),
			attribute.Int("events.args", len(args)),
			attribute.String("events.error_policy", d.policy.String()),
		),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	if len(snapshot) == 0 {
		return nil
	}

	d.logger.Debug("Publishing event", "topic", topic, "listeners", len(snapshot))

	var errs []error
	for i, l := range snapshot {
		if ctxErr := ctx.Err(); ctxErr != nil {
			d.logger.Debug("Publish cancelled", "topic", topic, "remaining", len(snapshot)-i)
			return errors.Join(append(errs, ctxErr)...)
		}

		callErr := l.call(ctx, args)
		if callErr == nil {
			d.delivered.Add(1)
			continue
		}

		d.failed.Add(1)
		lerr := &ListenerError{Topic: topic, Index: i, ListenerID: l.ID(), Err: callErr}
		d.logger.Warn("Listener failed", "topic", topic, "index", i, "listener_id", l.ID(), "error", callErr)

		if d.policy == FailFast {
			return lerr
		}
		errs = append(errs, lerr)
	}

	return errors.Join(errs...)
}

// ListenerCount returns how many registrations topic currently has.
func (d *Dispatcher) ListenerCount(topic string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	return len(d.listeners[topic])
}

// Topics returns every topic that has been subscribed to or cleared, sorted.
func (d *Dispatcher) Topics() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	topics := make([]string, 0, len(d.listeners))
	for topic := range d.listeners {
		topics = append(topics, topic)
	}
	sort.Strings(topics)
	return topics
}

// Stats returns a snapshot of the dispatcher counters.
func (d *Dispatcher) Stats() Stats {
	d.mu.RLock()
	topics := len(d.listeners)
	d.mu.RUnlock()

	return Stats{
		Published: d.published.Load(),
		Delivered: d.delivered.Load(),
		Failed:    d.failed.Load(),
		Topics:    topics,
	}
}

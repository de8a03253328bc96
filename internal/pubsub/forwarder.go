package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/nfrund/emitter/internal/events"
)

// Forwarder relays dispatcher publishes onto an asynchronous Publisher so
// consumers can observe events without running on the publishing goroutine.
type Forwarder struct {
	dispatcher *events.Dispatcher
	publisher  Publisher
	source     string
	logger     *slog.Logger

	mu        sync.Mutex
	listeners map[string]*events.Listener
}

// ForwarderOption configures a Forwarder.
type ForwarderOption func(*Forwarder)

// WithSource sets the Source recorded on forwarded messages.
func WithSource(source string) ForwarderOption {
	return func(f *Forwarder) {
		f.source = source
	}
}

// NewForwarder creates a forwarder between d and p. Nothing is forwarded
// until Forward is called.
func NewForwarder(d *events.Dispatcher, p Publisher, opts ...ForwarderOption) *Forwarder {
	f := &Forwarder{
		dispatcher: d,
		publisher:  p,
		source:     "dispatcher",
		logger:     slog.Default().With("component", "forwarder"),
		listeners:  make(map[string]*events.Listener),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Forward starts relaying each topic. Topics already forwarded are skipped.
func (f *Forwarder) Forward(topics ...string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, topic := range topics {
		if _, ok := f.listeners[topic]; ok {
			continue
		}
		f.listeners[topic] = f.dispatcher.On(topic, f.relay(topic))
		f.logger.Info("Forwarding topic", "topic", topic)
	}
}

// Forwarded returns the number of topics currently relayed.
func (f *Forwarder) Forwarded() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.listeners)
}

// Stop removes the forwarder's listeners from the dispatcher.
func (f *Forwarder) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()

	for topic, l := range f.listeners {
		f.dispatcher.Unsubscribe(topic, l)
		delete(f.listeners, topic)
	}
}

// relay encodes the publish arguments as a JSON array.
func (f *Forwarder) relay(topic string) events.HandlerFunc {
	return func(ctx context.Context, args ...any) error {
		if args == nil {
			args = []any{}
		}
		payload, err := json.Marshal(args)
		if err != nil {
			return fmt.Errorf("failed to encode %s arguments: %w", topic, err)
		}

		msg := Message{
			Topic:   topic,
			Source:  f.source,
			Payload: payload,
			Metadata: map[string]string{
				"arg_count": strconv.Itoa(len(args)),
			},
		}
		if err := f.publisher.Publish(ctx, msg); err != nil {
			return fmt.Errorf("failed to forward %s: %w", topic, err)
		}
		return nil
	}
}

package events

import (
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// ErrorPolicy decides what Publish does when a listener returns an error.
type ErrorPolicy int

const (
	// FailFast stops at the first failing listener and returns its error.
	// Listeners after it do not run for that publish.
	FailFast ErrorPolicy = iota
	// ContinueOnError runs every listener and returns all failures joined.
	ContinueOnError
)

// String returns the policy's configuration name.
func (p ErrorPolicy) String() string {
	switch p {
	case FailFast:
		return "failfast"
	case ContinueOnError:
		return "continue"
	default:
		return fmt.Sprintf("ErrorPolicy(%d)", int(p))
	}
}

// ParseErrorPolicy converts a configuration value ("failfast" or "continue")
// into an ErrorPolicy.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "failfast", "fail-fast":
		return FailFast, nil
	case "continue":
		return ContinueOnError, nil
	default:
		return FailFast, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// Option is a function that configures a Dispatcher.
type Option func(*Dispatcher)

// WithErrorPolicy sets how listener errors affect the rest of a publish.
func WithErrorPolicy(p ErrorPolicy) Option {
	return func(d *Dispatcher) {
		d.policy = p
	}
}

// WithLogger sets the logger used for dispatch diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTracer wraps every publish in a span created by tracer.
func WithTracer(tracer trace.Tracer) Option {
	return func(d *Dispatcher) {
		if tracer != nil {
			d.tracer = tracer
		}
	}
}

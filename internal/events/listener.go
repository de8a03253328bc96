package events

import (
	"context"

	"github.com/google/uuid"
)

// HandlerFunc is the callback invoked for each publish on a subscribed topic.
// Arguments are passed through from Publish positionally.
type HandlerFunc func(ctx context.Context, args ...any) error

// Listener wraps a HandlerFunc with a stable identity. Two listeners built
// from the same function are still distinct; removal compares pointers.
type Listener struct {
	id uuid.UUID
	fn HandlerFunc
}

// NewListener wraps fn in a new Listener.
func NewListener(fn HandlerFunc) *Listener {
	return &Listener{
		id: uuid.New(),
		fn: fn,
	}
}

// ID returns the listener's unique identifier, used in logs and errors.
func (l *Listener) ID() string {
	return l.id.String()
}

func (l *Listener) call(ctx context.Context, args []any) error {
	return l.fn(ctx, args...)
}

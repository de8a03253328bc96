package events

import (
	"errors"
	"fmt"
)

// ErrPayloadType is returned by typed listeners when a publish carries
// arguments that do not match the topic's payload type.
var ErrPayloadType = errors.New("payload type mismatch")

// ErrUnknownPolicy is returned by ParseErrorPolicy for unrecognised names.
var ErrUnknownPolicy = errors.New("unknown error policy")

// ListenerError reports a listener that returned an error during Publish.
type ListenerError struct {
	Topic      string
	Index      int // position of the listener in the topic's sequence
	ListenerID string
	Err        error
}

// Error implements the error interface
func (e *ListenerError) Error() string {
	return fmt.Sprintf("listener %d (%s) on topic %q: %v", e.Index, e.ListenerID, e.Topic, e.Err)
}

// Unwrap returns the listener's own error
func (e *ListenerError) Unwrap() error {
	return e.Err
}

package app

import (
	"context"
	"fmt"
	"io"

	"github.com/nfrund/emitter/internal/events"
)

// RunDemo subscribes two listeners, A and B, to the demo topic, publishes 1,
// unsubscribes A and publishes 2, writing each invocation to w.
func (a *App) RunDemo(ctx context.Context, w io.Writer) error {
	listener := func(name string) func(context.Context, DemoValue) error {
		return func(ctx context.Context, v DemoValue) error {
			_, err := fmt.Fprintf(w, "%s(%d)\n", name, v.Value)
			return err
		}
	}

	la := events.Listen(a.Dispatcher, DemoPublished, listener("A"))
	lb := events.Listen(a.Dispatcher, DemoPublished, listener("B"))
	// Unsubscribe is a no-op for A once the walkthrough has removed it.
	defer a.Dispatcher.Unsubscribe(DemoPublished.Name(), la)
	defer a.Dispatcher.Unsubscribe(DemoPublished.Name(), lb)

	fmt.Fprintf(w, "publish %s 1\n", DemoPublished.Name())
	if err := events.Emit(ctx, a.Dispatcher, DemoPublished, DemoValue{Value: 1}); err != nil {
		return err
	}

	a.Dispatcher.Unsubscribe(DemoPublished.Name(), la)
	fmt.Fprintln(w, "unsubscribe A")

	fmt.Fprintf(w, "publish %s 2\n", DemoPublished.Name())
	return events.Emit(ctx, a.Dispatcher, DemoPublished, DemoValue{Value: 2})
}

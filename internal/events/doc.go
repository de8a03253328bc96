// Package events provides an in-process publish/subscribe dispatcher that maps
// topic names to ordered lists of listeners.
//
// A Dispatcher is constructed explicitly and shared by reference; there is no
// package-level instance. Publishing is synchronous: every listener registered
// for the topic runs on the caller's goroutine, in registration order, before
// Publish returns.
//
// Usage:
//
//	d := events.NewDispatcher()
//
//	a := d.On("x", func(ctx context.Context, args ...any) error {
//		fmt.Println("A", args...)
//		return nil
//	})
//	d.On("x", func(ctx context.Context, args ...any) error {
//		fmt.Println("B", args...)
//		return nil
//	})
//
//	_ = d.Publish(ctx, "x", 1) // A 1, B 1
//	d.Unsubscribe("x", a)
//	_ = d.Publish(ctx, "x", 2) // B 2
//
// Listener identity is the *Listener pointer. Subscribing the same listener
// twice makes it run twice per publish; Unsubscribe removes every occurrence.
//
// Typed topics bind one payload type to a topic name:
//
//	var FrameRendered = events.NewTopic[Frame]("render.frame.done")
//
//	events.Listen(d, FrameRendered, func(ctx context.Context, f Frame) error { ... })
//	events.Emit(ctx, d, FrameRendered, Frame{Index: 1})
package events

// Package gpu wraps graphics-device acquisition and uniform buffer uploads.
//
// The package never creates a device on its own: the host environment
// supplies one through the Host interface. Callers get a nil Device, not an
// error, when the host cannot provide graphics, and decide on a fallback.
package gpu

import (
	"context"
	"log/slog"
)

// Host is the environment's graphics entry point.
type Host interface {
	// Supported reports whether the host has any graphics capability.
	Supported() bool
	// RequestAdapter returns a physical adapter, or nil when none is available.
	RequestAdapter(ctx context.Context) (Adapter, error)
}

// Adapter represents a physical graphics adapter.
type Adapter interface {
	// RequestDevice opens a logical device on the adapter.
	RequestDevice(ctx context.Context) (Device, error)
}

// Device is an opaque logical device handle.
type Device interface {
	Queue() Queue
}

// Queue submits work to a device.
type Queue interface {
	// WriteBuffer copies data into buf starting at offset.
	WriteBuffer(buf Buffer, offset uint64, data []byte)
}

// Buffer is a device-side buffer handle.
type Buffer interface {
	Size() uint64
}

// AcquireDevice asks host for an adapter and opens a device on it. It returns
// nil when the host has no graphics capability, no adapter can be obtained,
// or device creation fails; each case is logged. The call may block on the
// host until it responds or ctx is done.
func AcquireDevice(ctx context.Context, host Host) Device {
	logger := slog.Default().With("component", "gpu")

	if host == nil || !host.Supported() {
		logger.Warn("Graphics not supported by host")
		return nil
	}

	adapter, err := host.RequestAdapter(ctx)
	if err != nil {
		logger.Warn("Failed to get adapter", "error", err)
		return nil
	}
	if adapter == nil {
		logger.Warn("Failed to get adapter")
		return nil
	}

	device, err := adapter.RequestDevice(ctx)
	if err != nil {
		logger.Warn("Failed to create device", "error", err)
		return nil
	}
	if device == nil {
		logger.Warn("Adapter returned no device")
		return nil
	}

	logger.Debug("Device acquired")
	return device
}

// WriteUniform copies data into target at offset 0 through the device's
// queue. Buffer sizing and data layout are the caller's responsibility.
func WriteUniform(device Device, data []byte, target Buffer) {
	device.Queue().WriteBuffer(target, 0, data)
}

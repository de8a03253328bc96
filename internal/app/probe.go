package app

import (
	"context"

	"github.com/nfrund/emitter/internal/events"
	"github.com/nfrund/emitter/internal/gpu"
)

// uniformAlignment is the size granularity of uniform buffers.
const uniformAlignment = 16

// ProbeResult reports what ProbeGPU managed to do.
type ProbeResult struct {
	Status DeviceStatus
	Buffer []byte // buffer contents after the write, nil without a device
}

// ProbeGPU acquires a device from the configured host and, when one is
// available, uploads uniform into a freshly allocated buffer. It publishes
// DeviceStatusChanged and, after a write, UniformWritten.
func (a *App) ProbeGPU(ctx context.Context, uniform []byte) (ProbeResult, error) {
	device := gpu.AcquireDevice(ctx, a.GPU.Host)

	result := ProbeResult{
		Status: DeviceStatus{Backend: a.GPU.Backend, Available: device != nil},
	}
	if err := events.Emit(ctx, a.Dispatcher, DeviceStatusChanged, result.Status); err != nil {
		return result, err
	}

	sd, ok := device.(*gpu.SoftwareDevice)
	if !ok {
		if device != nil {
			a.Logger.Info("Device does not expose buffer allocation, skipping uniform write", "backend", a.GPU.Backend)
		}
		return result, nil
	}

	buf := sd.CreateBuffer(alignUp(uint64(len(uniform)), uniformAlignment))
	gpu.WriteUniform(device, uniform, buf)
	result.Buffer = buf.Bytes()

	err := events.Emit(ctx, a.Dispatcher, UniformWritten, UniformWrite{
		Bytes:      len(uniform),
		BufferSize: buf.Size(),
	})
	return result, err
}

func alignUp(n, align uint64) uint64 {
	if n == 0 {
		return align
	}
	return (n + align - 1) / align * align
}

package gpu

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrDeviceCreation is returned by the software adapter when configured to
// fail device creation.
var ErrDeviceCreation = errors.New("device creation failed")

// SoftwareHost is a CPU-backed Host. Buffers are plain byte slices, which
// makes it usable in tests and on machines without a graphics stack.
type SoftwareHost struct {
	supported     bool
	noAdapter     bool
	failDevice    bool
	mu            sync.Mutex
	devicesOpened int
}

// SoftwareOption configures a SoftwareHost.
type SoftwareOption func(*SoftwareHost)

// Unsupported makes the host report no graphics capability.
func Unsupported() SoftwareOption {
	return func(h *SoftwareHost) {
		h.supported = false
	}
}

// WithoutAdapter makes adapter requests return no adapter.
func WithoutAdapter() SoftwareOption {
	return func(h *SoftwareHost) {
		h.noAdapter = true
	}
}

// FailingDevice makes device creation fail with ErrDeviceCreation.
func FailingDevice() SoftwareOption {
	return func(h *SoftwareHost) {
		h.failDevice = true
	}
}

// NewSoftwareHost creates a supported software host.
func NewSoftwareHost(opts ...SoftwareOption) *SoftwareHost {
	h := &SoftwareHost{supported: true}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// HostFor returns the host for a configured backend name. "none" yields a
// nil Host, which AcquireDevice treats as no graphics capability.
func HostFor(backend string) (Host, error) {
	switch strings.ToLower(backend) {
	case "", "software":
		return NewSoftwareHost(), nil
	case "none":
		return nil, nil
	default:
		return nil, fmt.Errorf("unknown gpu backend %q", backend)
	}
}

// Supported implements Host.
func (h *SoftwareHost) Supported() bool {
	return h != nil && h.supported
}

// RequestAdapter implements Host.
func (h *SoftwareHost) RequestAdapter(ctx context.Context) (Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if h.noAdapter {
		return nil, nil
	}
	return &softwareAdapter{host: h}, nil
}

// DevicesOpened returns how many devices this host has handed out.
func (h *SoftwareHost) DevicesOpened() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.devicesOpened
}

type softwareAdapter struct {
	host *SoftwareHost
}

func (a *softwareAdapter) RequestDevice(ctx context.Context) (Device, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if a.host.failDevice {
		return nil, ErrDeviceCreation
	}

	a.host.mu.Lock()
	a.host.devicesOpened++
	a.host.mu.Unlock()

	return &SoftwareDevice{queue: &softwareQueue{}}, nil
}

// SoftwareDevice is the Device handed out by SoftwareHost.
type SoftwareDevice struct {
	queue *softwareQueue
}

// Queue implements Device.
func (d *SoftwareDevice) Queue() Queue {
	return d.queue
}

// CreateBuffer allocates a zeroed buffer of size bytes.
func (d *SoftwareDevice) CreateBuffer(size uint64) *SoftwareBuffer {
	return &SoftwareBuffer{data: make([]byte, size)}
}

// Writes returns how many buffer writes were submitted to the device queue.
func (d *SoftwareDevice) Writes() int {
	d.queue.mu.Lock()
	defer d.queue.mu.Unlock()
	return d.queue.writes
}

type softwareQueue struct {
	mu     sync.Mutex
	writes int
}

// WriteBuffer copies as much of data as fits after offset. Writes to
// buffers from other backends are ignored.
func (q *softwareQueue) WriteBuffer(buf Buffer, offset uint64, data []byte) {
	sb, ok := buf.(*SoftwareBuffer)
	if !ok || sb == nil {
		return
	}

	q.mu.Lock()
	q.writes++
	q.mu.Unlock()

	sb.mu.Lock()
	defer sb.mu.Unlock()
	if offset >= uint64(len(sb.data)) {
		return
	}
	copy(sb.data[offset:], data)
}

// SoftwareBuffer is a CPU-side buffer.
type SoftwareBuffer struct {
	mu   sync.Mutex
	data []byte
}

// Size implements Buffer.
func (b *SoftwareBuffer) Size() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint64(len(b.data))
}

// Bytes returns a copy of the buffer contents.
func (b *SoftwareBuffer) Bytes() []byte {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}

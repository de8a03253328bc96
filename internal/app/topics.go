package app

import (
	"github.com/nfrund/emitter/internal/events"
	"github.com/nfrund/emitter/internal/topicmgr"
)

// DeviceStatus is published after every device acquisition attempt.
type DeviceStatus struct {
	Backend   string `json:"backend"`
	Available bool   `json:"available"`
}

// UniformWrite is published after a uniform buffer upload.
type UniformWrite struct {
	Bytes      int    `json:"bytes"`
	BufferSize uint64 `json:"buffer_size"`
}

// DemoValue is the payload of the demo topic.
type DemoValue struct {
	Value int `json:"value"`
}

var (
	DeviceStatusChanged = events.NewTopic[DeviceStatus]("gpu.device.status")
	UniformWritten      = events.NewTopic[UniformWrite]("gpu.uniform.written")
	DemoPublished       = events.NewTopic[DemoValue]("demo.value")
)

// RegisterTopics adds the built-in topics to m.
func RegisterTopics(m *topicmgr.Manager) error {
	defs := []topicmgr.Topic{
		DeviceStatusChanged.Definition("",
			"Published after each attempt to acquire a graphics device",
			`{"backend":"software","available":true}`),
		UniformWritten.Definition("",
			"Published after a uniform buffer has been written through the device queue",
			`{"bytes":16,"buffer_size":16}`),
		DemoPublished.Definition("demo",
			"Values published by the demo command",
			`{"value":1}`),
	}

	for _, def := range defs {
		if err := m.Register(def); err != nil {
			return err
		}
	}
	return nil
}

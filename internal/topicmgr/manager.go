package topicmgr

import (
	"fmt"
	"sync"
	"time"
)

// Manager is the catalog API: it validates topic definitions before storing
// them in its registry.
type Manager struct {
	registry  *Registry
	validator *Validator
	mu        sync.RWMutex
	createdAt time.Time
}

// NewManager creates a new topic manager with registry and validator
func NewManager() *Manager {
	return &Manager{
		registry:  NewRegistry(),
		validator: NewValidator(),
		createdAt: time.Now(),
	}
}

// Register validates a topic and adds it to the catalog
func (m *Manager) Register(topic Topic) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.validator.ValidateDefinition(topic); err != nil {
		te := &TopicError{
			Type:    ErrorValidationFailed,
			Message: "topic validation failed",
			Cause:   err,
		}
		if topic != nil {
			te.Topic = topic.Name()
			te.Owner = topic.Owner()
		}
		return te
	}

	return m.registry.Register(topic)
}

// MustRegister registers a topic and panics on error (for static initialization)
func (m *Manager) MustRegister(topic Topic) {
	if err := m.Register(topic); err != nil {
		panic(fmt.Sprintf("failed to register topic %s: %v", topic.Name(), err))
	}
}

// Get retrieves a topic by name
func (m *Manager) Get(name string) (Topic, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.registry.Get(name)
}

// Lookups returns how many times a topic has been retrieved with Get
func (m *Manager) Lookups(name string) int64 {
	entry, ok := m.registry.GetEntry(name)
	if !ok {
		return 0
	}
	return entry.Lookups
}

// List returns all registered topics
func (m *Manager) List() []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.registry.List()
}

// ListByOwner returns topics for a specific owner
func (m *Manager) ListByOwner(owner string) []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.registry.ListByOwner(owner)
}

// ListByScope returns topics for a specific scope
func (m *Manager) ListByScope(scope TopicScope) []Topic {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.registry.ListByScope(scope)
}

// Validate re-checks a topic definition without registering it
func (m *Manager) Validate(topic Topic) error {
	return m.validator.ValidateDefinition(topic)
}

// ValidateTopicName checks if a topic name is valid without creating a topic
func (m *Manager) ValidateTopicName(name string) error {
	return m.validator.ValidateName(name)
}

// Count returns the total number of registered topics
func (m *Manager) Count() int {
	return m.registry.Count()
}

// Stats returns catalog statistics
func (m *Manager) Stats() ManagerStats {
	return ManagerStats{
		CreatedAt:     m.createdAt,
		Uptime:        time.Since(m.createdAt),
		RegistryStats: m.registry.Stats(),
	}
}

// ManagerStats provides statistics about the manager
type ManagerStats struct {
	CreatedAt     time.Time     `json:"created_at"`
	Uptime        time.Duration `json:"uptime"`
	RegistryStats RegistryStats `json:"registry_stats"`
}

// ParseScope converts a user-supplied scope name to a TopicScope.
// It returns the empty scope for unknown names.
func ParseScope(s string) TopicScope {
	switch TopicScope(s) {
	case ScopeCore, ScopeApp:
		return TopicScope(s)
	default:
		return ""
	}
}

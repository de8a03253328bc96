package topicmgr

import (
	"fmt"
	"sort"
	"sync"
	"time"
)

// Registry stores registered topics by name
type Registry struct {
	entries map[string]*RegistryEntry
	mu      sync.RWMutex
}

// NewRegistry creates a new topic registry
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]*RegistryEntry),
	}
}

// Register adds a topic to the registry
func (r *Registry) Register(topic Topic) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if topic == nil {
		return &TopicError{
			Type:    ErrorValidationFailed,
			Message: "cannot register nil topic",
		}
	}

	name := topic.Name()
	if name == "" {
		return &TopicError{
			Type:    ErrorValidationFailed,
			Message: "topic name cannot be empty",
		}
	}

	if _, exists := r.entries[name]; exists {
		return &TopicError{
			Type:    ErrorDuplicateRegistration,
			Topic:   name,
			Owner:   topic.Owner(),
			Message: fmt.Sprintf("topic already registered: %s", name),
		}
	}

	r.entries[name] = &RegistryEntry{
		Topic:        topic,
		RegisteredAt: time.Now(),
		Owner:        topic.Owner(),
	}
	return nil
}

// Get retrieves a topic by name and counts the lookup
func (r *Registry) Get(name string) (Topic, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, exists := r.entries[name]
	if !exists {
		return nil, false
	}
	entry.Lookups++

	return entry.Topic, true
}

// GetEntry retrieves a copy of a registry entry by topic name
func (r *Registry) GetEntry(name string) (RegistryEntry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entry, exists := r.entries[name]
	if !exists {
		return RegistryEntry{}, false
	}
	return *entry, true
}

// List returns all registered topics sorted by name
func (r *Registry) List() []Topic {
	return r.filter(func(Topic) bool { return true })
}

// ListByOwner returns topics for a specific owner
func (r *Registry) ListByOwner(owner string) []Topic {
	return r.filter(func(t Topic) bool { return t.Owner() == owner })
}

// ListByScope returns topics for a specific scope
func (r *Registry) ListByScope(scope TopicScope) []Topic {
	return r.filter(func(t Topic) bool { return t.Scope() == scope })
}

func (r *Registry) filter(keep func(Topic) bool) []Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()

	topics := make([]Topic, 0, len(r.entries))
	for _, entry := range r.entries {
		if keep(entry.Topic) {
			topics = append(topics, entry.Topic)
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].Name() < topics[j].Name()
	})
	return topics
}

// Count returns the number of registered topics
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// Stats returns registry statistics
func (r *Registry) Stats() RegistryStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := RegistryStats{
		TotalTopics:    len(r.entries),
		OwnerBreakdown: make(map[string]int),
	}

	for _, entry := range r.entries {
		switch entry.Topic.Scope() {
		case ScopeCore:
			stats.CoreTopics++
		case ScopeApp:
			stats.AppTopics++
			stats.OwnerBreakdown[entry.Topic.Owner()]++
		}
	}

	return stats
}

// RegistryStats provides statistics about the registry
type RegistryStats struct {
	TotalTopics    int            `json:"total_topics"`
	CoreTopics     int            `json:"core_topics"`
	AppTopics      int            `json:"app_topics"`
	OwnerBreakdown map[string]int `json:"owner_breakdown"`
}

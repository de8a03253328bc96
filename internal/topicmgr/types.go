package topicmgr

import (
	"time"
)

// Topic describes a named event topic known to the catalog
type Topic interface {
	// Name returns the unique string identifier for this topic
	Name() string

	// Owner returns the component that publishes this topic (empty for core topics)
	Owner() string

	// Description returns human-readable documentation
	Description() string

	// Example returns an example payload
	Example() string

	// PayloadType returns the Go type carried by the topic, if known
	PayloadType() string

	// Metadata returns additional topic information
	Metadata() map[string]interface{}

	// Scope returns whether this is a core or app topic
	Scope() TopicScope
}

// TypedTopic is the default Topic implementation
type TypedTopic struct {
	name        string
	owner       string
	description string
	example     string
	payloadType string
	metadata    map[string]interface{}
	scope       TopicScope
}

// Compile-time interface compliance check
var _ Topic = (*TypedTopic)(nil)

// TopicConfig holds configuration for creating a new topic
type TopicConfig struct {
	Name        string                 `json:"name"`                   // Unique identifier
	Owner       string                 `json:"owner,omitempty"`        // Owning component (empty for core topics)
	Scope       TopicScope             `json:"scope"`                  // Core or app scope
	Description string                 `json:"description"`            // Human-readable description
	Example     string                 `json:"example,omitempty"`      // Example payload
	PayloadType string                 `json:"payload_type,omitempty"` // Go type name of the payload
	Metadata    map[string]interface{} `json:"metadata,omitempty"`     // Additional data
}

// TopicScope defines whether a topic belongs to the core runtime or an app component
type TopicScope string

const (
	ScopeCore TopicScope = "core" // Topics published by the runtime itself (gpu, dispatcher)
	ScopeApp  TopicScope = "app"  // Topics published by application components
)

// RegistryEntry represents a topic entry in the registry with metadata
type RegistryEntry struct {
	Topic        Topic     `json:"topic"`
	RegisteredAt time.Time `json:"registered_at"`
	Owner        string    `json:"owner"`
	Lookups      int64     `json:"lookups"`
}

// TopicError represents structured errors in the topic catalog
type TopicError struct {
	Type    ErrorType `json:"type"`
	Topic   string    `json:"topic"`
	Owner   string    `json:"owner"`
	Message string    `json:"message"`
	Cause   error     `json:"cause,omitempty"`
}

// ErrorType defines the type of topic catalog error
type ErrorType string

const (
	ErrorTopicNotFound         ErrorType = "topic_not_found"
	ErrorDuplicateRegistration ErrorType = "duplicate_registration"
	ErrorValidationFailed      ErrorType = "validation_failed"
	ErrorInvalidScope          ErrorType = "invalid_scope"
	ErrorCatalogLoad           ErrorType = "catalog_load"
)

// Error implements the error interface
func (e *TopicError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error
func (e *TopicError) Unwrap() error {
	return e.Cause
}

// DefineCore creates a topic published by the runtime itself
func DefineCore(config TopicConfig) Topic {
	config.Scope = ScopeCore
	config.Owner = ""
	return newTypedTopic(config)
}

// DefineApp creates a topic owned by an application component
func DefineApp(config TopicConfig) Topic {
	config.Scope = ScopeApp
	return newTypedTopic(config)
}

// Define creates a topic honouring config.Scope. An unknown scope is kept
// as-is so the validator can report it.
func Define(config TopicConfig) Topic {
	switch config.Scope {
	case ScopeCore:
		return DefineCore(config)
	case ScopeApp:
		return DefineApp(config)
	default:
		return newTypedTopic(config)
	}
}

func newTypedTopic(config TopicConfig) *TypedTopic {
	return &TypedTopic{
		name:        config.Name,
		owner:       config.Owner,
		description: config.Description,
		example:     config.Example,
		payloadType: config.PayloadType,
		metadata:    config.Metadata,
		scope:       config.Scope,
	}
}

// Name returns the topic's unique identifier
func (t *TypedTopic) Name() string {
	return t.name
}

// Owner returns the component that owns this topic
func (t *TypedTopic) Owner() string {
	return t.owner
}

// Description returns human-readable documentation
func (t *TypedTopic) Description() string {
	return t.description
}

// Example returns an example payload
func (t *TypedTopic) Example() string {
	return t.example
}

// PayloadType returns the Go type carried by the topic
func (t *TypedTopic) PayloadType() string {
	return t.payloadType
}

// Metadata returns additional topic information
func (t *TypedTopic) Metadata() map[string]interface{} {
	// Return a copy to prevent external modification
	result := make(map[string]interface{}, len(t.metadata))
	for k, v := range t.metadata {
		result[k] = v
	}
	return result
}

// Scope returns whether this is a core or app topic
func (t *TypedTopic) Scope() TopicScope {
	return t.scope
}

// String returns the topic name for easy debugging
func (t *TypedTopic) String() string {
	return t.name
}

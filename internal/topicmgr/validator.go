package topicmgr

import (
	"fmt"
	"regexp"
	"strings"
)

// coreTopicPrefixes lists the namespaces reserved for runtime-published topics.
var coreTopicPrefixes = []string{
	"gpu.",
	"dispatcher.",
	"lifecycle.",
}

// Validator checks topic names and definitions
type Validator struct {
	namePattern  *regexp.Regexp
	ownerPattern *regexp.Regexp
}

// NewValidator creates a new topic validator
func NewValidator() *Validator {
	// Topic names are dot-separated lowercase segments: render.frame.done
	return &Validator{
		namePattern:  regexp.MustCompile(`^[a-z][a-z0-9]*(\.[a-z][a-z0-9]*)*$`),
		ownerPattern: regexp.MustCompile(`^[a-z][a-z0-9_]*$`),
	}
}

// ValidateDefinition validates a topic definition
func (v *Validator) ValidateDefinition(topic Topic) error {
	if topic == nil {
		return fmt.Errorf("topic cannot be nil")
	}

	if err := v.ValidateName(topic.Name()); err != nil {
		return fmt.Errorf("invalid topic name: %w", err)
	}

	if strings.TrimSpace(topic.Description()) == "" {
		return fmt.Errorf("topic description cannot be empty")
	}

	switch topic.Scope() {
	case ScopeCore:
		if err := v.validateCoreTopic(topic); err != nil {
			return fmt.Errorf("core topic validation failed: %w", err)
		}
	case ScopeApp:
		if err := v.validateAppTopic(topic); err != nil {
			return fmt.Errorf("app topic validation failed: %w", err)
		}
	default:
		return fmt.Errorf("invalid topic scope: %q", topic.Scope())
	}

	return nil
}

// ValidateName checks if a topic name follows the naming convention
func (v *Validator) ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("name cannot be empty")
	}

	if len(name) > 100 {
		return fmt.Errorf("name too long (max 100 characters)")
	}

	if !v.namePattern.MatchString(name) {
		return fmt.Errorf("name must be dot-separated lowercase segments, e.g. render.frame.done")
	}

	return nil
}

func (v *Validator) validateCoreTopic(topic Topic) error {
	if topic.Owner() != "" {
		return fmt.Errorf("core topics should not have an owner")
	}

	if !hasCorePrefix(topic.Name()) {
		return fmt.Errorf("core topic must start with one of %v", coreTopicPrefixes)
	}

	return nil
}

func (v *Validator) validateAppTopic(topic Topic) error {
	owner := strings.TrimSpace(topic.Owner())
	if owner == "" {
		return fmt.Errorf("app topics must specify an owner")
	}

	if len(owner) > 50 {
		return fmt.Errorf("owner name too long (max 50 characters)")
	}

	if !v.ownerPattern.MatchString(owner) {
		return fmt.Errorf("owner name must be lowercase alphanumeric with underscores")
	}

	if hasCorePrefix(topic.Name()) {
		return fmt.Errorf("app topic cannot use a core prefix: %s", topic.Name())
	}

	return nil
}

func hasCorePrefix(name string) bool {
	for _, prefix := range coreTopicPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

package topicmgr

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"
)

// CatalogFile is the on-disk form of a topic catalog.
type CatalogFile struct {
	Topics []TopicConfig `json:"topics"`
}

// LoadCatalog reads a JSON catalog from fs and registers every topic in it.
// Registration stops at the first invalid or duplicate topic; the number of
// topics registered before that point is returned alongside the error.
func (m *Manager) LoadCatalog(fs afero.Fs, path string) (int, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return 0, &TopicError{
			Type:    ErrorCatalogLoad,
			Message: fmt.Sprintf("failed to read catalog %s", path),
			Cause:   err,
		}
	}

	var catalog CatalogFile
	if err := json.Unmarshal(data, &catalog); err != nil {
		return 0, &TopicError{
			Type:    ErrorCatalogLoad,
			Message: fmt.Sprintf("failed to parse catalog %s", path),
			Cause:   err,
		}
	}

	for i, config := range catalog.Topics {
		if err := m.Register(Define(config)); err != nil {
			return i, err
		}
	}

	return len(catalog.Topics), nil
}

// SaveCatalog writes every registered topic to path as JSON.
func (m *Manager) SaveCatalog(fs afero.Fs, path string) error {
	topics := m.List()
	catalog := CatalogFile{Topics: make([]TopicConfig, 0, len(topics))}
	for _, t := range topics {
		catalog.Topics = append(catalog.Topics, TopicConfig{
			Name:        t.Name(),
			Owner:       t.Owner(),
			Scope:       t.Scope(),
			Description: t.Description(),
			Example:     t.Example(),
			PayloadType: t.PayloadType(),
			Metadata:    t.Metadata(),
		})
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}

	return afero.WriteFile(fs, path, data, 0o644)
}

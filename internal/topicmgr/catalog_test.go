package topicmgr

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCatalog = `{
  "topics": [
    {"name": "render.frame.done", "owner": "render", "scope": "app", "description": "frame submitted", "example": "{\"index\":1}"},
    {"name": "gpu.uniform.written", "scope": "core", "description": "uniform buffer updated"}
  ]
}`

func TestManager_LoadCatalog(t *testing.T) {
	// No disk I/O: the catalog lives in an in-memory filesystem.
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/etc/emitter/topics.json", []byte(sampleCatalog), 0o644))

	m := NewManager()
	n, err := m.LoadCatalog(fs, "/etc/emitter/topics.json")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	topic, ok := m.Get("gpu.uniform.written")
	require.True(t, ok)
	assert.Equal(t, ScopeCore, topic.Scope())

	topic, ok = m.Get("render.frame.done")
	require.True(t, ok)
	assert.Equal(t, `{"index":1}`, topic.Example())
}

func TestManager_LoadCatalogErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		m := NewManager()
		_, err := m.LoadCatalog(afero.NewMemMapFs(), "nope.json")

		var te *TopicError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, ErrorCatalogLoad, te.Type)
	})

	t.Run("malformed json", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fs, "bad.json", []byte("{"), 0o644))

		_, err := NewManager().LoadCatalog(fs, "bad.json")

		var te *TopicError
		require.ErrorAs(t, err, &te)
		assert.Equal(t, ErrorCatalogLoad, te.Type)
	})

	t.Run("stops at invalid topic", func(t *testing.T) {
		fs := afero.NewMemMapFs()
		content := `{"topics": [
			{"name": "chat.message", "owner": "chat", "scope": "app", "description": "ok"},
			{"name": "Chat.Bad", "owner": "chat", "scope": "app", "description": "bad"}
		]}`
		require.NoError(t, afero.WriteFile(fs, "topics.json", []byte(content), 0o644))

		m := NewManager()
		n, err := m.LoadCatalog(fs, "topics.json")
		require.Error(t, err)
		assert.Equal(t, 1, n)
		assert.Equal(t, 1, m.Count())
	})
}

func TestManager_SaveCatalogRoundTrip(t *testing.T) {
	fs := afero.NewMemMapFs()

	src := NewManager()
	src.MustRegister(appTopic("render.frame.done", "render"))
	src.MustRegister(DefineCore(TopicConfig{Name: "gpu.device.lost", Description: "device lost"}))
	require.NoError(t, src.SaveCatalog(fs, "out.json"))

	dst := NewManager()
	n, err := dst.LoadCatalog(fs, "out.json")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	topic, ok := dst.Get("render.frame.done")
	require.True(t, ok)
	assert.Equal(t, "render", topic.Owner())
}

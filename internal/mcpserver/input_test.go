package mcpserver

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/valkit/valkit/value"
)

func TestDocumentInput_Resolve(t *testing.T) {
	t.Run("inline JSON", func(t *testing.T) {
		doc, err := documentInput{Content: `{"a": 1}`}.resolve()
		require.NoError(t, err)
		assert.Equal(t, value.KindObject, doc.Kind())
	})

	t.Run("inline YAML", func(t *testing.T) {
		doc, err := documentInput{Content: "a: 1\nb: two\n"}.resolve()
		require.NoError(t, err)
		assert.Equal(t, value.KindObject, doc.Kind())
	})

	t.Run("explicit format wins", func(t *testing.T) {
		_, err := documentInput{Content: `{"a": 1}`, Format: "json"}.resolve()
		require.NoError(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		_, err := documentInput{Content: `{}`, Format: "toml"}.resolve()
		require.Error(t, err)
	})

	t.Run("file input", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "doc.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"a": 1}`), 0o644))

		doc, err := documentInput{File: path}.resolve()
		require.NoError(t, err)
		assert.Equal(t, value.KindObject, doc.Kind())
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := documentInput{File: "/no/such/file.json"}.resolve()
		require.Error(t, err)
	})

	t.Run("neither file nor content", func(t *testing.T) {
		_, err := documentInput{}.resolve()
		require.Error(t, err)
	})

	t.Run("both file and content", func(t *testing.T) {
		_, err := documentInput{File: "x.json", Content: "{}"}.resolve()
		require.Error(t, err)
	})
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "dir", cfg.Store.Backend)
	assert.Equal(t, "models", cfg.Store.Path)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, []string{".py"}, cfg.Scan.Extensions)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
store:
  backend: sqlite
  path: artifacts.db
output:
  format: Markdown
  locale: es
scan:
  extensions: [".py", ".pyw"]
`), 0o644))

	t.Setenv("SNIPCHECK_API_KEY", "from-env")
	t.Setenv("SNIPCHECK_STORE_PATH", "override.db")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Backend)
	assert.Equal(t, "override.db", cfg.Store.Path)
	assert.Equal(t, "markdown", cfg.Output.Format)
	assert.Equal(t, "es", cfg.Output.Locale)
	assert.Equal(t, "from-env", cfg.Embedding.APIKey)
	assert.Equal(t, []string{".py", ".pyw"}, cfg.Scan.Extensions)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

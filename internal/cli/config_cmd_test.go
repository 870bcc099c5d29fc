package cli_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterview/internal/config"
)

func TestConfigInit(t *testing.T) {
	home := setupCLITest(t)
	path := filepath.Join(home, "config.yaml")

	out, err := executeCmd(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")
	assert.Contains(t, out, path)
	_, statErr := os.Stat(path)
	require.NoError(t, statErr)

	_, err = executeCmd(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = executeCmd(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigSetGet(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, "config", "set", "view.page_size", "25")
	require.NoError(t, err)
	assert.Contains(t, out, "Set view.page_size = 25")

	out, err = executeCmd(t, "config", "get", "view.page_size")
	require.NoError(t, err)
	assert.Equal(t, "25\n", out)

	out, err = executeCmd(t, "config", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "view.page_size = 25")
	assert.Contains(t, out, "source.url = "+config.DefaultSourceURL)
}

func TestConfigSet_Rejected(t *testing.T) {
	setupCLITest(t)

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{"unknown key", []string{"nope.key", "1"}, config.ErrUnknownKey},
		{"page size out of range", []string{"view.page_size", "0"}, config.ErrInvalidPageSize},
		{"bad output format", []string{"output.default_format", "xml"}, config.ErrInvalidFormat},
		{"empty source", []string{"source.url", " "}, config.ErrEmptySource},
		{"unsortable default sort", []string{"view.default_sort", "bogus"}, config.ErrInvalidSort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeCmd(t, append([]string{"config", "set"}, tt.args...)...)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := executeCmd(t, "config", "set", "view.page_size", "many")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid value")

	_, err = executeCmd(t, "config", "get", "nope.key")
	assert.ErrorIs(t, err, config.ErrUnknownKey)
}

func TestConfigPathAndValidate(t *testing.T) {
	home := setupCLITest(t)

	out, err := executeCmd(t, "config", "path")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "config.yaml")+"\n", out)

	out, err = executeCmd(t, "config", "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration is valid")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("schema_version: 2.0.0\n"), 0o600))
	_, err = executeCmd(t, "--config", bad, "config", "validate")
	assert.ErrorIs(t, err, config.ErrUnsupportedSchema)
}

func TestConfigMerge(t *testing.T) {
	setupCLITest(t)

	_, err := executeCmd(t, "config", "set", "view.search_debounce_ms", "50")
	require.NoError(t, err)

	overlay := filepath.Join(t.TempDir(), "team.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("output:\n  default_format: json\nunknown:\n  x: 1\n"), 0o600))

	out, err := executeCmd(t, "config", "merge", overlay, "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "output.default_format = json")

	out, err = executeCmd(t, "config", "get", "output.default_format")
	require.NoError(t, err)
	assert.Equal(t, "table\n", out, "dry run does not save")

	_, err = executeCmd(t, "config", "merge", overlay)
	require.NoError(t, err)

	out, err = executeCmd(t, "config", "get", "output.default_format")
	require.NoError(t, err)
	assert.Equal(t, "json\n", out)

	out, err = executeCmd(t, "config", "get", "view.search_debounce_ms")
	require.NoError(t, err)
	assert.Equal(t, "50\n", out, "sections absent from the overlay are kept")
}

func TestConfigMerge_InvalidResult(t *testing.T) {
	setupCLITest(t)

	overlay := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(overlay, []byte("view:\n  default_sort: name\n"), 0o600))

	_, err := executeCmd(t, "config", "merge", overlay)
	require.Error(t, err, "a view section without page_size replaces it with zero")
	assert.ErrorIs(t, err, config.ErrInvalidPageSize)
}

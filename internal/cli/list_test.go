package cli_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterview/internal/engine"
	"github.com/rshade/rosterview/internal/ingest"
	"github.com/rshade/rosterview/internal/pagination"
)

type listJSON struct {
	Query engine.Query `json:"query"`
	Page  struct {
		CurrentPage int  `json:"current_page"`
		TotalPages  int  `json:"total_pages"`
		TotalItems  int  `json:"total_items"`
		HasNext     bool `json:"has_next"`
	} `json:"page"`
	Members []engine.Member `json:"members"`
}

func TestList_DefaultTable(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 12)

	out, err := executeCmd(t, "list", "--source", source)
	require.NoError(t, err)

	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "User 01")
	assert.Contains(t, out, "user10@example.com")
	assert.NotContains(t, out, "User 11")
	assert.Contains(t, out, "Page 1 of 2 (showing 1-10 of 12)")
}

func TestList_SearchJSON(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 12)

	out, err := executeCmd(t, "list", "--source", source, "--search", "ADMIN", "--output", "json")
	require.NoError(t, err)

	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "ADMIN", got.Query.Search)
	assert.Equal(t, 3, got.Page.TotalItems)
	require.Len(t, got.Members, 3)
	assert.Equal(t, []string{"1", "5", "9"}, []string{got.Members[0].ID, got.Members[1].ID, got.Members[2].ID})
}

func TestList_SortAndPageNDJSON(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 12)

	out, err := executeCmd(t, "list", "--source", source,
		"--sort", "email:desc", "--page", "2", "--page-size", "5", "-o", "ndjson")
	require.NoError(t, err)

	lines := nonEmptyLines(out)
	require.Len(t, lines, 5)

	var first engine.Member
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	assert.Equal(t, "user07@example.com", first.Email)
}

func TestList_PageBeyondEnd(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 4)

	out, err := executeCmd(t, "list", "--source", source, "--page", "3", "--output", "json")
	require.NoError(t, err)

	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Empty(t, got.Members)
	assert.Equal(t, 4, got.Page.TotalItems)
	assert.Equal(t, 3, got.Page.CurrentPage)
}

func TestList_InvalidFlags(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 3)

	tests := []struct {
		name    string
		args    []string
		wantErr error
		wantMsg string
	}{
		{name: "role is not sortable", args: []string{"--sort", "role"}, wantMsg: "invalid sort field"},
		{name: "bad sort order", args: []string{"--sort", "name:up"}, wantErr: pagination.ErrInvalidSortOrder},
		{name: "page zero", args: []string{"--page", "0"}, wantErr: pagination.ErrInvalidPage},
		{name: "page size too big", args: []string{"--page-size", "5000"}, wantErr: pagination.ErrInvalidPageSize},
		{name: "unknown output", args: []string{"--output", "xml"}, wantErr: engine.ErrInvalidOutputFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", "--source", source}, tt.args...)
			_, err := executeCmd(t, args...)
			require.Error(t, err)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			if tt.wantMsg != "" {
				assert.Contains(t, err.Error(), tt.wantMsg)
			}
		})
	}
}

func TestList_HTTPSource(t *testing.T) {
	setupCLITest(t)
	data, err := os.ReadFile(writeMembersFile(t, 7))
	require.NoError(t, err)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "rosterview/")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	}))
	defer srv.Close()

	out, err := executeCmd(t, "list", "--source", srv.URL, "--output", "json")
	require.NoError(t, err)

	var got listJSON
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 7, got.Page.TotalItems)
}

func TestList_FetchFailure(t *testing.T) {
	setupCLITest(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := executeCmd(t, "list", "--source", srv.URL)
	require.Error(t, err)

	var fetchErr *ingest.FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
}

func TestList_UsesConfigDefaults(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 12)

	_, err := executeCmd(t, "config", "set", "view.page_size", "4")
	require.NoError(t, err)
	_, err = executeCmd(t, "config", "set", "view.default_sort", "name:desc")
	require.NoError(t, err)

	out, err := executeCmd(t, "list", "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "Page 1 of 3 (showing 1-4 of 12)")
	assert.Contains(t, out, "User 12")
	assert.NotContains(t, out, "User 01")
}

func TestList_ExplicitConfigFile(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 12)

	path := filepath.Join(t.TempDir(), "alt.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  page_size: 6\noutput:\n  default_format: ndjson\n"), 0o600))

	out, err := executeCmd(t, "--config", path, "list", "--source", source)
	require.NoError(t, err)
	assert.Len(t, nonEmptyLines(out), 6)

	_, err = executeCmd(t, "--config", filepath.Join(t.TempDir(), "missing", "dir.yaml"), "config", "path")
	require.NoError(t, err, "a missing --config file falls back to defaults")
}

func TestList_InvalidConfigRejected(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 3)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("view:\n  page_size: -2\n"), 0o600))

	_, err := executeCmd(t, "--config", path, "list", "--source", source, "--page-size", "3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRoot_NoSubcommandListsWhenNotATerminal(t *testing.T) {
	setupCLITest(t)
	source := writeMembersFile(t, 3)

	out, err := executeCmd(t, "--source", source)
	require.NoError(t, err)
	assert.Contains(t, out, "User 03")
	assert.Contains(t, out, "Page 1 of 1 (showing 1-3 of 3)")
}

func TestRoot_NegativeCacheTTL(t *testing.T) {
	setupCLITest(t)

	_, err := executeCmd(t, "--cache-ttl", "-1", "version")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache-ttl must be >= 0")
}

func TestVersion(t *testing.T) {
	setupCLITest(t)

	out, err := executeCmd(t, "version", "--short")
	require.NoError(t, err)
	assert.Equal(t, "test\n", out)

	out, err = executeCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "rosterview ")
}

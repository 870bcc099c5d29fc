package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterview/internal/cli"
	"github.com/rshade/rosterview/internal/config"
)

// setupCLITest isolates the config home and resets global state.
func setupCLITest(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv("ROSTERVIEW_CACHE_ENABLED", "")
	t.Setenv("ROSTERVIEW_CACHE_DIR", "")
	t.Setenv("NO_COLOR", "1")
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

// writeMembersFile writes n members to a temp file. Odd IDs are JSON
// numbers, even IDs strings, and every fourth member is an admin.
func writeMembersFile(t *testing.T, n int) string {
	t.Helper()
	rows := make([]map[string]any, n)
	for i := range rows {
		var id any = fmt.Sprint(i + 1)
		if (i+1)%2 == 1 {
			id = i + 1
		}
		role := "member"
		if i%4 == 0 {
			role = "admin"
		}
		rows[i] = map[string]any{
			"id":    id,
			"name":  fmt.Sprintf("User %02d", i+1),
			"email": fmt.Sprintf("user%02d@example.com", i+1),
			"role":  role,
		}
	}
	data, err := json.Marshal(rows)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "members.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// executeCmd runs the root command and returns stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func nonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}

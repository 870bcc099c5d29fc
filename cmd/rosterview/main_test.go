package main

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/rosterview/internal/cli"
	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/pkg/version"
)

func TestMainComponents(t *testing.T) {
	t.Run("version available", func(t *testing.T) {
		assert.NotEmpty(t, version.GetVersion())
	})

	t.Run("cli root command", func(t *testing.T) {
		root := cli.NewRootCmd(version.GetVersion())
		require.NotNil(t, root)
		assert.Equal(t, "rosterview", root.Use)

		names := make([]string, 0, len(root.Commands()))
		for _, c := range root.Commands() {
			names = append(names, c.Name())
		}
		for _, want := range []string{"browse", "list", "config", "cache", "version"} {
			assert.Contains(t, names, want)
		}
	})
}

func TestRun(t *testing.T) {
	t.Setenv(config.EnvHome, t.TempDir())
	t.Cleanup(config.ResetGlobalConfigForTest)

	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })

	os.Args = []string{"rosterview", "config", "path"}
	require.NoError(t, run())

	os.Args = []string{"rosterview", "list", "--page", "0"}
	require.Error(t, run())
}

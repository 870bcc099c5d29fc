package cli

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/logging"
	"github.com/rshade/rosterview/internal/tui"
)

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root Cobra command for the rosterview CLI.
// Run without a subcommand it opens the browser on a terminal and prints
// the first page otherwise.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:           "rosterview",
		Short:         "Browse, search and page through a members dataset",
		Long:          "rosterview fetches a JSON members dataset once, then lets you search, sort, page, select and delete rows.",
		Version:       ver,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cacheTTL, _ := cmd.Flags().GetInt("cache-ttl")
			if cacheTTL < 0 {
				return fmt.Errorf("cache-ttl must be >= 0, got %d", cacheTTL)
			}

			if err := loadConfig(cmd); err != nil {
				return err
			}

			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
			return cleanupLogging(logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if tui.CanBrowse(cmd.OutOrStdout()) {
				return runBrowse(cmd, browseOptions{})
			}
			return runList(cmd, listOptionsFromConfig(config.GetGlobalConfig()))
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "config file (default $ROSTERVIEW_HOME/config.yaml or ~/.rosterview/config.yaml)")
	cmd.PersistentFlags().String("source", "", "members dataset URL or file path (overrides source.url)")
	cmd.PersistentFlags().
		Int("cache-ttl", 0, "cache TTL in seconds (0 = use config default, overrides config file and env var)")

	cmd.AddCommand(
		NewBrowseCmd(), NewListCmd(), newConfigCmd(), newCacheCmd(), NewVersionCmd(ver),
	)
	return cmd
}

const rootCmdExample = `  # Open the interactive table
  rosterview

  # Print the second page of admins as JSON
  rosterview list --search admin --page 2 --output json

  # Sort by email, newest-first style
  rosterview list --sort email:desc

  # Browse a local copy of the dataset
  rosterview browse --source ./members.json

  # Keep fetched data for five minutes
  rosterview config set cache.enabled true
  rosterview list --cache-ttl 300`

// loadConfig resolves the configuration for this invocation and installs it
// as the global config. An explicit --config file must be readable.
func loadConfig(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		config.SetGlobalConfig(config.New())
		return nil
	}

	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	config.SetGlobalConfig(cfg)
	return nil
}

// newConfigCmd creates the config command group with configuration subcommands.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(
		NewConfigInitCmd(), NewConfigSetCmd(), NewConfigGetCmd(),
		NewConfigListCmd(), NewConfigPathCmd(), NewConfigValidateCmd(), NewConfigMergeCmd(),
	)
	return cmd
}

// newCacheCmd creates the cache command group.
func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "cache", Short: "Dataset cache commands"}
	cmd.AddCommand(NewCacheStatusCmd(), NewCacheClearCmd(), NewCachePruneCmd())
	return cmd
}

package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/engine/cache"
)

// openCacheForMaintenance opens the configured cache directory even when
// caching is disabled, so stale entries can still be inspected and removed.
func openCacheForMaintenance(cmd *cobra.Command) (*cache.FileStore, cache.Settings, error) {
	settings := cacheSettings(cmd, config.GetGlobalConfig())
	enabled := settings.Enabled
	settings.Enabled = true

	store, err := settings.Open()
	if err != nil {
		return nil, settings, fmt.Errorf("opening cache: %w", err)
	}
	settings.Enabled = enabled
	return store, settings, nil
}

// NewCacheStatusCmd creates the cache status command.
func NewCacheStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show dataset cache location and usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, settings, err := openCacheForMaintenance(cmd)
			if err != nil {
				return err
			}
			stats, err := store.Stats()
			if err != nil {
				return err
			}

			state := "disabled"
			if settings.Enabled {
				state = "enabled"
			}
			ttl := time.Duration(settings.TTLSeconds) * time.Second

			fmt.Fprintf(cmd.OutOrStdout(), "Cache:     %s\n", state)
			fmt.Fprintf(cmd.OutOrStdout(), "Directory: %s\n", stats.Directory)
			fmt.Fprintf(cmd.OutOrStdout(), "TTL:       %s\n", cache.FormatDuration(ttl))
			fmt.Fprintf(cmd.OutOrStdout(), "Entries:   %d (%d expired)\n", stats.Entries, stats.Expired)
			fmt.Fprintf(cmd.OutOrStdout(), "Size:      %d bytes\n", stats.Bytes)
			return nil
		},
	}
}

// NewCacheClearCmd creates the cache clear command.
func NewCacheClearCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openCacheForMaintenance(cmd)
			if err != nil {
				return err
			}
			removed, err := store.Clear()
			if err != nil {
				return err
			}
			logger.Debug().Ctx(cmd.Context()).Int("removed", removed).Msg("cache cleared")
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d cache entries\n", removed)
			return nil
		},
	}
}

// NewCachePruneCmd creates the cache prune command.
func NewCachePruneCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired or unreadable cache entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, _, err := openCacheForMaintenance(cmd)
			if err != nil {
				return err
			}
			removed, err := store.CleanupExpired()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d expired cache entries\n", removed)
			return nil
		},
	}
}

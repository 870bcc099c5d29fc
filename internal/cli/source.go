package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rshade/rosterview/internal/config"
	"github.com/rshade/rosterview/internal/engine/cache"
	"github.com/rshade/rosterview/internal/ingest"
	"github.com/rshade/rosterview/pkg/version"
)

// cacheSettings resolves the dataset cache from config, environment and
// the --cache-ttl flag, in increasing precedence.
func cacheSettings(cmd *cobra.Command, cfg *config.Config) cache.Settings {
	s := cache.Settings{
		Enabled:    cfg.Cache.Enabled,
		Directory:  cfg.CacheDirectory(),
		TTLSeconds: cfg.Cache.TTLSeconds,
		MaxSizeMB:  cfg.Cache.MaxSizeMB,
	}.ApplyEnv()

	if ttl, _ := cmd.Flags().GetInt("cache-ttl"); ttl > 0 {
		s.TTLSeconds = ttl
	}
	return s
}

// newLoader builds the dataset loader for this invocation. --source takes
// precedence over source.url.
func newLoader(cmd *cobra.Command, cfg *config.Config) (*ingest.Loader, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	source := cfg.Source.URL
	if flag, _ := cmd.Flags().GetString("source"); flag != "" {
		source = flag
	}

	userAgent := cfg.Source.UserAgent
	if userAgent == "" {
		userAgent = ingest.DefaultUserAgent + "/" + version.GetVersion()
	}

	store, err := cacheSettings(cmd, cfg).Open()
	if err != nil {
		return nil, fmt.Errorf("opening cache: %w", err)
	}

	loader, err := ingest.NewLoader(source,
		ingest.WithTimeout(time.Duration(cfg.Source.TimeoutSeconds)*time.Second),
		ingest.WithUserAgent(userAgent),
		ingest.WithCache(store),
	)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("source", loader.Source()).
		Bool("cache_enabled", store.IsEnabled()).
		Int("cache_ttl_seconds", store.GetTTL()).
		Msg("loader ready")
	return loader, nil
}

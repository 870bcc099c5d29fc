// Package config loads, validates and persists rosterview configuration.
//
// Configuration is resolved in three layers: built-in defaults, the YAML file
// at ~/.rosterview/config.yaml (or --config), then ROSTERVIEW_* environment
// variables. CLI flags are applied last by the commands themselves.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/rshade/rosterview/internal/engine"
	"github.com/rshade/rosterview/internal/pagination"
)

// Defaults.
const (
	SchemaVersion           = "1.0.0"
	DefaultSourceURL        = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"
	DefaultTimeoutSeconds   = 30
	DefaultPageSize         = 10
	MaxPageSize             = 1000
	DefaultSearchDebounceMS = 200
	DefaultOutputFormat     = "table"
	DefaultCacheTTLSeconds  = 3600
	DefaultCacheMaxSizeMB   = 16
	DefaultLogLevel         = "info"
	DefaultLogFormat        = "console"

	configFileName = "config.yaml"
	homeDirName    = ".rosterview"
)

// Environment variables consulted by New.
const (
	EnvHome         = "ROSTERVIEW_HOME"
	EnvSourceURL    = "ROSTERVIEW_SOURCE_URL"
	EnvPageSize     = "ROSTERVIEW_PAGE_SIZE"
	EnvLogLevel     = "ROSTERVIEW_LOG_LEVEL"
	EnvLogFormat    = "ROSTERVIEW_LOG_FORMAT"
	EnvOutputFormat = "ROSTERVIEW_OUTPUT_FORMAT"
)

// supportedSchema is the range of config file schema versions this build reads.
const supportedSchema = "^1"

// Validation errors.
var (
	ErrEmptySource       = errors.New("source.url cannot be empty")
	ErrInvalidPageSize   = fmt.Errorf("view.page_size must be between 1 and %d", MaxPageSize)
	ErrInvalidTimeout    = errors.New("source.timeout_seconds cannot be negative")
	ErrInvalidDebounce   = errors.New("view.search_debounce_ms cannot be negative")
	ErrInvalidSort       = errors.New("view.default_sort must be field[:asc|desc] on a sortable field")
	ErrInvalidFormat     = errors.New("output.default_format must be one of table, json, ndjson")
	ErrInvalidCacheTTL   = errors.New("cache.ttl_seconds cannot be negative")
	ErrUnsupportedSchema = errors.New("unsupported config schema_version")
	ErrUnknownKey        = errors.New("unknown configuration key")
)

// SourceConfig describes where the member dataset lives.
type SourceConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
	UserAgent      string `yaml:"user_agent,omitempty"`
}

// ViewConfig holds derived-view defaults.
type ViewConfig struct {
	PageSize         int    `yaml:"page_size"`
	DefaultSort      string `yaml:"default_sort,omitempty"`
	SearchDebounceMS int    `yaml:"search_debounce_ms"`
}

// CacheConfig controls the optional on-disk copy of the fetched dataset.
type CacheConfig struct {
	Enabled    bool   `yaml:"enabled"`
	TTLSeconds int    `yaml:"ttl_seconds"`
	Directory  string `yaml:"directory,omitempty"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
}

// OutputConfig holds non-interactive output defaults.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
}

// LoggingConfig holds logging defaults. An empty File logs to stderr.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file,omitempty"`
}

// Config is the full rosterview configuration.
type Config struct {
	SchemaVersion string        `yaml:"schema_version"`
	Source        SourceConfig  `yaml:"source"`
	View          ViewConfig    `yaml:"view"`
	Cache         CacheConfig   `yaml:"cache"`
	Output        OutputConfig  `yaml:"output"`
	Logging       LoggingConfig `yaml:"logging"`

	configPath string
}

// Default returns a configuration populated only with built-in defaults.
func Default() *Config {
	return &Config{
		SchemaVersion: SchemaVersion,
		Source: SourceConfig{
			URL:            DefaultSourceURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		View: ViewConfig{
			PageSize:         DefaultPageSize,
			SearchDebounceMS: DefaultSearchDebounceMS,
		},
		Cache: CacheConfig{
			Enabled:    false,
			TTLSeconds: DefaultCacheTTLSeconds,
			MaxSizeMB:  DefaultCacheMaxSizeMB,
		},
		Output: OutputConfig{
			DefaultFormat: DefaultOutputFormat,
		},
		Logging: LoggingConfig{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}

// New returns defaults overlaid with the config file (when present and
// readable) and environment variables. A broken config file is reported
// through the package logger and otherwise ignored; use Load to get the error.
func New() *Config {
	path := DefaultConfigPath()
	cfg, err := Load(path)
	if err != nil {
		l := GetLogger()
		l.Warn().Err(err).Str("path", path).Msg("ignoring unreadable config file")
		cfg = Default()
		cfg.configPath = path
		cfg.ApplyEnv()
	}
	return cfg
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	cfg.configPath = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		// Fields absent from the file keep their defaults.
		if err = yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	case !os.IsNotExist(err):
		return nil, fmt.Errorf("cannot access config file %s: %w", path, err)
	}

	cfg.ApplyEnv()
	return cfg, nil
}

// ApplyEnv overlays ROSTERVIEW_* environment variables. Malformed numeric
// values are ignored.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvSourceURL); v != "" {
		c.Source.URL = v
	}
	if v := os.Getenv(EnvPageSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.View.PageSize = n
		}
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvOutputFormat); v != "" {
		c.Output.DefaultFormat = v
	}
}

// Validate checks every section.
func (c *Config) Validate() error {
	if c.SchemaVersion != "" {
		if err := checkSchemaVersion(c.SchemaVersion); err != nil {
			return err
		}
	}
	if strings.TrimSpace(c.Source.URL) == "" {
		return ErrEmptySource
	}
	if c.Source.TimeoutSeconds < 0 {
		return ErrInvalidTimeout
	}
	if c.View.PageSize < 1 || c.View.PageSize > MaxPageSize {
		return fmt.Errorf("%w: got %d", ErrInvalidPageSize, c.View.PageSize)
	}
	if c.View.SearchDebounceMS < 0 {
		return ErrInvalidDebounce
	}
	if err := validateDefaultSort(c.View.DefaultSort); err != nil {
		return err
	}
	switch c.Output.DefaultFormat {
	case "table", "json", "ndjson":
	default:
		return fmt.Errorf("%w: got %q", ErrInvalidFormat, c.Output.DefaultFormat)
	}
	if c.Cache.TTLSeconds < 0 {
		return ErrInvalidCacheTTL
	}
	return nil
}

func validateDefaultSort(raw string) error {
	if raw == "" {
		return nil
	}
	field, _, err := pagination.ParseSort(raw)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSort, err)
	}
	if sorter := engine.NewMemberSorter(); !sorter.IsValidField(field) {
		return fmt.Errorf("%w: %q (valid: %s)", ErrInvalidSort, field, strings.Join(sorter.GetValidFields(), ", "))
	}
	return nil
}

func checkSchemaVersion(raw string) error {
	v, err := semver.NewVersion(raw)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, raw, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return err
	}
	if !constraint.Check(v) {
		return fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedSchema, raw, supportedSchema)
	}
	return nil
}

// ConfigPath returns the file this configuration is read from and saved to.
func (c *Config) ConfigPath() string {
	return c.configPath
}

// SetConfigPath changes the save location.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the parent directory.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Keys lists every dotted key accepted by Get and Set.
func Keys() []string {
	keys := []string{
		"source.url", "source.timeout_seconds", "source.user_agent",
		"view.page_size", "view.default_sort", "view.search_debounce_ms",
		"cache.enabled", "cache.ttl_seconds", "cache.directory", "cache.max_size_mb",
		"output.default_format",
		"logging.level", "logging.format", "logging.file",
	}
	sort.Strings(keys)
	return keys
}

// Get returns the value of a dotted key as a string.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "source.url":
		return c.Source.URL, nil
	case "source.timeout_seconds":
		return strconv.Itoa(c.Source.TimeoutSeconds), nil
	case "source.user_agent":
		return c.Source.UserAgent, nil
	case "view.page_size":
		return strconv.Itoa(c.View.PageSize), nil
	case "view.default_sort":
		return c.View.DefaultSort, nil
	case "view.search_debounce_ms":
		return strconv.Itoa(c.View.SearchDebounceMS), nil
	case "cache.enabled":
		return strconv.FormatBool(c.Cache.Enabled), nil
	case "cache.ttl_seconds":
		return strconv.Itoa(c.Cache.TTLSeconds), nil
	case "cache.directory":
		return c.Cache.Directory, nil
	case "cache.max_size_mb":
		return strconv.Itoa(c.Cache.MaxSizeMB), nil
	case "output.default_format":
		return c.Output.DefaultFormat, nil
	case "logging.level":
		return c.Logging.Level, nil
	case "logging.format":
		return c.Logging.Format, nil
	case "logging.file":
		return c.Logging.File, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// Set assigns a dotted key from its string form. c is only changed when the
// result validates.
func (c *Config) Set(key, value string) error {
	next := *c
	if err := next.assign(key, value); err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	*c = next
	return nil
}

//nolint:gocyclo // Flat key switch.
func (c *Config) assign(key, value string) error {
	var err error
	switch key {
	case "source.url":
		c.Source.URL = value
	case "source.timeout_seconds":
		c.Source.TimeoutSeconds, err = strconv.Atoi(value)
	case "source.user_agent":
		c.Source.UserAgent = value
	case "view.page_size":
		c.View.PageSize, err = strconv.Atoi(value)
	case "view.default_sort":
		c.View.DefaultSort = value
	case "view.search_debounce_ms":
		c.View.SearchDebounceMS, err = strconv.Atoi(value)
	case "cache.enabled":
		c.Cache.Enabled, err = strconv.ParseBool(value)
	case "cache.ttl_seconds":
		c.Cache.TTLSeconds, err = strconv.Atoi(value)
	case "cache.directory":
		c.Cache.Directory = value
	case "cache.max_size_mb":
		c.Cache.MaxSizeMB, err = strconv.Atoi(value)
	case "output.default_format":
		c.Output.DefaultFormat = value
	case "logging.level":
		c.Logging.Level = value
	case "logging.format":
		c.Logging.Format = value
	case "logging.file":
		c.Logging.File = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
	if err != nil {
		return fmt.Errorf("invalid value %q for %s: %w", value, key, err)
	}
	return nil
}

// CacheDirectory returns the configured cache directory or the default
// under the config home.
func (c *Config) CacheDirectory() string {
	if c.Cache.Directory != "" {
		return c.Cache.Directory
	}
	dir, err := GetConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "rosterview-cache")
	}
	return filepath.Join(dir, "cache")
}

// DefaultConfigPath returns ~/.rosterview/config.yaml (or $ROSTERVIEW_HOME/config.yaml).
func DefaultConfigPath() string {
	dir, err := GetConfigDir()
	if err != nil {
		return configFileName
	}
	return filepath.Join(dir, configFileName)
}

package cache

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// TTL configuration constants and defaults.
const (
	// DefaultTTLSeconds is the default cache TTL (1 hour).
	DefaultTTLSeconds = 3600

	// MinTTLSeconds is the minimum allowed TTL.
	MinTTLSeconds = 1

	// MaxTTLSeconds is the maximum allowed TTL (7 days).
	MaxTTLSeconds = 604800

	// DefaultCacheMaxSizeMB caps a single dataset entry.
	DefaultCacheMaxSizeMB = 16

	minutesPerHour = 60
	hoursPerDay    = 24

	// EnvTTLSeconds overrides the TTL.
	EnvTTLSeconds = "ROSTERVIEW_CACHE_TTL_SECONDS"

	// EnvCacheEnabled turns the cache on or off.
	EnvCacheEnabled = "ROSTERVIEW_CACHE_ENABLED"

	// EnvCacheDir overrides the cache directory.
	EnvCacheDir = "ROSTERVIEW_CACHE_DIR"

	// EnvCacheMaxSize overrides the maximum entry size in MB.
	EnvCacheMaxSize = "ROSTERVIEW_CACHE_MAX_SIZE_MB"
)

// ErrInvalidTTL is returned for a TTL outside [MinTTLSeconds, MaxTTLSeconds].
var ErrInvalidTTL = fmt.Errorf("TTL must be between %d and %d seconds", MinTTLSeconds, MaxTTLSeconds)

// Settings is the resolved cache configuration.
type Settings struct {
	Enabled    bool
	Directory  string
	TTLSeconds int
	MaxSizeMB  int
}

// ApplyEnv returns s with any ROSTERVIEW_CACHE_* overrides applied.
// Malformed or out-of-range values are ignored.
func (s Settings) ApplyEnv() Settings {
	s.Enabled = GetCacheEnabledFromEnv(s.Enabled)
	if dir := GetCacheDirFromEnv(); dir != "" {
		s.Directory = dir
	}
	s.TTLSeconds = GetTTLFromEnv(s.TTLSeconds)
	s.MaxSizeMB = GetCacheMaxSizeFromEnv(s.MaxSizeMB)
	return s
}

// Open creates the FileStore described by s.
func (s Settings) Open() (*FileStore, error) {
	return NewFileStore(s.Directory, s.Enabled, s.TTLSeconds, s.MaxSizeMB)
}

// GetTTLFromEnv reads the TTL from the environment, or returns fallback.
func GetTTLFromEnv(fallback int) int {
	envVal := os.Getenv(EnvTTLSeconds)
	if envVal == "" {
		return fallback
	}

	ttl, err := ParseTTL(envVal)
	if err != nil {
		return fallback
	}
	return ttl
}

// GetCacheEnabledFromEnv reads the enabled flag from the environment, or
// returns fallback when unset or unparsable.
func GetCacheEnabledFromEnv(fallback bool) bool {
	envVal := os.Getenv(EnvCacheEnabled)
	if envVal == "" {
		return fallback
	}

	enabled, err := strconv.ParseBool(envVal)
	if err != nil {
		return fallback
	}
	return enabled
}

// GetCacheDirFromEnv reads the cache directory from the environment.
// Returns an empty string if not set.
func GetCacheDirFromEnv() string {
	return os.Getenv(EnvCacheDir)
}

// GetCacheMaxSizeFromEnv reads the max entry size from the environment, or
// returns fallback.
func GetCacheMaxSizeFromEnv(fallback int) int {
	envVal := os.Getenv(EnvCacheMaxSize)
	if envVal == "" {
		return fallback
	}

	maxSize, err := strconv.Atoi(envVal)
	if err != nil || maxSize < 0 {
		return fallback
	}
	return maxSize
}

// FormatDuration formats a duration in a human-readable way.
// Examples: "1h", "30m", "2d3h".
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.0fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.0fm", d.Minutes())
	}
	if d < hoursPerDay*time.Hour {
		hours := int(d.Hours())
		minutes := int(d.Minutes()) % minutesPerHour
		if minutes == 0 {
			return fmt.Sprintf("%dh", hours)
		}
		return fmt.Sprintf("%dh%dm", hours, minutes)
	}
	days := int(d.Hours()) / hoursPerDay
	hours := int(d.Hours()) % hoursPerDay
	if hours == 0 {
		return fmt.Sprintf("%dd", days)
	}
	return fmt.Sprintf("%dd%dh", days, hours)
}

// ParseTTL parses integer seconds ("3600") or a Go duration ("1h30m").
func ParseTTL(s string) (int, error) {
	seconds, err := strconv.Atoi(s)
	if err != nil {
		duration, durErr := time.ParseDuration(s)
		if durErr != nil {
			return 0, fmt.Errorf("invalid TTL format: %w", durErr)
		}
		seconds = int(duration.Seconds())
	}

	if seconds < MinTTLSeconds || seconds > MaxTTLSeconds {
		return 0, fmt.Errorf("%w: got %d", ErrInvalidTTL, seconds)
	}
	return seconds, nil
}

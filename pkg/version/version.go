// Package version exposes build-time version information for rosterview.
package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"
)

// Build information, overridden with -ldflags at release time.
//
//nolint:gochecknoglobals // Set by the linker.
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// GetVersion returns the bare version string.
func GetVersion() string {
	return Version
}

// Semver parses the build version. Non-semver builds report 0.0.0.
func Semver() *semver.Version {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return semver.MustParse("0.0.0")
	}
	return v
}

// IsRelease reports whether the build version carries no prerelease suffix.
func IsRelease() bool {
	v, err := semver.NewVersion(Version)
	if err != nil {
		return false
	}
	return v.Prerelease() == ""
}

// Long returns a multi-field description used by `rosterview version`.
func Long() string {
	return fmt.Sprintf("rosterview %s (commit %s, built %s, %s/%s)",
		Version, GitCommit, BuildDate, runtime.GOOS, runtime.GOARCH)
}

package version

import (
	"runtime"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Version is the current version of the dashboard.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/argo-dashboard/internal/version.Version=1.2.3"
// The value "main" indicates a development build.
var Version = "v0.3.0"

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Major     uint64 `json:"major"`
	Minor     uint64 `json:"minor"`
	Patch     uint64 `json:"patch"`
	Dev       bool   `json:"dev"`
	GoVersion string `json:"goVersion"`
}

// GetVersion returns the current version of the dashboard.
func GetVersion() string {
	return Version
}

// GetInfo parses Version into its components. Development builds report zeros.
func GetInfo() Info {
	info := Info{
		Version:   Version,
		GoVersion: runtime.Version(),
	}

	parsed, err := semver.NewVersion(strings.TrimPrefix(Version, "v"))
	if err != nil {
		info.Dev = true

		return info
	}

	info.Major = parsed.Major()
	info.Minor = parsed.Minor()
	info.Patch = parsed.Patch()
	info.Dev = parsed.Prerelease() != ""

	return info
}

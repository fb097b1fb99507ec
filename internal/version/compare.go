package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
)

// CheckClientCompatibility checks whether an API client built against clientVersion
// can talk to a server running serverVersion.
//
// Compatibility Rules:
//   - If either version is "main" (development build), compatibility check is skipped
//   - Major versions must match exactly
//   - The server's minor version must be at least the client's
//   - Patch versions can differ
//
// Examples:
//   - Server 1.2.0, Client 1.2.0 -> OK (exact match)
//   - Server 1.3.0, Client 1.2.0 -> OK (server is newer)
//   - Server 1.2.0, Client 1.3.0 -> ERROR (client expects newer fields)
//   - Server 2.0.0, Client 1.2.0 -> ERROR (major differs)
//   - Server main, Client 1.2.0 -> OK (dev build, skip check)
func CheckClientCompatibility(serverVersion, clientVersion string) error {
	serverVersion = strings.TrimPrefix(serverVersion, "v")
	clientVersion = strings.TrimPrefix(clientVersion, "v")

	if serverVersion == "main" || clientVersion == "main" {
		return nil
	}

	serverSemver, err := semver.NewVersion(serverVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid server version '%s'", serverVersion)
	}

	clientSemver, err := semver.NewVersion(clientVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid client version '%s'", clientVersion)
	}

	if serverSemver.Major() != clientSemver.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "major version mismatch: server is %d.x.x but client requires %d.x.x",
			serverSemver.Major(), clientSemver.Major())
	}

	if serverSemver.Minor() < clientSemver.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion, "minor version mismatch: server is %d.%d.x but client requires %d.%d.x",
			serverSemver.Major(), serverSemver.Minor(),
			clientSemver.Major(), clientSemver.Minor())
	}

	return nil
}

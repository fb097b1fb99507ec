package version

import (
	"testing"

	"github.com/rxtech-lab/argo-dashboard/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckClientCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		serverVersion string
		clientVersion string
		expectError   bool
		errorContains string
	}{
		{name: "exact match", serverVersion: "1.2.0", clientVersion: "1.2.0"},
		{name: "server patch higher", serverVersion: "1.2.1", clientVersion: "1.2.0"},
		{name: "client patch higher", serverVersion: "1.2.0", clientVersion: "1.2.5"},
		{name: "server minor higher", serverVersion: "1.3.0", clientVersion: "1.2.0"},
		{
			name:          "client minor higher",
			serverVersion: "1.2.0",
			clientVersion: "1.3.0",
			expectError:   true,
			errorContains: "minor version mismatch",
		},
		{
			name:          "major version differs",
			serverVersion: "2.0.0",
			clientVersion: "1.2.0",
			expectError:   true,
			errorContains: "major version mismatch",
		},
		{name: "server is main", serverVersion: "main", clientVersion: "1.2.0"},
		{name: "client is main", serverVersion: "1.2.0", clientVersion: "main"},
		{name: "v prefix", serverVersion: "v1.2.0", clientVersion: "1.2.0"},
		{name: "prerelease", serverVersion: "1.2.0-alpha", clientVersion: "1.2.0"},
		{
			name:          "invalid server version",
			serverVersion: "not-a-version",
			clientVersion: "1.2.0",
			expectError:   true,
			errorContains: "invalid server version",
		},
		{
			name:          "empty client version",
			serverVersion: "1.2.0",
			clientVersion: "",
			expectError:   true,
			errorContains: "invalid client version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckClientCompatibility(tt.serverVersion, tt.clientVersion)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}

func TestGetInfo(t *testing.T) {
	original := Version
	t.Cleanup(func() { Version = original })

	Version = "v1.4.2"
	info := GetInfo()
	assert.Equal(t, uint64(1), info.Major)
	assert.Equal(t, uint64(4), info.Minor)
	assert.Equal(t, uint64(2), info.Patch)
	assert.False(t, info.Dev)
	assert.NotEmpty(t, info.GoVersion)

	Version = "main"
	assert.True(t, GetInfo().Dev)

	Version = "1.5.0-rc.1"
	assert.True(t, GetInfo().Dev)
}

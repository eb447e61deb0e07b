package version

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setVersion swaps the build variables for a test and restores them.
func setVersion(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	Version, GitCommit, BuildDate = version, commit, date
	t.Cleanup(func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	})
}

func TestGetVersion(t *testing.T) {
	setVersion(t, "1.2.3", "unknown", "unknown")
	assert.Equal(t, "1.2.3", GetVersion())
}

func TestGetBaseVersion(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"0.1.0", "0.1.0"},
		{"1.2.3-beta.1", "1.2.3"},
		{"1.2.3+build.5", "1.2.3"},
		{"not-a-version", "not-a-version"},
	}

	for _, tt := range tests {
		t.Run(tt.version, func(t *testing.T) {
			setVersion(t, tt.version, "unknown", "unknown")
			assert.Equal(t, tt.want, GetBaseVersion())
		})
	}
}

func TestIsPrerelease(t *testing.T) {
	setVersion(t, "0.2.0-rc.1", "unknown", "unknown")
	assert.True(t, IsPrerelease())

	setVersion(t, "0.2.0", "unknown", "unknown")
	assert.False(t, IsPrerelease())
}

func TestGetInfo(t *testing.T) {
	setVersion(t, "0.1.0", "abcdef1234", "2026-01-15")

	info, err := GetInfo()
	require.NoError(t, err)
	assert.Equal(t, "0.1.0", info.Version)
	assert.Equal(t, "abcdef1234", info.GitCommit)
	assert.Equal(t, "2026-01-15", info.BuildDate)
	assert.NotEmpty(t, info.GoVersion)
	assert.Contains(t, info.Platform, "/")
	require.NotNil(t, info.SemVer)
	assert.Equal(t, uint64(0), info.SemVer.Major())
}

func TestGetInfo_InvalidVersion(t *testing.T) {
	setVersion(t, "garbage", "unknown", "unknown")

	_, err := GetInfo()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid semantic version")
}

func TestGetFormattedVersion(t *testing.T) {
	t.Run("bare version", func(t *testing.T) {
		setVersion(t, "0.1.0", "unknown", "unknown")
		assert.Equal(t, "slackcmds v0.1.0", GetFormattedVersion())
	})

	t.Run("with commit and build date", func(t *testing.T) {
		setVersion(t, "0.1.0", "abcdef1234567890", "2026-01-15")
		formatted := GetFormattedVersion()
		assert.Equal(t, "slackcmds v0.1.0, commit abcdef1, built 2026-01-15", formatted)
	})

	t.Run("invalid version still renders", func(t *testing.T) {
		setVersion(t, "garbage", "unknown", "unknown")
		assert.True(t, strings.HasPrefix(GetFormattedVersion(), "slackcmds vgarbage"))
	})
}

func TestAtLeast(t *testing.T) {
	setVersion(t, "0.2.0", "unknown", "unknown")

	ok, err := AtLeast(">= 0.1.0")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = AtLeast(">= 0.3.0")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = AtLeast("not a constraint")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid version constraint")
}

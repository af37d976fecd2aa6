package version

import (
	"regexp"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestVersion_FollowsSemverOrDev(t *testing.T) {
	// Given: a build with or without ldflags

	// Then: Version is "dev" or semver
	if Version == "dev" {
		return
	}
	semverRegex := regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.]+)?$`)
	require.True(t, semverRegex.MatchString(Version), "got: %s", Version)
}

func TestString_ContainsBuildInfo(t *testing.T) {
	str := String()

	assert.Contains(t, str, "gooselib "+Version+" (gooselog)")
	assert.Contains(t, str, GoVersion)
	assert.Contains(t, str, runtime.GOOS+"/"+runtime.GOARCH)
}

func TestString_AbbreviatesReleaseInfo(t *testing.T) {
	// Given: ldflags from a release build
	oldVersion, oldCommit, oldDate, oldGo := Version, Commit, Date, GoVersion
	t.Cleanup(func() { Version, Commit, Date, GoVersion = oldVersion, oldCommit, oldDate, oldGo })
	Version = "1.2.0"
	Commit = "a1b2c3d4e5f60718"
	Date = "2026-03-14T09:26:53Z"
	GoVersion = "go1.25.5"

	// When: rendering the version line
	str := String()

	// Then: commit and date are shortened
	assert.Equal(t, "gooselib 1.2.0 (gooselog) a1b2c3d 2026-03-14 go1.25.5 "+runtime.GOOS+"/"+runtime.GOARCH, str)
}

func TestShort_ReturnsVersion(t *testing.T) {
	assert.Equal(t, Version, Short())
}

func TestGetInfo_ReturnsInfo(t *testing.T) {
	info := GetInfo()

	assert.Equal(t, Version, info.Version)
	assert.Equal(t, Commit, info.Commit)
	assert.Equal(t, Date, info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS, info.OS)
	assert.Equal(t, runtime.GOARCH, info.Arch)
}

func TestGetInfo_YAMLFieldNames(t *testing.T) {
	// Given: build info rendered as YAML
	data, err := yaml.Marshal(GetInfo())
	require.NoError(t, err)

	// Then: keys use snake_case names
	var parsed map[string]string
	require.NoError(t, yaml.Unmarshal(data, &parsed))
	for _, key := range []string{"version", "commit", "date", "go_version", "os", "arch"} {
		assert.Contains(t, parsed, key)
	}
}

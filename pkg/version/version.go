// Package version provides build and version information for gooselib tools.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Version is the current gooselib version. Set via ldflags at build time:
// -X github.com/garretreichenbach/gooselib/pkg/version.Version=$(VERSION)
var Version = "dev"

// Build information set via ldflags at build time.
var (
	// Commit is the git commit hash.
	Commit = "unknown"

	// Date is the build date in RFC3339 format.
	Date = "unknown"

	// GoVersion is the Go version used to build the binary.
	GoVersion = runtime.Version()
)

// BuildInfo is structured version information.
type BuildInfo struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Date      string `json:"date" yaml:"date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	OS        string `json:"os" yaml:"os"`
	Arch      string `json:"arch" yaml:"arch"`
}

// String returns a one-line version string such as
// "gooselib 1.2.0 (gooselog) a1b2c3d 2026-03-14 go1.25.5 linux/amd64".
// The commit is abbreviated and the build date trimmed to its day.
func String() string {
	info := GetInfo()
	return fmt.Sprintf("gooselib %s (gooselog) %s %s %s %s/%s",
		info.Version, shortCommit(info.Commit), buildDay(info.Date),
		info.GoVersion, info.OS, info.Arch)
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

func buildDay(date string) string {
	if day, _, ok := strings.Cut(date, "T"); ok {
		return day
	}
	return date
}

// Short returns just the version string.
func Short() string {
	return Version
}

// GetInfo returns structured version information.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: GoVersion,
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}

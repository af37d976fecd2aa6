package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/garretreichenbach/gooselib/pkg/logging"
	"github.com/garretreichenbach/gooselib/pkg/version"
)

func TestListCmd(t *testing.T) {
	configDir := isolate(t)
	dir := t.TempDir()
	writeRun(t, dir, "a")
	writeRun(t, dir, "b")

	stdout, _, err := runCLI(t, configDir, "list", "--dir", dir)

	require.NoError(t, err)
	assert.Contains(t, stdout, "INDEX")
	assert.Contains(t, stdout, filepath.Join(dir, "log0.txt"))
	assert.Contains(t, stdout, filepath.Join(dir, "log1.txt"))
	assert.Contains(t, stdout, "0 days")
}

func TestListCmd_Empty(t *testing.T) {
	configDir := isolate(t)
	dir := t.TempDir()

	stdout, _, err := runCLI(t, configDir, "list", "--dir", dir)

	require.NoError(t, err)
	assert.Contains(t, stdout, "No log files")
}

func TestRotateCmd(t *testing.T) {
	// Given: a directory with one previous run
	configDir := isolate(t)
	dir := t.TempDir()
	writeRun(t, dir, "before")

	// When: rotating
	stdout, _, err := runCLI(t, configDir, "rotate", "--dir", dir, "--no-color")

	// Then: the old run moved to log1.txt and log0.txt holds the rotate entry
	require.NoError(t, err)
	old, err := os.ReadFile(logging.LogPath(dir, 1))
	require.NoError(t, err)
	assert.Contains(t, string(old), "before")

	current, err := os.ReadFile(logging.LogPath(dir, 0))
	require.NoError(t, err)
	assert.Contains(t, string(current), "[INFO]: log rotated dir=")
	assert.Contains(t, string(current), "max_logs=10")
	assert.Contains(t, stdout, "[INFO]: log rotated")
}

func TestRotateCmd_ConsoleOff(t *testing.T) {
	configDir := isolate(t)
	t.Setenv("GOOSELIB_CONSOLE", "false")
	dir := t.TempDir()

	stdout, _, err := runCLI(t, configDir, "rotate", "--dir", dir, "-m", "hello")

	require.NoError(t, err)
	assert.Equal(t, "Rotated "+dir+"\n", stdout)
	current, err := os.ReadFile(logging.LogPath(dir, 0))
	require.NoError(t, err)
	assert.Contains(t, string(current), "[INFO]: hello")
}

func TestClearCmd(t *testing.T) {
	// Given: files past the maximum
	configDir := isolate(t)
	dir := t.TempDir()
	for _, n := range []int{0, 3, 10, 12} {
		require.NoError(t, os.WriteFile(logging.LogPath(dir, n), []byte("x"), 0o644))
	}

	// When
	stdout, _, err := runCLI(t, configDir, "clear", "--dir", dir)

	// Then: only indexes >= 10 are removed
	require.NoError(t, err)
	assert.Contains(t, stdout, "Removed "+logging.LogPath(dir, 10))
	assert.Contains(t, stdout, "Removed "+logging.LogPath(dir, 12))
	assert.FileExists(t, logging.LogPath(dir, 0))
	assert.FileExists(t, logging.LogPath(dir, 3))
	assert.NoFileExists(t, logging.LogPath(dir, 10))

	stdout, _, err = runCLI(t, configDir, "clear", "--dir", dir)
	require.NoError(t, err)
	assert.Equal(t, "Nothing to clear\n", stdout)
}

func TestNowCmd_Pattern(t *testing.T) {
	configDir := isolate(t)

	stdout, _, err := runCLI(t, configDir, "now", "--pattern", "yyyy")

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^\d{4} \n$`), stdout)
}

func TestNowCmd_ConfiguredPattern(t *testing.T) {
	configDir := isolate(t)
	t.Setenv("GOOSELIB_TIME_PATTERN", "'year' yyyy")

	stdout, _, err := runCLI(t, configDir, "now")

	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^year \d{4} \n$`), stdout)
}

func TestAgeCmd(t *testing.T) {
	configDir := isolate(t)
	tenDaysAgo := time.Now().Add(-(10*24 + 1) * time.Hour)

	tests := []struct {
		name string
		arg  string
	}{
		{"rfc3339", tenDaysAgo.Format(time.RFC3339)},
		{"millis", strconv.FormatInt(tenDaysAgo.UnixMilli(), 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, _, err := runCLI(t, configDir, "age", tt.arg)
			require.NoError(t, err)
			assert.Equal(t, "10\n", stdout)
		})
	}
}

func TestAgeCmd_Invalid(t *testing.T) {
	configDir := isolate(t)

	_, _, err := runCLI(t, configDir, "age", "yesterday")
	assert.Error(t, err)

	_, _, err = runCLI(t, configDir, "age")
	assert.Error(t, err)
}

func TestParseInstant(t *testing.T) {
	got, err := parseInstant("2026-03-14")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.Local), got)

	got, err = parseInstant("2026-03-14T12:00:00Z")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)))

	got, err = parseInstant("0")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.UnixMilli(0)))
}

func TestFormatSize(t *testing.T) {
	tests := []struct {
		bytes int64
		want  string
	}{
		{0, "0 B"},
		{1023, "1023 B"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.bytes), func(t *testing.T) {
			assert.Equal(t, tt.want, formatSize(tt.bytes))
		})
	}
}

func TestVersionCmd_DefaultOutput(t *testing.T) {
	// Given: a version command
	cmd := newVersionCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{})

	// When: executing without flags
	err := cmd.Execute()

	// Then: it should output the full version string
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "gooselog")
	assert.Contains(t, buf.String(), version.Version)
}

func TestVersionCmd_ShortOutput(t *testing.T) {
	cmd := newVersionCmd()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--short"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, version.Version, strings.TrimSpace(buf.String()))
}

func TestVersionCmd_StructuredOutput(t *testing.T) {
	tests := []struct {
		flag      string
		unmarshal func([]byte, any) error
	}{
		{"--json", json.Unmarshal},
		{"--yaml", yaml.Unmarshal},
	}

	for _, tt := range tests {
		t.Run(tt.flag, func(t *testing.T) {
			cmd := newVersionCmd()
			buf := &bytes.Buffer{}
			cmd.SetOut(buf)
			cmd.SetArgs([]string{tt.flag})

			require.NoError(t, cmd.Execute())

			var info map[string]string
			require.NoError(t, tt.unmarshal(buf.Bytes(), &info))
			assert.Equal(t, version.Version, info["version"])
			assert.Contains(t, info, "go_version")
		})
	}
}

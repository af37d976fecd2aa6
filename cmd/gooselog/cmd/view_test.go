package cmd

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/internal/logview"
)

func TestViewCmd_ShowsLastEntries(t *testing.T) {
	// Given: a run with four entries
	configDir := isolate(t)
	dir := t.TempDir()
	writeRun(t, dir, "one", "two", "three", "four")

	// When: viewing the last two
	stdout, stderr, err := runCLI(t, configDir, "view", "--dir", dir, "-n", "2", "--no-color")

	// Then: only those are printed, in order
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[0], "[INFO]: three"))
	assert.True(t, strings.HasSuffix(lines[1], "[INFO]: four"))
	assert.Contains(t, stderr, "log0.txt")
}

func TestViewCmd_LevelFilter(t *testing.T) {
	configDir := isolate(t)
	dir := t.TempDir()
	writeRun(t, dir, "info entry")

	stdout, _, err := runCLI(t, configDir, "view", "--dir", dir, "--level", "warning", "--no-color")

	require.NoError(t, err)
	assert.NotContains(t, stdout, "info entry")
}

func TestViewCmd_PreviousRunByIndex(t *testing.T) {
	// Given: two runs
	configDir := isolate(t)
	dir := t.TempDir()
	writeRun(t, dir, "first run")
	writeRun(t, dir, "second run")

	// When: viewing index 1
	stdout, _, err := runCLI(t, configDir, "view", "--dir", dir, "--index", "1", "--no-color")

	// Then: the earlier run is shown
	require.NoError(t, err)
	assert.Contains(t, stdout, "first run")
	assert.NotContains(t, stdout, "second run")
}

func TestViewCmd_AllMergesOldestFirst(t *testing.T) {
	configDir := isolate(t)
	dir := t.TempDir()
	writeRun(t, dir, "first run")
	writeRun(t, dir, "second run")

	stdout, _, err := runCLI(t, configDir, "view", "--dir", dir, "--all", "--no-color")

	require.NoError(t, err)
	first := strings.Index(stdout, "first run")
	second := strings.Index(stdout, "second run")
	require.GreaterOrEqual(t, first, 0)
	assert.Greater(t, second, first)
	assert.Contains(t, stdout, "log1.txt")
}

func TestViewCmd_IndexAndAllAreExclusive(t *testing.T) {
	configDir := isolate(t)

	_, _, err := runCLI(t, configDir, "view", "--dir", t.TempDir(), "--index", "1", "--all")

	assert.Error(t, err)
}

func TestViewCmd_InvalidFilter(t *testing.T) {
	configDir := isolate(t)
	dir := t.TempDir()
	writeRun(t, dir, "x")

	_, _, err := runCLI(t, configDir, "view", "--dir", dir, "--filter", "(")

	require.Error(t, err)
	assert.Equal(t, goerrors.ErrCodeInvalidInput, goerrors.GetCode(err))
}

func TestViewCmd_MissingFile(t *testing.T) {
	configDir := isolate(t)

	_, _, err := runCLI(t, configDir, "view", "--dir", t.TempDir(), "--index", "3")

	require.Error(t, err)
	assert.Contains(t, goerrors.FormatForCLI(err), "gooselog list")
}

func TestViewCmd_AllWithEmptyDir(t *testing.T) {
	configDir := isolate(t)

	_, _, err := runCLI(t, configDir, "view", "--dir", t.TempDir(), "--all")

	assert.Error(t, err)
}

func TestPrintFollowed_PrintsBufferedEntriesBeforeError(t *testing.T) {
	// Given: a follower that queued three entries and then failed
	out := &bytes.Buffer{}
	viewer, err := logview.NewViewer(logview.ViewerConfig{NoColor: true}, out)
	require.NoError(t, err)

	entries := make(chan logview.Entry, 3)
	for _, msg := range []string{"one", "two", "three"} {
		entries <- logview.ParseLine("[03/14/2026 - 09:26:53 PDT ] [INFO]: " + msg)
	}
	errCh := make(chan error, 1)
	errCh <- errors.New("watcher closed")

	// When: printing followed entries
	err = printFollowed(context.Background(), out, &bytes.Buffer{}, viewer, entries, errCh)

	// Then: every queued entry is printed and the error is returned
	require.EqualError(t, err, "watcher closed")
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "[INFO]: one"))
	assert.True(t, strings.HasSuffix(lines[2], "[INFO]: three"))
}

func TestPrintFollowed_StopsOnCancel(t *testing.T) {
	viewer, err := logview.NewViewer(logview.ViewerConfig{NoColor: true}, &bytes.Buffer{})
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	errOut := &bytes.Buffer{}

	err = printFollowed(ctx, &bytes.Buffer{}, errOut, viewer, make(chan logview.Entry), make(chan error))

	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "Stopped.")
}

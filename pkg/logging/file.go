package logging

import (
	"fmt"
	"os"
	"path/filepath"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
)

// fileSink is the append-only handle for log0.txt.
// It is not safe for concurrent use; Logger serializes access.
type fileSink struct {
	path          string
	file          *os.File
	immediateSync bool // Sync after each line so a crash loses nothing
}

// createFileSink creates (or truncates) path and opens it for appending.
func createFileSink(path string) (*fileSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, goerrors.New(goerrors.ErrCodeLogDir, "failed to create log directory", err).
			WithDetail("path", filepath.Dir(path))
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, goerrors.New(goerrors.ErrCodeLogDir, "failed to open log file", err).
			WithDetail("path", path)
	}

	return &fileSink{
		path:          path,
		file:          f,
		immediateSync: true,
	}, nil
}

// WriteLine appends line and a newline, syncing when immediateSync is set.
func (s *fileSink) WriteLine(line string) error {
	if _, err := fmt.Fprintln(s.file, line); err != nil {
		return goerrors.IOError("failed to write log line", err).WithDetail("path", s.path)
	}

	if s.immediateSync {
		if err := s.file.Sync(); err != nil {
			return goerrors.IOError("failed to sync log file", err).WithDetail("path", s.path)
		}
	}
	return nil
}

// Close syncs and closes the underlying file.
func (s *fileSink) Close() error {
	syncErr := s.file.Sync()
	if err := s.file.Close(); err != nil {
		return goerrors.IOError("failed to close log file", err).WithDetail("path", s.path)
	}
	if syncErr != nil {
		return goerrors.IOError("failed to sync log file", syncErr).WithDetail("path", s.path)
	}
	return nil
}

package logging

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
)

var logNamePattern = regexp.MustCompile(`^log(\d+)\.txt$`)

// LogFileName returns the file name for index n, e.g. "log3.txt".
func LogFileName(n int) string {
	return fmt.Sprintf("log%d.txt", n)
}

// LogPath returns the path of log file n inside dir.
func LogPath(dir string, n int) string {
	return filepath.Join(dir, LogFileName(n))
}

// ParseLogIndex extracts N from a "log<N>.txt" file name.
// Only canonical names are accepted: "log01.txt" names no index because two
// spellings of one index would collide on rename.
func ParseLogIndex(name string) (int, bool) {
	m := logNamePattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		// Too many digits for an int.
		return 0, false
	}
	if LogFileName(n) != name {
		return 0, false
	}
	return n, true
}

// indexedFile is a conforming log file found in the log directory.
type indexedFile struct {
	path  string
	index int
}

// scanLogFiles lists conforming log files in dir, highest index first.
// Non-conforming regular files are passed to warn and skipped.
func scanLogFiles(dir string, warn func(error)) ([]indexedFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, goerrors.New(goerrors.ErrCodeLogDir, "failed to read log directory", err).
			WithDetail("path", dir)
	}

	var files []indexedFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, ok := ParseLogIndex(e.Name())
		if !ok {
			warn(goerrors.New(goerrors.ErrCodeLogName, "skipping unexpected file in log directory", nil).
				WithDetail("path", filepath.Join(dir, e.Name())))
			continue
		}
		files = append(files, indexedFile{path: filepath.Join(dir, e.Name()), index: n})
	}

	// Highest first so renames never overwrite a file not yet moved.
	sort.Slice(files, func(i, j int) bool {
		return files[i].index > files[j].index
	})

	return files, nil
}

// rotateDir shifts every logN.txt in dir to log(N+1).txt. Files whose new
// index would reach maxLogs-1 are deleted instead. Individual failures are
// collected and rotation continues with the remaining files.
// log0.txt -> log1.txt -> ... -> log(maxLogs-2).txt -> deleted
func rotateDir(dir string, maxLogs int, warn func(error)) error {
	files, err := scanLogFiles(dir, warn)
	if err != nil {
		return err
	}

	var errs []error
	for _, f := range files {
		// Compare before adding so the largest indexes cannot overflow.
		if f.index >= maxLogs-2 {
			if err := os.Remove(f.path); err != nil && !os.IsNotExist(err) {
				errs = append(errs, goerrors.New(goerrors.ErrCodeLogRotate, "failed to delete old log", err).
					WithDetail("path", f.path))
			}
			continue
		}

		if err := os.Rename(f.path, LogPath(dir, f.index+1)); err != nil {
			errs = append(errs, goerrors.New(goerrors.ErrCodeLogRotate, "failed to rotate log", err).
				WithDetail("path", f.path))
		}
	}

	return errors.Join(errs...)
}

// clearExtraLogs deletes conforming files with index >= maxLogs and returns
// the removed paths. log0.txt is never removed.
func clearExtraLogs(dir string, maxLogs int, warn func(error)) ([]string, error) {
	files, err := scanLogFiles(dir, warn)
	if err != nil {
		return nil, err
	}

	var removed []string
	var errs []error
	for _, f := range files {
		if f.index == 0 || f.index < maxLogs {
			continue
		}
		if err := os.Remove(f.path); err != nil {
			if !os.IsNotExist(err) {
				errs = append(errs, goerrors.New(goerrors.ErrCodeLogRotate, "failed to delete extra log", err).
					WithDetail("path", f.path))
			}
			continue
		}
		removed = append(removed, f.path)
	}

	return removed, errors.Join(errs...)
}

// ClearExtraLogs deletes log files in dir whose index is maxLogs or higher.
// It returns the removed paths. Warnings about unexpected files are written
// to w (os.Stderr when nil).
func ClearExtraLogs(dir string, maxLogs int, w io.Writer) ([]string, error) {
	return clearExtraLogs(dir, maxLogs, stderrWarn(w))
}

// stderrWarn returns a warn func that reports one line per error on w.
func stderrWarn(w io.Writer) func(error) {
	if w == nil {
		w = os.Stderr
	}
	return func(err error) {
		_, _ = fmt.Fprintln(w, goerrors.FormatForStderr(err))
	}
}

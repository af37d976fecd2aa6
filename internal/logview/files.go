package logview

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/garretreichenbach/gooselib/pkg/dateutil"
	"github.com/garretreichenbach/gooselib/pkg/logging"
)

// FileInfo describes one log file in a log directory.
type FileInfo struct {
	Index   int
	Path    string
	Size    int64
	ModTime time.Time
	AgeDays int
}

// ListLogFiles returns the conforming log files in dir ordered by index,
// newest (log0.txt) first. Other files are ignored.
func ListLogFiles(dir string) ([]FileInfo, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read log directory %s: %w", dir, err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		n, ok := logging.ParseLogIndex(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Removed between ReadDir and Info.
			continue
		}
		files = append(files, FileInfo{
			Index:   n,
			Path:    filepath.Join(dir, e.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			AgeDays: dateutil.AgeDays(info.ModTime()),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Index < files[j].Index
	})

	return files, nil
}

// ChronologicalPaths returns the paths of files oldest first.
func ChronologicalPaths(files []FileInfo) []string {
	paths := make([]string, 0, len(files))
	for i := len(files) - 1; i >= 0; i-- {
		paths = append(paths, files[i].Path)
	}
	return paths
}

package logview

import (
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/garretreichenbach/gooselib/internal/ui"
	"github.com/garretreichenbach/gooselib/pkg/logging"
)

// ViewerConfig configures the log viewer.
type ViewerConfig struct {
	Level      string         // Minimum level (debug, info, warning, error, critical)
	Pattern    *regexp.Regexp // Filter by pattern on the raw entry text
	NoColor    bool           // Disable colors
	ShowSource bool           // Show the source file name in output
}

// Viewer provides log viewing and filtering capabilities.
type Viewer struct {
	config   ViewerConfig
	minLevel logging.MessageType
	hasLevel bool
	styles   ui.Styles
	out      io.Writer
}

// NewViewer creates a new log viewer writing to out.
// An unknown Level is rejected.
func NewViewer(cfg ViewerConfig, out io.Writer) (*Viewer, error) {
	v := &Viewer{
		config: cfg,
		out:    out,
		styles: ui.NoColorStyles(),
	}

	if cfg.Level != "" {
		level, ok := logging.ParseMessageType(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("unknown level %q (use debug|info|warning|error|critical)", cfg.Level)
		}
		v.minLevel = level
		v.hasLevel = true
	}

	if !cfg.NoColor {
		v.styles = ui.DefaultStyles(out)
	}

	return v, nil
}

// Tail reads the last n matching entries from a log file.
func (v *Viewer) Tail(path string, n int) ([]Entry, error) {
	entries, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	return lastN(v.Filter(entries), n), nil
}

// TailMultiple reads paths in the given order and returns the last n
// matching entries across all of them. Pass older files first for a
// chronological view. Files that cannot be read are skipped.
func (v *Viewer) TailMultiple(paths []string, n int) ([]Entry, error) {
	var all []Entry
	var lastErr error
	read := 0
	for _, path := range paths {
		entries, err := ReadFile(path)
		if err != nil {
			lastErr = err
			continue
		}
		read++
		all = append(all, v.Filter(entries)...)
	}

	if read == 0 && lastErr != nil {
		return nil, lastErr
	}
	return lastN(all, n), nil
}

// Filter returns the entries matching the configured level and pattern.
func (v *Viewer) Filter(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if v.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Matches checks if an entry matches the configured filters.
// Entries without a recognizable header only pass when no level is set.
func (v *Viewer) Matches(e Entry) bool {
	if v.hasLevel {
		if !e.IsValid || e.Level < v.minLevel {
			return false
		}
	}

	if v.config.Pattern != nil && !v.config.Pattern.MatchString(e.Raw()) {
		return false
	}

	return true
}

// FormatEntry formats an entry for display. Valid entries are rendered with
// a colored level tag; others are returned as written.
func (v *Viewer) FormatEntry(e Entry) string {
	if !e.IsValid {
		return e.Raw()
	}

	var sb strings.Builder
	if v.config.ShowSource && e.Source != "" {
		sb.WriteString(v.styles.Dim.Render(fmt.Sprintf("%-9s", e.Source)))
		sb.WriteByte(' ')
	}

	tag := e.Level.Tag()
	prefix := "[" + e.Stamp + " ] " + tag + " "
	sb.WriteString("[" + e.Stamp + " ] ")
	sb.WriteString(v.styles.ForLevel(e.Level.String()).Render(tag))
	sb.WriteByte(' ')
	sb.WriteString(logging.JoinLines(e.Message, len([]rune(prefix))+v.sourceWidth(e)))

	return sb.String()
}

func (v *Viewer) sourceWidth(e Entry) int {
	if v.config.ShowSource && e.Source != "" {
		return max(len(e.Source), 9) + 1
	}
	return 0
}

// Print prints entries to the output.
func (v *Viewer) Print(entries []Entry) {
	for _, e := range entries {
		_, _ = fmt.Fprintln(v.out, v.FormatEntry(e))
	}
}

func lastN(entries []Entry, n int) []Entry {
	if n > 0 && len(entries) > n {
		return entries[len(entries)-n:]
	}
	return entries
}

func baseName(path string) string {
	return filepath.Base(path)
}

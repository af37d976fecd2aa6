package logview

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/garretreichenbach/gooselib/pkg/logging"
)

// maxLineSize bounds a single log line when scanning.
const maxLineSize = 1024 * 1024

// headerPattern matches "[<stamp> ] [LEVEL]: message".
var headerPattern = regexp.MustCompile(`^\[(.*?) ?\] \[(DEBUG|INFO|WARNING|ERROR|CRITICAL)\]: (.*)$`)

// Entry is one logged message, possibly spanning several lines.
type Entry struct {
	Stamp   string              // Timestamp text as written, without brackets
	Level   logging.MessageType // Parsed level; meaningless when !IsValid
	Message string              // Message with continuation indentation removed
	Lines   []string            // Raw lines as they appear in the file
	Source  string              // File name the entry came from, e.g. "log0.txt"
	IsValid bool                // Whether the first line had a recognizable header

	indent int // Width of the header prefix, used to strip continuation lines
}

// Raw returns the entry exactly as written.
func (e Entry) Raw() string {
	return strings.Join(e.Lines, "\n")
}

// ParseLine parses a single header line. Lines without a gooselib header
// produce an invalid entry holding the raw text.
func ParseLine(line string) Entry {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{Message: line, Lines: []string{line}}
	}

	level, _ := logging.ParseMessageType(m[2])
	prefixLen := utf8.RuneCountInString(line) - utf8.RuneCountInString(m[3])

	return Entry{
		Stamp:   m[1],
		Level:   level,
		Message: m[3],
		Lines:   []string{line},
		IsValid: true,
		indent:  prefixLen,
	}
}

// continues reports whether line is a continuation of e.
func (e *Entry) continues(line string) bool {
	if !e.IsValid || e.indent == 0 {
		return false
	}
	return strings.HasPrefix(line, strings.Repeat(" ", e.indent))
}

// appendLine adds a continuation line to e.
func (e *Entry) appendLine(line string) {
	e.Lines = append(e.Lines, line)
	e.Message += "\n" + strings.TrimPrefix(line, strings.Repeat(" ", e.indent))
}

// entryBuilder groups lines into entries.
type entryBuilder struct {
	source  string
	pending *Entry
}

// add consumes one line and returns a finished entry when line starts a new one.
func (b *entryBuilder) add(line string) (Entry, bool) {
	if b.pending != nil && b.pending.continues(line) {
		b.pending.appendLine(line)
		return Entry{}, false
	}

	e := ParseLine(line)
	e.Source = b.source
	prev := b.pending
	b.pending = &e
	if prev == nil {
		return Entry{}, false
	}
	return *prev, true
}

// flush returns the entry still being built, if any.
func (b *entryBuilder) flush() (Entry, bool) {
	if b.pending == nil {
		return Entry{}, false
	}
	e := *b.pending
	b.pending = nil
	return e, true
}

// ReadEntries parses all entries from r. source labels each entry.
func ReadEntries(r io.Reader, source string) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)

	b := &entryBuilder{source: source}
	var entries []Entry
	for scanner.Scan() {
		if e, ok := b.add(scanner.Text()); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read log entries: %w", err)
	}
	if e, ok := b.flush(); ok {
		entries = append(entries, e)
	}

	return entries, nil
}

// ReadFile parses all entries of the log file at path.
func ReadFile(path string) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReadEntries(f, baseName(path))
}

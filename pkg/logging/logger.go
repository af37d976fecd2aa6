package logging

import (
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/internal/ui"
	"github.com/garretreichenbach/gooselib/pkg/dateutil"
)

var (
	// ErrNotInitialized is reported when a Logger without an open log file
	// is used, e.g. the package-level functions before Init.
	ErrNotInitialized = goerrors.New(goerrors.ErrCodeNotInitialized,
		"logger not initialized; call logging.New or logging.Init first", nil)

	// ErrClosed is reported when a Logger is used after Close.
	ErrClosed = goerrors.New(goerrors.ErrCodeLoggerClosed, "logger closed", nil)
)

// Option customizes a Logger beyond Config.
type Option func(*Logger)

// WithClock sets the time source for line timestamps.
func WithClock(now func() time.Time) Option {
	return func(l *Logger) {
		l.now = now
	}
}

// WithExitFunc replaces os.Exit for the Critical path.
func WithExitFunc(exit func(code int)) Option {
	return func(l *Logger) {
		l.exit = exit
	}
}

// Logger writes leveled lines to the console and to log0.txt.
// All methods are safe for concurrent use. The zero value prints to the
// console and reports ErrNotInitialized for every file write.
type Logger struct {
	mu     sync.Mutex
	cfg    Config
	file   *fileSink
	closed bool
	color  bool
	styles ui.Styles

	now  func() time.Time
	exit func(code int)
}

// New initializes the log directory and returns a Logger writing to a fresh
// log0.txt. Existing files are rotated first: logN.txt becomes log(N+1).txt
// and files that would reach index MaxLogs-1 are deleted. Extra files with
// index MaxLogs or higher are removed afterwards.
//
// Failure to create the directory or log0.txt is returned. Failures to move
// individual old files are reported on Stderr and do not stop initialization.
//
// New should be called once per process run; each call shifts history.
func New(cfg Config, opts ...Option) (*Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	l := &Logger{cfg: cfg}
	for _, opt := range opts {
		opt(l)
	}
	l.color = ui.ShouldColor(ui.ColorMode(cfg.Color), l.stdout())
	if l.color {
		l.styles = ui.DefaultStyles(l.stdout())
	}

	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, goerrors.New(goerrors.ErrCodeLogDir, "failed to create log directory", err).
			WithDetail("path", cfg.Dir).
			WithSuggestion("Choose a writable log directory")
	}

	if err := rotateDir(cfg.Dir, cfg.MaxLogs, l.report); err != nil {
		l.report(err)
	}

	sink, err := createFileSink(LogPath(cfg.Dir, 0))
	if err != nil {
		return nil, err
	}
	l.file = sink

	if _, err := clearExtraLogs(cfg.Dir, cfg.MaxLogs, l.report); err != nil {
		l.report(err)
	}

	return l, nil
}

// Path returns the path of the active log file, or "" before initialization.
func (l *Logger) Path() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return ""
	}
	return l.file.path
}

// Config returns the configuration the logger was created with.
func (l *Logger) Config() Config {
	return l.cfg
}

// Debug logs a debug message.
func (l *Logger) Debug(message string) {
	l.Log(LevelDebug, message)
}

// Info logs an informational message.
func (l *Logger) Info(message string) {
	l.Log(LevelInfo, message)
}

// Warning logs a warning. A non-nil err is appended after ":\n".
func (l *Logger) Warning(message string, err error) {
	l.Log(LevelWarning, withCause(message, err))
}

// Exception prints err and the current goroutine's stack to Stderr and logs
// message with err's text at Error level. Nothing is printed when Error is
// below MinLevel.
func (l *Logger) Exception(message string, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if LevelError < l.cfg.MinLevel {
		return
	}
	l.printTrace(err)
	l.write(LevelError, withCause(message, err))
}

// Critical logs like Exception at Critical level, closes the log file and
// terminates the process with exit status 1.
func (l *Logger) Critical(message string, err error) {
	l.mu.Lock()
	l.printTrace(err)
	l.write(LevelCritical, withCause(message, err))
	if err := l.closeLocked(); err != nil {
		l.report(err)
	}
	l.mu.Unlock()

	l.exitFunc()(1)
}

// Log writes message at level. It never exits the process, including for
// LevelCritical; use Critical for the fail-fast path.
func (l *Logger) Log(level MessageType, message string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.write(level, message)
}

// Close syncs and closes the log file. Later calls are no-ops. Messages
// logged after Close still reach the console and report ErrClosed.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.closeLocked()
}

func (l *Logger) closeLocked() error {
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.closed = true
	return err
}

// write formats and emits one entry. Callers hold l.mu.
func (l *Logger) write(level MessageType, message string) {
	if level < l.cfg.MinLevel {
		return
	}

	stamp := "[" + dateutil.FormatAt(l.clock()(), l.cfg.TimePattern) + "] "
	prefix := stamp + level.Prefix()
	body := JoinLines(message, utf8.RuneCountInString(prefix))

	if l.consoleEnabled() {
		tag := level.Tag()
		if l.color {
			tag = l.styles.ForLevel(level.String()).Render(tag)
		}
		if _, err := fmt.Fprintln(l.stdout(), stamp+tag+" "+body); err != nil {
			l.report(goerrors.IOError("failed to write console line", err))
		}
	}

	if l.file == nil {
		if l.closed {
			l.report(ErrClosed)
		} else {
			l.report(ErrNotInitialized)
		}
		return
	}

	if err := l.file.WriteLine(prefix + body); err != nil {
		l.report(err)
	}
}

// printTrace writes err's detail and the caller's stack to Stderr.
func (l *Logger) printTrace(err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintf(l.stderr(), "%+v\n%s", err, debug.Stack())
}

// report writes a one-line failure description to Stderr.
func (l *Logger) report(err error) {
	_, _ = fmt.Fprintln(l.stderr(), goerrors.FormatForStderr(err))
}

func (l *Logger) consoleEnabled() bool {
	// A zero Logger has no config; print so messages are not lost.
	return l.cfg.Console || l.cfg.Dir == ""
}

func (l *Logger) stdout() io.Writer {
	if l.cfg.Stdout != nil {
		return l.cfg.Stdout
	}
	return os.Stdout
}

func (l *Logger) stderr() io.Writer {
	if l.cfg.Stderr != nil {
		return l.cfg.Stderr
	}
	return os.Stderr
}

func (l *Logger) clock() func() time.Time {
	if l.now != nil {
		return l.now
	}
	return time.Now
}

func (l *Logger) exitFunc() func(int) {
	if l.exit != nil {
		return l.exit
	}
	return os.Exit
}

// withCause appends err's message after ":\n" when err is non-nil.
func withCause(message string, err error) string {
	if err == nil {
		return message
	}
	return message + ":\n" + err.Error()
}

// JoinLines lays out a possibly multi-line message for a line whose prefix is
// indent runes wide. Continuation lines start on a new line indented by indent
// spaces so they align with the first line's text. Trailing newlines are
// dropped and CRLF endings are normalized.
func JoinLines(message string, indent int) string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.TrimRight(message, "\n")
	if !strings.Contains(message, "\n") {
		return message
	}

	lines := strings.Split(message, "\n")
	pad := strings.Repeat(" ", indent)

	var sb strings.Builder
	sb.WriteString(lines[0])
	for _, line := range lines[1:] {
		sb.WriteByte('\n')
		sb.WriteString(pad)
		sb.WriteString(line)
	}
	return sb.String()
}

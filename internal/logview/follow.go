package logview

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

const (
	// pollInterval is used when fsnotify is unavailable.
	pollInterval = 100 * time.Millisecond

	// rescanInterval is the safety-net poll while fsnotify is active.
	rescanInterval = time.Second
)

// Follow watches a log file for new entries and sends them to the channel.
// Reading starts at the current end of the file. When the file is replaced,
// e.g. a new log0.txt after rotation, the new file is read from its start.
// Blocks until context is cancelled.
func (v *Viewer) Follow(ctx context.Context, path string, entries chan<- Entry) error {
	f, err := newFollower(v, path)
	if err != nil {
		return err
	}
	defer f.close()

	return f.run(ctx, entries)
}

// FollowMultiple follows each path concurrently and sends entries from all of
// them to the channel. It returns the first follower error, or nil once the
// context is cancelled.
func (v *Viewer) FollowMultiple(ctx context.Context, paths []string, entries chan<- Entry) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			return v.Follow(gctx, path, entries)
		})
	}
	return g.Wait()
}

// follower tails one file, carrying partial lines between reads.
type follower struct {
	v       *Viewer
	path    string
	file    *os.File
	reader  *bufio.Reader
	partial string
	builder entryBuilder
}

func newFollower(v *Viewer, path string) (*follower, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	if _, err := file.Seek(0, io.SeekEnd); err != nil {
		_ = file.Close()
		return nil, fmt.Errorf("failed to seek to end: %w", err)
	}

	return &follower{
		v:       v,
		path:    filepath.Clean(path),
		file:    file,
		reader:  bufio.NewReader(file),
		builder: entryBuilder{source: filepath.Base(path)},
	}, nil
}

func (f *follower) close() {
	if f.file != nil {
		_ = f.file.Close()
	}
}

func (f *follower) run(ctx context.Context, entries chan<- Entry) error {
	var events <-chan fsnotify.Event
	var watchErrs <-chan error
	interval := pollInterval

	if w, err := fsnotify.NewWatcher(); err == nil {
		// Watch the directory so a recreated file is seen too.
		if err := w.Add(filepath.Dir(f.path)); err == nil {
			events, watchErrs = w.Events, w.Errors
			interval = rescanInterval
		}
		defer func() { _ = w.Close() }()
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	fallback := func() {
		events, watchErrs = nil, nil
		ticker.Reset(pollInterval)
	}

	for {
		var err error
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				fallback()
				continue
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			err = f.poll(ctx, entries)
		case <-watchErrs:
			fallback()
			continue
		case <-ticker.C:
			err = f.poll(ctx, entries)
		}

		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}

// poll reads whatever is new and switches to a replacement file if the path
// now refers to a different file.
func (f *follower) poll(ctx context.Context, entries chan<- Entry) error {
	if err := f.drain(ctx, entries); err != nil {
		return err
	}

	if !f.replaced() {
		return nil
	}

	file, err := os.Open(f.path)
	if err != nil {
		// Not recreated yet; try again on the next event.
		return nil
	}
	if err := f.flush(ctx, entries); err != nil {
		_ = file.Close()
		return err
	}
	_ = f.file.Close()
	f.file = file
	f.reader.Reset(file)
	f.partial = ""

	return f.drain(ctx, entries)
}

// drain reads all complete lines currently available.
func (f *follower) drain(ctx context.Context, entries chan<- Entry) error {
	for {
		line, err := f.reader.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				return fmt.Errorf("failed to read %s: %w", f.path, err)
			}
			f.partial += line
			break
		}

		line = strings.TrimRight(f.partial+line, "\r\n")
		f.partial = ""
		if line == "" {
			continue
		}

		if e, ok := f.builder.add(line); ok {
			if err := f.send(ctx, entries, e); err != nil {
				return err
			}
		}
	}

	// A logged entry is written in one piece, so once the reader is caught up
	// on a line boundary the pending entry is complete.
	if f.partial == "" {
		return f.flush(ctx, entries)
	}
	return nil
}

func (f *follower) flush(ctx context.Context, entries chan<- Entry) error {
	if e, ok := f.builder.flush(); ok {
		return f.send(ctx, entries, e)
	}
	return nil
}

func (f *follower) send(ctx context.Context, entries chan<- Entry, e Entry) error {
	if !f.v.Matches(e) {
		return nil
	}
	select {
	case entries <- e:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// replaced reports whether f.path now names a different file than the open one.
func (f *follower) replaced() bool {
	onDisk, err := os.Stat(f.path)
	if err != nil {
		return false
	}
	open, err := f.file.Stat()
	if err != nil {
		return true
	}
	return !os.SameFile(onDisk, open)
}

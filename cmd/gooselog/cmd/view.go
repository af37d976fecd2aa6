package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"regexp"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/internal/logview"
	"github.com/garretreichenbach/gooselib/pkg/logging"
)

type viewOptions struct {
	lines  int
	follow bool
	level  string
	filter string
	index  int
	all    bool
}

func newViewCmd(root *rootOptions) *cobra.Command {
	var opts viewOptions

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Show recent log entries",
		Long: `Show the last entries of a log file. Multi-line entries are kept together
and count as one entry.

By default the current run (log0.txt) is shown. Use --index to pick an older
run or --all to merge every file oldest first.`,
		Example: `  gooselog view                   # Last 50 entries of log0.txt
  gooselog view -n 200 --level warning
  gooselog view --index 1         # Previous run
  gooselog view --all --filter "timeout"
  gooselog view -f                # Follow new entries`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("lines") {
				opts.lines = cfg.View.Lines
			}
			if !cmd.Flags().Changed("level") {
				opts.level = cfg.View.Level
			}
			return runView(cmd, cfg.Logging.Dir, colorEnabled(cfg, cmd.OutOrStdout()), opts)
		},
	}

	cmd.Flags().IntVarP(&opts.lines, "lines", "n", 50, "Number of entries to show (0 for all)")
	cmd.Flags().BoolVarP(&opts.follow, "follow", "f", false, "Follow log output (like tail -f)")
	cmd.Flags().StringVar(&opts.level, "level", "", "Minimum level (debug|info|warning|error|critical)")
	cmd.Flags().StringVar(&opts.filter, "filter", "", "Filter by pattern (regex)")
	cmd.Flags().IntVar(&opts.index, "index", 0, "Log file index (0 is the current run)")
	cmd.Flags().BoolVar(&opts.all, "all", false, "Read all log files, oldest first")
	cmd.MarkFlagsMutuallyExclusive("index", "all")

	return cmd
}

func runView(cmd *cobra.Command, dir string, color bool, opts viewOptions) error {
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	if opts.lines < 0 {
		return goerrors.ValidationError(fmt.Sprintf("--lines must be non-negative, got %d", opts.lines), nil)
	}
	if opts.index < 0 {
		return goerrors.ValidationError(fmt.Sprintf("--index must be non-negative, got %d", opts.index), nil)
	}

	var pattern *regexp.Regexp
	if opts.filter != "" {
		var err error
		pattern, err = regexp.Compile(opts.filter)
		if err != nil {
			return goerrors.ValidationError("invalid filter pattern", err)
		}
	}

	viewer, err := logview.NewViewer(logview.ViewerConfig{
		Level:      opts.level,
		Pattern:    pattern,
		NoColor:    !color,
		ShowSource: opts.all,
	}, out)
	if err != nil {
		return goerrors.ValidationError("invalid --level", err)
	}

	paths, err := viewPaths(dir, opts)
	if err != nil {
		return err
	}

	if len(paths) == 1 {
		_, _ = fmt.Fprintf(errOut, "Log file: %s\n", paths[0])
	} else {
		_, _ = fmt.Fprintf(errOut, "Log files: %s\n", strings.Join(paths, ", "))
	}
	_, _ = fmt.Fprintln(errOut, "---")

	var entries []logview.Entry
	if len(paths) == 1 {
		entries, err = viewer.Tail(paths[0], opts.lines)
	} else {
		entries, err = viewer.TailMultiple(paths, opts.lines)
	}
	if err != nil {
		return goerrors.IOError("failed to read log", err).
			WithSuggestion("Run 'gooselog list' to see available log files")
	}
	viewer.Print(entries)

	if !opts.follow {
		return nil
	}

	_, _ = fmt.Fprintln(errOut, "Following... (Ctrl+C to stop)")
	return runFollow(cmd.Context(), cmd, viewer, paths)
}

// viewPaths resolves the files to read, oldest first.
func viewPaths(dir string, opts viewOptions) ([]string, error) {
	if !opts.all {
		return []string{logging.LogPath(dir, opts.index)}, nil
	}

	files, err := logview.ListLogFiles(dir)
	if err != nil {
		return nil, goerrors.IOError("failed to list log files", err).WithDetail("path", dir)
	}
	if len(files) == 0 {
		return nil, goerrors.IOError("no log files found", nil).
			WithDetail("path", dir).
			WithSuggestion("Check --dir or GOOSELIB_LOG_DIR")
	}
	return logview.ChronologicalPaths(files), nil
}

func runFollow(ctx context.Context, cmd *cobra.Command, viewer *logview.Viewer, paths []string) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	entries := make(chan logview.Entry, 100)
	errCh := make(chan error, 1)

	go func() {
		if len(paths) == 1 {
			errCh <- viewer.Follow(ctx, paths[0], entries)
			return
		}
		errCh <- viewer.FollowMultiple(ctx, paths, entries)
	}()

	return printFollowed(ctx, cmd.OutOrStdout(), cmd.ErrOrStderr(), viewer, entries, errCh)
}

// printFollowed prints entries until the follower stops or ctx is done.
// Entries already buffered when the follower stops are printed before its
// error is returned.
func printFollowed(ctx context.Context, out, errOut io.Writer, viewer *logview.Viewer,
	entries <-chan logview.Entry, errCh <-chan error) error {
	for {
		select {
		case entry := <-entries:
			_, _ = fmt.Fprintln(out, viewer.FormatEntry(entry))
		case err := <-errCh:
			for {
				select {
				case entry := <-entries:
					_, _ = fmt.Fprintln(out, viewer.FormatEntry(entry))
				default:
					return err
				}
			}
		case <-ctx.Done():
			_, _ = fmt.Fprintln(errOut, "\n---")
			_, _ = fmt.Fprintln(errOut, "Stopped.")
			return nil
		}
	}
}

package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/internal/logview"
	"github.com/garretreichenbach/gooselib/pkg/dateutil"
)

func newListCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List log files with size and age",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			files, err := logview.ListLogFiles(cfg.Logging.Dir)
			if err != nil {
				return goerrors.IOError("failed to list log files", err).
					WithDetail("path", cfg.Logging.Dir)
			}

			out := cmd.OutOrStdout()
			if len(files) == 0 {
				_, _ = fmt.Fprintf(out, "No log files in %s\n", cfg.Logging.Dir)
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, "INDEX\tFILE\tSIZE\tMODIFIED\tAGE")
			_, _ = fmt.Fprintln(w, "-----\t----\t----\t--------\t---")
			for _, f := range files {
				_, _ = fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
					f.Index,
					f.Path,
					formatSize(f.Size),
					dateutil.Format(f.ModTime, cfg.Logging.TimePattern),
					formatAge(f.AgeDays),
				)
			}
			return w.Flush()
		},
	}
}

func formatAge(days int) string {
	if days == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", days)
}

// formatSize formats a byte count in human-readable form.
func formatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

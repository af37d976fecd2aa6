package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garretreichenbach/gooselib/pkg/logging"
)

func newClearCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete log files beyond the configured maximum",
		Long: `Delete every logN.txt whose index is max_logs or higher. log0.txt is
never deleted. Files with other names are left alone.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			removed, err := logging.ClearExtraLogs(cfg.Logging.Dir, cfg.Logging.MaxLogs, cmd.ErrOrStderr())
			out := cmd.OutOrStdout()
			for _, path := range removed {
				_, _ = fmt.Fprintf(out, "Removed %s\n", path)
			}
			if len(removed) == 0 && err == nil {
				_, _ = fmt.Fprintln(out, "Nothing to clear")
			}
			return err
		},
	}
}

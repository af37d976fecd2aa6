package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garretreichenbach/gooselib/pkg/logging"
)

func newRotateCmd(root *rootOptions) *cobra.Command {
	var message string

	cmd := &cobra.Command{
		Use:   "rotate",
		Short: "Rotate log files and start a fresh log0.txt",
		Long: `Run the same initialization a gooselib program performs at startup:
shift logN.txt to log(N+1).txt, drop the oldest, create an empty log0.txt and
remove extra files beyond the configured maximum. A single info entry is
written to the new log0.txt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			lcfg := cfg.LoggerConfig()
			lcfg.Stdout = cmd.OutOrStdout()
			lcfg.Stderr = cmd.ErrOrStderr()

			l, err := logging.New(lcfg)
			if err != nil {
				return err
			}
			defer func() { _ = l.Close() }()

			l.Slog().Info(message, "dir", lcfg.Dir, "max_logs", lcfg.MaxLogs)

			if !lcfg.Console {
				_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Rotated %s\n", lcfg.Dir)
			}
			return l.Close()
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "log rotated", "Message for the first entry")

	return cmd
}

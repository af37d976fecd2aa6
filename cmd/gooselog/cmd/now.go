package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/garretreichenbach/gooselib/pkg/dateutil"
)

func newNowCmd(root *rootOptions) *cobra.Command {
	var pattern string

	cmd := &cobra.Command{
		Use:   "now",
		Short: "Print the current time as a log timestamp",
		Long: `Print the current local time rendered with a Java-style date pattern,
as used for log line prefixes. Without --pattern the configured
time_pattern is used.`,
		Example: `  gooselog now
  gooselog now --pattern "yyyy-MM-dd'T'HH:mm:ss.SSSXXX"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("pattern") {
				cfg, err := root.load()
				if err != nil {
					return err
				}
				pattern = cfg.Logging.TimePattern
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), dateutil.FormatNow(pattern))
			return err
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "Date pattern, e.g. \"MM/dd/yyyy HH:mm\"")

	return cmd
}

package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/pkg/dateutil"
)

func newAgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "age <time>",
		Short: "Print the number of whole days between a time and now",
		Long: `Print the absolute number of whole days between the given time and now.
The time may be RFC3339, a local date (YYYY-MM-DD) or Unix milliseconds.`,
		Example: `  gooselog age 2024-01-31
  gooselog age 2024-01-31T12:00:00Z
  gooselog age 1706702400000`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := parseInstant(args[0])
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), dateutil.AgeDays(t))
			return err
		},
	}
}

// parseInstant accepts RFC3339, YYYY-MM-DD in local time, or Unix milliseconds.
func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation(time.DateOnly, s, time.Local); err == nil {
		return t, nil
	}
	if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.UnixMilli(ms), nil
	}
	return time.Time{}, goerrors.ValidationError("unrecognized time "+strconv.Quote(s), nil).
		WithSuggestion("Use RFC3339, YYYY-MM-DD or Unix milliseconds")
}

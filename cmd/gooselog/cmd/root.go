// Package cmd provides the CLI commands for gooselog.
package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/garretreichenbach/gooselib/internal/config"
	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
	"github.com/garretreichenbach/gooselib/internal/ui"
	"github.com/garretreichenbach/gooselib/pkg/version"
)

// rootOptions holds the persistent flags shared by all subcommands.
type rootOptions struct {
	dir       string
	configDir string
	noColor   bool
}

// NewRootCmd creates the root command for the gooselog CLI.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "gooselog",
		Short: "Inspect and manage gooselib log directories",
		Long: `gooselog views, lists and maintains the rotating log files written by
gooselib (log0.txt is the current run, log1.txt the previous one, and so on).

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/gooselib/config.yaml)
  3. Project config (.gooselib.yaml in --config-dir)
  4. Environment variables (GOOSELIB_*)
  5. Command-line flags`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.SetVersionTemplate("gooselog version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&opts.dir, "dir", "", "Log directory (default from config, ./logs)")
	cmd.PersistentFlags().StringVar(&opts.configDir, "config-dir", ".", "Directory searched for .gooselib.yaml")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable colored output")

	cmd.AddCommand(newViewCmd(opts))
	cmd.AddCommand(newListCmd(opts))
	cmd.AddCommand(newRotateCmd(opts))
	cmd.AddCommand(newClearCmd(opts))
	cmd.AddCommand(newNowCmd(opts))
	cmd.AddCommand(newAgeCmd())
	cmd.AddCommand(newConfigCmd(opts))
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().ExecuteContext(context.Background())
}

// Exit codes returned by the gooselog binary.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2 // invalid flags, arguments or configuration
	ExitFatal   = 3 // the log directory itself is unusable
)

// ExitCode maps a command error to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if goerrors.IsFatal(err) {
		return ExitFatal
	}
	switch goerrors.GetCategory(err) {
	case goerrors.CategoryConfig, goerrors.CategoryValidation:
		return ExitUsage
	default:
		return ExitFailure
	}
}

// load resolves the effective configuration, applying flag overrides last.
func (o *rootOptions) load() (*config.Config, error) {
	cfg, err := config.Load(o.configDir)
	if err != nil {
		return nil, err
	}

	if o.dir != "" {
		cfg.Logging.Dir = o.dir
	}
	if o.noColor {
		cfg.Logging.Color = string(ui.ColorNever)
	}

	return cfg, nil
}

// colorEnabled reports whether output to w should be styled.
func colorEnabled(cfg *config.Config, w io.Writer) bool {
	mode, ok := ui.ParseColorMode(cfg.Logging.Color)
	if !ok {
		return false
	}
	return ui.ShouldColor(mode, w)
}

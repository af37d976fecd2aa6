package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/garretreichenbach/gooselib/internal/config"
	goerrors "github.com/garretreichenbach/gooselib/internal/errors"
)

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage gooselog configuration",
		Long: `Manage the configuration read by gooselog.

Configuration precedence (lowest to highest):
  1. Hardcoded defaults
  2. User config (~/.config/gooselib/config.yaml)
  3. Project config (.gooselib.yaml in --config-dir)
  4. Environment variables (GOOSELIB_*)`,
		Example: `  # Create user config with defaults
  gooselog config init

  # Create .gooselib.yaml in the current directory
  gooselog config init --project

  # Show effective configuration
  gooselog config show`,
	}

	cmd.AddCommand(newConfigInitCmd(root))
	cmd.AddCommand(newConfigShowCmd(root))
	cmd.AddCommand(newConfigPathCmd())

	return cmd
}

func newConfigInitCmd(root *rootOptions) *cobra.Command {
	var force bool
	var project bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a configuration file with default values",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path := config.GetUserConfigPath()
			if project {
				path = filepath.Join(root.configDir, ".gooselib.yaml")
			}

			if _, err := os.Stat(path); err == nil && !force {
				return goerrors.ConfigError("configuration already exists", nil).
					WithDetail("path", path).
					WithSuggestion("Use --force to overwrite it")
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return goerrors.IOError("failed to create config directory", err).
					WithDetail("path", filepath.Dir(path))
			}
			if err := config.NewConfig().WriteYAML(path); err != nil {
				return goerrors.IOError("failed to write configuration", err).
					WithDetail("path", path)
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Created %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&project, "project", false, "Write .gooselib.yaml in --config-dir instead of the user config")

	return cmd
}

func newConfigShowCmd(root *rootOptions) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.load()
			if err != nil {
				return err
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(cfg)
			}

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(cfg); err != nil {
				return err
			}
			return enc.Close()
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}

func newConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print user config file path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), config.GetUserConfigPath())
			return err
		},
	}
}

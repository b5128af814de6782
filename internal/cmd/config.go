// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conceptlab/cemctl/internal/config"
	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/output"
)

// NewConfigCmd creates the config command group.
func NewConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
		Long:  `Configuration management for the cemctl CLI.`,
	}

	// Add subcommands
	cmd.AddCommand(NewConfigInitCmd())
	cmd.AddCommand(NewConfigVetCmd())
	cmd.AddCommand(NewConfigPathCmd())

	return cmd
}

// NewConfigPathCmd creates the config path command.
func NewConfigPathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the resolved config file path",
		Long: `Print the resolved config file path.

The path is resolved using precedence:
  --config flag > CEMCTL_CONFIG env > ~/.cemctl/config.yaml`,
		RunE: runConfigPath,
	}
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	path := configFlag
	if path == "" {
		resolved, err := config.GetConfigFile()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
		}
		path = resolved
	}

	output.Println(path)
	return nil
}

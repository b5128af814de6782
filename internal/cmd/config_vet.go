// Package cmd provides CLI command implementations.
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/conceptlab/cemctl/internal/config"
	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/output"
)

// NewConfigVetCmd creates the config vet command.
func NewConfigVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet",
		Short: "Validate configuration",
		Long: `Validate the cemctl configuration file.

Checks performed:
  1. Config file exists at resolved path
  2. Config file is syntactically valid YAML
  3. Field values pass validation (formats, paths)

The config path is resolved using precedence:
  --config flag > CEMCTL_CONFIG env > ~/.cemctl/config.yaml

Examples:
  # Validate default configuration
  cemctl config vet

  # Validate custom config path
  cemctl config vet --config /path/to/config.yaml`,
		RunE: runConfigVet,
	}

	return cmd
}

func runConfigVet(cmd *cobra.Command, args []string) error {
	configPath := configFlag
	if configPath == "" {
		resolved, err := config.GetConfigFile()
		if err != nil {
			return oerrors.Wrap(oerrors.ErrNotFound, "could not resolve config path")
		}
		configPath = resolved
	}

	output.Debug("validating config", "path", configPath)

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &oerrors.DetailError{
			Type:     "not found",
			Message:  "configuration file not found",
			Location: configPath,
			Hint:     "Run 'cemctl config init' to create default configuration",
			Cause:    oerrors.ErrNotFound,
		}
	}

	if err := config.ValidateFile(configPath); err != nil {
		return err
	}

	output.Println("Configuration is valid: " + configPath)
	return nil
}

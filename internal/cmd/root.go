// Package cmd provides CLI command implementations.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/conceptlab/cemctl/internal/config"
	"github.com/conceptlab/cemctl/internal/output"
)

var (
	// Global flags
	configFlag       string
	outputFormatFlag string
	verboseFlag      bool
	timestampsFlag   bool

	// Resolved tool configuration (loaded during PersistentPreRunE)
	toolConfig *config.Config
)

// NewRootCmd creates the root command for the cemctl CLI.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "cemctl",
		Short:         "Concept embedding experiment CLI",
		Long:          `cemctl manages concept embedding experiment configurations: validation, run expansion, dataset geometry, and formatting.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeGlobals(cmd)
		},
	}

	// Add global flags
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to config file (env: CEMCTL_CONFIG)")
	rootCmd.PersistentFlags().StringVarP(&outputFormatFlag, "output", "o", "", "Output format: yaml, json, table")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVar(&timestampsFlag, "timestamps", false, "Show timestamps in log output")

	// Add subcommands
	rootCmd.AddCommand(NewVetCmd())
	rootCmd.AddCommand(NewRunsCmd())
	rootCmd.AddCommand(NewExpandCmd())
	rootCmd.AddCommand(NewGeometryCmd())
	rootCmd.AddCommand(NewFmtCmd())
	rootCmd.AddCommand(NewDiffCmd())
	rootCmd.AddCommand(NewInitCmd())
	rootCmd.AddCommand(NewConfigCmd())
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// initializeGlobals sets up logging and loads the tool configuration.
func initializeGlobals(cmd *cobra.Command) error {
	loaded, err := config.NewLoader().LoadWithDefaults(configFlag)
	if err != nil {
		output.Debug("config load error", "error", err)
		// Commands that don't need the tool config still work.
		loaded = config.DefaultConfig()
	}
	toolConfig = loaded

	// Timestamps precedence: flag (if explicitly set) > config > default (false)
	logCfg := output.LogConfig{
		Verbose: verboseFlag,
	}
	if cmd.Flags().Changed("timestamps") {
		logCfg.Timestamps = output.BoolPtr(timestampsFlag)
	} else if toolConfig.Log.Timestamps != nil {
		logCfg.Timestamps = toolConfig.Log.Timestamps
	}

	output.SetupLogging(logCfg)

	if verboseFlag {
		output.Debug("initializing CLI",
			"config", configFlag,
			"output", GetOutputFormat().String(),
			"experimentsDir", toolConfig.ExperimentsDir,
			"outDir", toolConfig.OutDir,
		)
	}

	return nil
}

// GetToolConfig returns the loaded tool configuration.
func GetToolConfig() *config.Config {
	if toolConfig == nil {
		return config.DefaultConfig()
	}
	return toolConfig
}

// GetOutputFormat returns the resolved output format.
// Precedence: --output flag > config > yaml.
func GetOutputFormat() output.Format {
	if outputFormatFlag != "" {
		return output.ParseFormat(outputFormatFlag)
	}
	return output.ParseFormat(GetToolConfig().Output)
}

package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conceptlab/cemctl/internal/config"
	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/experiment"
	"github.com/conceptlab/cemctl/internal/output"
)

// Expand command flags
var (
	expandOutDirFlag string
	expandSoftFlag   bool
	expandRunFlag    string
)

// NewExpandCmd creates the expand command.
func NewExpandCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expand <file>",
		Short: "Expand an experiment into concrete run configurations",
		Long: `Expand an experiment file into its concrete run configurations.

Expansion overlays each run descriptor onto the base configuration,
takes the grid search product of any grid_variables, and resolves
template expressions against the per-run values. Grid variants are
numbered run, run_2, run_3, and so on.

Output formats:
  yaml    Multi-document stream on stdout (default)
  json    JSON array on stdout
  dir     One YAML file per run in the output directory

Passing --out implies -o dir.

Examples:
  # Print every concrete configuration
  cemctl expand experiment.yaml

  # Write one file per run
  cemctl expand experiment.yaml -o dir --out ./runs

  # Expand only one run
  cemctl expand experiment.yaml --run mnist_cem`,
		Args: cobra.ExactArgs(1),
		RunE: runExpand,
	}

	cmd.Flags().StringVar(&expandOutDirFlag, "out", "",
		"Output directory for -o dir (default: from config)")
	cmd.Flags().BoolVar(&expandSoftFlag, "soft", false,
		"Leave unresolvable template expressions in place")
	cmd.Flags().StringVar(&expandRunFlag, "run", "",
		"Expand only the named run")

	return cmd
}

// runExpand executes the expand command.
func runExpand(cmd *cobra.Command, args []string) error {
	path := resolveExperimentPath(args[0])

	doc, err := experiment.Load(path)
	if err != nil {
		return err
	}

	configs, err := doc.Expand(experiment.ExpandOptions{Soft: expandSoftFlag})
	if err != nil {
		return err
	}

	if expandRunFlag != "" {
		configs = filterRuns(configs, expandRunFlag)
		if len(configs) == 0 {
			return oerrors.NewNotFoundError(
				fmt.Sprintf("run %q not found in %s", expandRunFlag, path),
				path, "Use 'cemctl runs' to list run names.")
		}
	}

	output.Debug("expanded experiment", "path", path, "configs", len(configs))

	format := GetOutputFormat()
	if expandOutDirFlag != "" && outputFormatFlag == "" {
		format = output.FormatDir
	}
	switch format {
	case output.FormatYAML:
		return writeExpandStream(configs)
	case output.FormatJSON:
		return writeExpandJSON(configs)
	case output.FormatDir:
		return writeExpandDir(configs)
	default:
		return oerrors.NewExitError(
			fmt.Errorf("unsupported output format %q for expand; valid: %s",
				format, strings.Join(output.ValidExpandFormats(), ", ")),
			ExitGeneralError)
	}
}

// filterRuns keeps the named run and its grid variants.
func filterRuns(configs []experiment.NamedConfig, name string) []experiment.NamedConfig {
	var out []experiment.NamedConfig
	for _, nc := range configs {
		if nc.Name == name || strings.HasPrefix(nc.Name, name+"_") {
			out = append(out, nc)
		}
	}
	return out
}

// writeExpandStream prints the configs as a multi-document YAML stream.
func writeExpandStream(configs []experiment.NamedConfig) error {
	for i, nc := range configs {
		if i > 0 {
			output.Println("---")
		}
		output.Println("# run: " + nc.Name)
		data, err := experiment.EncodeValue(nc.Config)
		if err != nil {
			return err
		}
		output.Print(string(data))
	}
	return nil
}

// writeExpandJSON prints the configs as a JSON array.
func writeExpandJSON(configs []experiment.NamedConfig) error {
	type entry struct {
		Name   string         `json:"name"`
		Config map[string]any `json:"config"`
	}
	entries := make([]entry, 0, len(configs))
	for _, nc := range configs {
		entries = append(entries, entry{Name: nc.Name, Config: nc.Config})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	output.Println(string(data))
	return nil
}

// writeExpandDir writes one YAML file per config into the output directory.
func writeExpandDir(configs []experiment.NamedConfig) error {
	outDir := resolveFlag(expandOutDirFlag, GetToolConfig().OutDir)
	outDir, err := config.ExpandPath(outDir)
	if err != nil {
		return err
	}

	write := func() error {
		if err := os.MkdirAll(outDir, 0o755); err != nil {
			return fmt.Errorf("creating output directory %s: %w", outDir, err)
		}
		for _, nc := range configs {
			data, err := experiment.EncodeValue(nc.Config)
			if err != nil {
				return err
			}
			target := filepath.Join(outDir, nc.Name+".yaml")
			if err := os.WriteFile(target, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", target, err)
			}
			output.Debug("wrote run config", "path", target)
		}
		return nil
	}

	if output.IsTTY() {
		err = output.RunWithSpinner(context.Background(), write,
			output.WithTitle(fmt.Sprintf("Writing %d run config(s)...", len(configs))))
	} else {
		err = write()
	}
	if err != nil {
		return err
	}

	output.Println(output.FormatCheckmark(
		fmt.Sprintf("Wrote %d run config(s) to %s", len(configs), outDir)))
	return nil
}

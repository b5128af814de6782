package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/experiment"
	"github.com/conceptlab/cemctl/internal/output"
)

// NewRunsCmd creates the runs command.
func NewRunsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs <file>",
		Short: "List the runs of an experiment",
		Long: `List the run descriptors of an experiment file.

Each run inherits the base configuration and may override individual
hyperparameters. The table shows which fields each run overrides; use
'cemctl expand' to see the fully merged configurations.

Examples:
  # Tabulate the runs
  cemctl runs experiment.yaml

  # Machine-readable listing
  cemctl runs experiment.yaml -o json`,
		Args: cobra.ExactArgs(1),
		RunE: runRuns,
	}

	return cmd
}

// runsEntry is the machine-readable form of one run descriptor.
type runsEntry struct {
	RunName      string   `json:"run_name" yaml:"run_name"`
	Architecture string   `json:"architecture" yaml:"architecture"`
	Overrides    []string `json:"overrides,omitempty" yaml:"overrides,omitempty"`
}

// runRuns executes the runs command.
func runRuns(cmd *cobra.Command, args []string) error {
	path := resolveExperimentPath(args[0])

	doc, err := experiment.Load(path)
	if err != nil {
		return err
	}

	entries := make([]runsEntry, 0, len(doc.Config.Runs))
	for _, run := range doc.Config.Runs {
		entries = append(entries, runsEntry{
			RunName:      run.RunName,
			Architecture: run.Architecture,
			Overrides:    run.OverrideKeys(),
		})
	}

	// Report commands default to a table; -o selects machine formats.
	format := output.FormatTable
	if outputFormatFlag != "" {
		format = output.ParseFormat(outputFormatFlag)
	}

	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return err
		}
		output.Println(string(data))
	case output.FormatYAML:
		data, err := experiment.EncodeValue(entries)
		if err != nil {
			return err
		}
		output.Print(string(data))
	case output.FormatTable:
		rows := make([]output.RunRow, 0, len(entries))
		for _, e := range entries {
			rows = append(rows, output.RunRow{
				Name:         e.RunName,
				Architecture: e.Architecture,
				Overrides:    strings.Join(e.Overrides, ", "),
			})
		}
		output.Println(output.RenderRunsTable(rows))
		output.Println(output.StyleSummary.Render(fmt.Sprintf("%d run(s)", len(rows))))
	default:
		return oerrors.NewExitError(
			fmt.Errorf("unsupported output format %q for runs; valid: %s",
				format, strings.Join(output.ValidReportFormats(), ", ")),
			ExitGeneralError)
	}

	return nil
}

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/experiment"
	"github.com/conceptlab/cemctl/internal/intervention"
	"github.com/conceptlab/cemctl/internal/output"
)

// NewVetCmd creates the vet command.
func NewVetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vet <file>...",
		Short: "Validate experiment files",
		Long: `Validate experiment files against the schema and semantic rules.

Checks performed:
  1. File parses as a YAML mapping
  2. Fields satisfy the experiment schema (types, ranges, enums)
  3. Runs carry architecture and run_name; run names are unique
  4. Intervention policies are recognized and carry their required keys
  5. Grid variables reference list-valued fields

All findings in a file are reported, not just the first.

Examples:
  # Validate a single experiment
  cemctl vet experiment.yaml

  # Validate several at once
  cemctl vet sweeps/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runVet,
	}

	return cmd
}

// runVet executes the vet command.
func runVet(cmd *cobra.Command, args []string) error {
	validator, err := experiment.NewValidator()
	if err != nil {
		return oerrors.NewExitError(err, ExitGeneralError)
	}

	invalid := 0
	for _, arg := range args {
		path := resolveExperimentPath(arg)

		doc, err := experiment.Load(path)
		if err != nil {
			output.Error("loading experiment", "path", path, "error", err)
			invalid++
			continue
		}

		result, err := validator.Validate(doc)
		if err != nil {
			return oerrors.NewExitError(err, ExitGeneralError)
		}

		polErrs, polWarnings := intervention.ValidateDescriptors(doc.Config.Intervention)
		result.Errors = append(result.Errors, polErrs...)
		result.Warnings = append(result.Warnings, polWarnings...)

		printVetResult(doc, result)
		if !result.Valid() {
			invalid++
		}
	}

	if invalid > 0 {
		return &oerrors.ExitError{
			Err:     fmt.Errorf("%d of %d file(s) failed validation", invalid, len(args)),
			Code:    ExitValidationError,
			Printed: true,
		}
	}
	return nil
}

// printVetResult prints findings and the per-file summary line.
func printVetResult(doc *experiment.Document, result *experiment.Result) {
	expLog := output.ExperimentLogger(doc.Name())

	for _, w := range result.Warnings {
		expLog.Warn(w)
	}
	for _, e := range result.Errors {
		output.Println(output.FormatFindingLine(e.Field, output.StatusInvalid))
	}

	if !result.Valid() {
		output.Println(output.StyleSummary.Render(
			fmt.Sprintf("%s: %d error(s)", doc.Path, len(result.Errors))))
		return
	}

	output.Println(output.FormatVetCheck("Schema satisfied", filepath.Base(doc.Path)))
	summary := fmt.Sprintf("%s valid (%d runs, %d policies)",
		doc.Path, len(doc.Config.Runs), len(doc.Config.Intervention.Policies))
	output.Println(output.FormatCheckmark(summary))
}

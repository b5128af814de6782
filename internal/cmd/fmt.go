package cmd

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/experiment"
	"github.com/conceptlab/cemctl/internal/output"
)

// Fmt command flags
var (
	fmtCheckFlag bool
	fmtWriteFlag bool
)

// NewFmtCmd creates the fmt command.
func NewFmtCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt <file>...",
		Short: "Format experiment files",
		Long: `Format experiment files canonically.

Formatting normalizes indentation to two spaces while preserving key
order and comments. A formatted file parses to the same document.

By default the formatted document is printed to stdout. With --write
files are rewritten in place; with --check nothing is written and the
command fails if any file is not already formatted.

Examples:
  # Print the formatted document
  cemctl fmt experiment.yaml

  # Rewrite files in place
  cemctl fmt --write sweeps/*.yaml

  # Gate formatting in CI
  cemctl fmt --check sweeps/*.yaml`,
		Args: cobra.MinimumNArgs(1),
		RunE: runFmt,
	}

	cmd.Flags().BoolVar(&fmtCheckFlag, "check", false,
		"Fail if files are not formatted; write nothing")
	cmd.Flags().BoolVarP(&fmtWriteFlag, "write", "w", false,
		"Rewrite files in place")

	return cmd
}

// runFmt executes the fmt command.
func runFmt(cmd *cobra.Command, args []string) error {
	if fmtCheckFlag && fmtWriteFlag {
		return oerrors.NewExitError(
			fmt.Errorf("--check and --write are mutually exclusive"), ExitGeneralError)
	}

	drifted := 0
	for _, arg := range args {
		path := resolveExperimentPath(arg)

		original, err := os.ReadFile(path)
		if err != nil {
			return oerrors.NewNotFoundError("could not read experiment file", path, "")
		}

		doc, err := experiment.Parse(original)
		if err != nil {
			return err
		}

		formatted, err := doc.Encode()
		if err != nil {
			return err
		}

		if bytes.Equal(original, formatted) {
			if fmtCheckFlag {
				output.Debug("already formatted", "path", path)
			}
			if !fmtCheckFlag && !fmtWriteFlag {
				output.Print(string(formatted))
			}
			continue
		}

		drifted++
		switch {
		case fmtCheckFlag:
			output.Println(output.FormatFindingLine(path, output.StatusInvalid))
		case fmtWriteFlag:
			if err := os.WriteFile(path, formatted, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", path, err)
			}
			output.Println(output.StyleNoun.Render(path))
		default:
			output.Print(string(formatted))
		}
	}

	if fmtCheckFlag && drifted > 0 {
		return &oerrors.ExitError{
			Err:     fmt.Errorf("%d file(s) not formatted", drifted),
			Code:    ExitFormatDrift,
			Printed: true,
		}
	}
	return nil
}

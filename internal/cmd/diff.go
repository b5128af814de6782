package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/conceptlab/cemctl/internal/diff"
	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/experiment"
	"github.com/conceptlab/cemctl/internal/output"
)

// Diff command flags
var (
	diffExpandFlag bool
	diffRunFlag    string
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "diff <file> <file>",
		Short: "Compare two experiment files",
		Long: `Compare two experiment files semantically.

The comparison is YAML-aware: key order and comments never count as
differences, only values do. With --expand the fully expanded run
configurations are compared instead of the raw documents, and --run
narrows the comparison to one named run.

Exits 0 when the documents match and 1 when they differ.

Examples:
  # Compare raw documents
  cemctl diff before.yaml after.yaml

  # Compare what the trainer would actually receive
  cemctl diff before.yaml after.yaml --expand

  # Compare a single run's expansion
  cemctl diff before.yaml after.yaml --run mnist_cem`,
		Args: cobra.ExactArgs(2),
		RunE: runDiff,
	}

	cmd.Flags().BoolVar(&diffExpandFlag, "expand", false,
		"Compare expanded run configurations")
	cmd.Flags().StringVar(&diffRunFlag, "run", "",
		"Compare only the named run (implies --expand)")

	return cmd
}

// runDiff executes the diff command.
func runDiff(cmd *cobra.Command, args []string) error {
	fromPath := resolveExperimentPath(args[0])
	toPath := resolveExperimentPath(args[1])

	fromData, err := diffInput(fromPath)
	if err != nil {
		return err
	}
	toData, err := diffInput(toPath)
	if err != nil {
		return err
	}

	result, err := diff.Compare(fromData, toData, diff.Options{
		FromName: fromPath,
		ToName:   toPath,
		UseColor: output.IsTTY(),
	})
	if err != nil {
		return err
	}

	if !result.HasChanges {
		output.Println(output.FormatCheckmark("No changes"))
		return nil
	}

	output.Println(result.Report)
	output.Println(output.StyleSummary.Render(result.Summary()))
	return &oerrors.ExitError{
		Err:     fmt.Errorf("documents differ: %s", result.Summary()),
		Code:    ExitGeneralError,
		Printed: true,
	}
}

// diffInput loads one comparison side, expanded or raw.
func diffInput(path string) ([]byte, error) {
	if !diffExpandFlag && diffRunFlag == "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, oerrors.NewNotFoundError("could not read experiment file", path, "")
		}
		return data, nil
	}

	doc, err := experiment.Load(path)
	if err != nil {
		return nil, err
	}
	configs, err := doc.Expand(experiment.ExpandOptions{Soft: true})
	if err != nil {
		return nil, err
	}

	if diffRunFlag != "" {
		for _, nc := range configs {
			if nc.Name == diffRunFlag {
				return experiment.EncodeValue(nc.Config)
			}
		}
		return nil, oerrors.NewNotFoundError(
			fmt.Sprintf("run %q not found in %s", diffRunFlag, path),
			path, "Use 'cemctl runs' to list run names.")
	}

	// Encode the expansion as one mapping keyed by run name so dyff
	// reports per-run paths.
	byName := make(map[string]any, len(configs))
	for _, nc := range configs {
		byName[nc.Name] = nc.Config
	}
	return experiment.EncodeValue(byName)
}

package cmd

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conceptlab/cemctl/internal/dataset"
	oerrors "github.com/conceptlab/cemctl/internal/errors"
	"github.com/conceptlab/cemctl/internal/experiment"
	"github.com/conceptlab/cemctl/internal/output"
)

// Geometry command flags
var (
	geometrySubsampleFlag    bool
	geometrySelectionDirFlag string
	geometryResampleFlag     bool
)

// NewGeometryCmd creates the geometry command.
func NewGeometryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "geometry <file>",
		Short: "Derive the concept geometry of an experiment",
		Long: `Derive the concept and task geometry of an experiment's dataset.

The geometry follows from dataset_config alone: operand count and digit
selection determine the concept count, the concept-to-group assignment,
the task count, and the intervention schedule.

With --subsample, the configured sampling_percent is applied and the
surviving concepts are reported. Selections are seeded by the experiment
seed and persisted next to the dataset so repeated invocations agree.

Examples:
  # Report the geometry
  cemctl geometry experiment.yaml

  # Apply concept subsampling
  cemctl geometry experiment.yaml --subsample

  # Force a fresh subsample selection
  cemctl geometry experiment.yaml --subsample --resample`,
		Args: cobra.ExactArgs(1),
		RunE: runGeometry,
	}

	cmd.Flags().BoolVar(&geometrySubsampleFlag, "subsample", false,
		"Apply the configured sampling_percent")
	cmd.Flags().StringVar(&geometrySelectionDirFlag, "selection-dir", "",
		"Directory for persisted subsample selections (default: dataset root_dir)")
	cmd.Flags().BoolVar(&geometryResampleFlag, "resample", false,
		"Ignore any persisted subsample selection")

	return cmd
}

// geometryReport is the machine-readable form of a geometry derivation.
type geometryReport struct {
	NumOperands    int           `json:"num_operands" yaml:"num_operands"`
	SelectedDigits [][]int       `json:"selected_digits" yaml:"selected_digits"`
	NumConcepts    int           `json:"n_concepts" yaml:"n_concepts"`
	NumTasks       int           `json:"n_tasks" yaml:"n_tasks"`
	NumGroups      int           `json:"n_groups" yaml:"n_groups"`
	ConceptGroups  map[int][]int `json:"concept_groups" yaml:"concept_groups"`
	Schedule       []int         `json:"intervention_schedule" yaml:"intervention_schedule"`

	Subsample *subsampleReport `json:"subsample,omitempty" yaml:"subsample,omitempty"`
}

type subsampleReport struct {
	Percent          float64       `json:"sampling_percent" yaml:"sampling_percent"`
	Groups           bool          `json:"sampling_groups" yaml:"sampling_groups"`
	SelectedConcepts []int         `json:"selected_concepts" yaml:"selected_concepts"`
	NumConcepts      int           `json:"n_concepts" yaml:"n_concepts"`
	ConceptGroups    map[int][]int `json:"concept_groups" yaml:"concept_groups"`
}

// runGeometry executes the geometry command.
func runGeometry(cmd *cobra.Command, args []string) error {
	path := resolveExperimentPath(args[0])

	doc, err := experiment.Load(path)
	if err != nil {
		return err
	}

	geom, err := dataset.Derive(doc.Config.Dataset)
	if err != nil {
		return oerrors.NewExitError(err, ExitValidationError)
	}

	freq := doc.Config.Intervention.InterventionFreq
	if freq == 0 {
		freq = experiment.DefaultInterventionFreq
	}

	report := geometryReport{
		NumOperands:    geom.NumOperands,
		SelectedDigits: geom.SelectedDigits,
		NumConcepts:    geom.NumConcepts,
		NumTasks:       geom.NumTasks,
		NumGroups:      geom.NumGroups(),
		ConceptGroups:  geom.ConceptGroups,
		Schedule:       geom.InterventionSchedule(freq),
	}

	if geometrySubsampleFlag {
		sub, err := runGeometrySubsample(doc, geom)
		if err != nil {
			return err
		}
		report.Subsample = sub
	}

	// Report commands default to a table; -o selects machine formats.
	format := output.FormatTable
	if outputFormatFlag != "" {
		format = output.ParseFormat(outputFormatFlag)
	}

	switch format {
	case output.FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		output.Println(string(data))
	case output.FormatYAML:
		data, err := experiment.EncodeValue(report)
		if err != nil {
			return err
		}
		output.Print(string(data))
	case output.FormatTable:
		output.Println(output.RenderGeometryTable(geometryRows(report)))
	default:
		return oerrors.NewExitError(
			fmt.Errorf("unsupported output format %q for geometry; valid: %s",
				format, strings.Join(output.ValidReportFormats(), ", ")),
			ExitGeneralError)
	}

	return nil
}

// runGeometrySubsample applies the configured subsampling to a geometry.
func runGeometrySubsample(doc *experiment.Document, geom *dataset.Geometry) (*subsampleReport, error) {
	ds := doc.Config.Dataset

	seed, _ := doc.Config.Int("seed")
	rootDir := resolveFlag(geometrySelectionDirFlag, ds.RootDir)

	sub, err := geom.Subsample(dataset.SubsampleOptions{
		Percent: ds.SamplingPercent,
		Groups:  ds.SamplingGroups,
		Seed:    int64(seed),
		RootDir: rootDir,
		Rerun:   geometryResampleFlag,
	})
	if err != nil {
		return nil, oerrors.NewExitError(err, ExitValidationError)
	}

	return &subsampleReport{
		Percent:          ds.SamplingPercent,
		Groups:           ds.SamplingGroups,
		SelectedConcepts: sub.SelectedConcepts,
		NumConcepts:      sub.NumConcepts,
		ConceptGroups:    sub.ConceptGroups,
	}, nil
}

// geometryRows flattens a geometry report into table rows.
func geometryRows(r geometryReport) []output.GeometryRow {
	rows := []output.GeometryRow{
		{Property: "operands", Value: fmt.Sprintf("%d", r.NumOperands)},
		{Property: "selected digits", Value: formatNested(r.SelectedDigits)},
		{Property: "concepts", Value: fmt.Sprintf("%d", r.NumConcepts)},
		{Property: "tasks", Value: fmt.Sprintf("%d", r.NumTasks)},
		{Property: "concept groups", Value: fmt.Sprintf("%d", r.NumGroups)},
		{Property: "intervention schedule", Value: formatInts(r.Schedule)},
	}
	for _, operand := range sortedGroupKeys(r.ConceptGroups) {
		rows = append(rows, output.GeometryRow{
			Property: fmt.Sprintf("group %d", operand),
			Value:    formatInts(r.ConceptGroups[operand]),
		})
	}
	if r.Subsample != nil {
		rows = append(rows,
			output.GeometryRow{Property: "subsampled concepts",
				Value: fmt.Sprintf("%d", r.Subsample.NumConcepts)},
			output.GeometryRow{Property: "selected concepts",
				Value: formatInts(r.Subsample.SelectedConcepts)},
		)
	}
	return rows
}

func formatInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = fmt.Sprintf("%d", n)
	}
	return strings.Join(parts, ", ")
}

func formatNested(nss [][]int) string {
	parts := make([]string, len(nss))
	for i, ns := range nss {
		parts[i] = "[" + formatInts(ns) + "]"
	}
	return strings.Join(parts, " ")
}

func sortedGroupKeys(groups map[int][]int) []int {
	keys := make([]int, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

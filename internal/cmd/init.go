package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conceptlab/cemctl/internal/output"
	"github.com/conceptlab/cemctl/internal/templates"
)

// Init command flags
var (
	initTemplateFlag     string
	initNameFlag         string
	initArchitectureFlag string
	initForceFlag        bool
	initListFlag         bool
)

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a new experiment file from a template",
		Long: `Create a new experiment file from a template.

Templates:
  minimal     Single run, defaults everywhere - quick experiments
  standard    Full dataset and intervention sections - typical studies
  sweep       Grid variables and expressions - hyperparameter sweeps

The experiment name defaults to the file basename.

Arguments:
  path    File to create (default: experiment.yaml)

Examples:
  # Create the default experiment
  cemctl init

  # Create a named sweep
  cemctl init sweeps/lr_sweep.yaml --template sweep

  # List available templates
  cemctl init --list`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}

	cmd.Flags().StringVarP(&initTemplateFlag, "template", "t", templates.DefaultTemplateName,
		"Template to use: minimal, standard, sweep")
	cmd.Flags().StringVar(&initNameFlag, "name", "",
		"Experiment name (default: file basename)")
	cmd.Flags().StringVar(&initArchitectureFlag, "architecture", "",
		"Architecture for the generated runs (default: "+templates.DefaultArchitecture+")")
	cmd.Flags().BoolVarP(&initForceFlag, "force", "f", false,
		"Overwrite an existing file")
	cmd.Flags().BoolVar(&initListFlag, "list", false,
		"List available templates")

	return cmd
}

// runInit executes the init command.
func runInit(cmd *cobra.Command, args []string) error {
	if initListFlag {
		for _, t := range templates.List() {
			marker := " "
			if t.Default {
				marker = "*"
			}
			output.Println(fmt.Sprintf("%s %-10s %s", marker,
				output.StyleNoun.Render(t.Name), t.Description))
		}
		return nil
	}

	targetPath := "experiment.yaml"
	if len(args) > 0 {
		targetPath = args[0]
	}

	generator := templates.NewGenerator(templates.GenerateOptions{
		TargetPath:     targetPath,
		TemplateName:   initTemplateFlag,
		ExperimentName: initNameFlag,
		Architecture:   initArchitectureFlag,
		Force:          initForceFlag,
	})

	result, err := generator.Generate()
	if err != nil {
		return err
	}

	output.Println(output.FormatCheckmark(
		fmt.Sprintf("Created %s from the %s template", result.Path, result.TemplateName)))
	output.Println("")
	output.Println("Next: validate with 'cemctl vet " + result.Path + "'")
	return nil
}

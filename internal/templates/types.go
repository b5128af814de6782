// Package templates provides the experiment template system for cemctl init.
package templates

// Template represents an experiment template with its metadata.
type Template struct {
	// Name is the template identifier (minimal, standard, sweep).
	Name string

	// Description explains the template's purpose and use case.
	Description string

	// Default indicates if this is the default template when --template is omitted.
	Default bool

	// UseCase describes when to use this template.
	UseCase string
}

// TemplateData holds the data passed to template rendering.
type TemplateData struct {
	// ExperimentName is the experiment name (from --name or the file basename).
	ExperimentName string

	// Architecture is the model architecture used by the generated runs.
	Architecture string

	// Seed is the initial random seed.
	Seed int
}

// GenerateOptions configures experiment generation behavior.
type GenerateOptions struct {
	// TargetPath is the file to generate the experiment at.
	TargetPath string

	// TemplateName is the template to use.
	TemplateName string

	// ExperimentName overrides the derived experiment name.
	ExperimentName string

	// Architecture overrides the default architecture.
	Architecture string

	// Force allows overwriting an existing file.
	Force bool
}

// GenerateResult contains the result of experiment generation.
type GenerateResult struct {
	// Path is the file that was created.
	Path string

	// TemplateName is the template that was used.
	TemplateName string
}

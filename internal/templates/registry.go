package templates

import "fmt"

// DefaultTemplateName is the template used when --template is not specified.
const DefaultTemplateName = "standard"

// DefaultArchitecture is the architecture used when --architecture is not specified.
const DefaultArchitecture = "cem"

// templates is the internal registry of available templates.
var templates = map[string]Template{
	"minimal": {
		Name:        "minimal",
		Description: "Single run, defaults everywhere - quick experiments",
		UseCase:     "Smoke tests, quick single-run experiments, learning the format",
		Default:     false,
	},
	"standard": {
		Name:        "standard",
		Description: "Full dataset and intervention sections - typical studies",
		UseCase:     "Typical intervention studies with several runs and policies",
		Default:     true,
	},
	"sweep": {
		Name:        "sweep",
		Description: "Grid variables and expressions - hyperparameter sweeps",
		UseCase:     "Hyperparameter sweeps over learning rate and embedding size",
		Default:     false,
	},
}

// Get returns a template by name.
// Returns an error if the template is not found.
func Get(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, fmt.Errorf("unknown template %q; valid templates: minimal, standard, sweep", name)
	}
	return t, nil
}

// List returns all available templates.
func List() []Template {
	return []Template{
		templates["minimal"],
		templates["standard"],
		templates["sweep"],
	}
}

// GetDefault returns the default template.
func GetDefault() Template {
	return templates[DefaultTemplateName]
}

// Names returns all template names.
func Names() []string {
	return []string{"minimal", "standard", "sweep"}
}

package templates

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/conceptlab/cemctl/internal/output"
)

// Generator handles experiment generation from templates.
type Generator struct {
	opts GenerateOptions
}

// NewGenerator creates a new generator with the given options.
func NewGenerator(opts GenerateOptions) *Generator {
	return &Generator{opts: opts}
}

// Generate creates a new experiment file from a template.
func (g *Generator) Generate() (*GenerateResult, error) {
	tmpl, err := Get(g.opts.TemplateName)
	if err != nil {
		return nil, err
	}

	name := g.opts.ExperimentName
	if name == "" {
		name = DeriveExperimentName(g.opts.TargetPath)
	}
	if err := ValidateExperimentName(name); err != nil {
		return nil, err
	}

	arch := g.opts.Architecture
	if arch == "" {
		arch = DefaultArchitecture
	}

	if !g.opts.Force {
		if _, err := os.Stat(g.opts.TargetPath); err == nil {
			return nil, fmt.Errorf("file %s already exists; use --force to overwrite", g.opts.TargetPath)
		}
	}

	data := TemplateData{
		ExperimentName: name,
		Architecture:   arch,
		Seed:           42,
	}

	output.Debug("generating experiment",
		"template", tmpl.Name,
		"name", name,
		"architecture", arch,
		"target", g.opts.TargetPath)

	renderer := NewRenderer(data)
	content, err := renderer.RenderTemplate(g.opts.TemplateName)
	if err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}

	parentDir := filepath.Dir(g.opts.TargetPath)
	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return nil, fmt.Errorf("creating directory %s: %w", parentDir, err)
	}

	if err := os.WriteFile(g.opts.TargetPath, content, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", g.opts.TargetPath, err)
	}

	return &GenerateResult{
		Path:         g.opts.TargetPath,
		TemplateName: tmpl.Name,
	}, nil
}

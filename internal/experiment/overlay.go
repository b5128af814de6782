package experiment

import (
	"fmt"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
)

// NamedConfig is one fully-expanded concrete run configuration.
type NamedConfig struct {
	// Name identifies the run, unique within one expansion.
	Name string

	// Config is the complete document for this run.
	Config map[string]any
}

// Overlay merges a run descriptor onto a base document. Run keys win; the
// base is never modified. The run's name and architecture are written into
// the result under their canonical keys.
func Overlay(base map[string]any, run map[string]any) map[string]any {
	out := copyMap(base)
	delete(out, "runs")
	for k, v := range run {
		out[k] = copyValue(v)
	}
	return out
}

// RunConfigs overlays every runs[] entry onto the base document. A document
// without runs yields a single unnamed entry for the base itself.
func RunConfigs(raw map[string]any) ([]NamedConfig, error) {
	rawRuns, ok := raw["runs"]
	if !ok {
		base := copyMap(raw)
		return []NamedConfig{{Name: "", Config: base}}, nil
	}

	runs, ok := rawRuns.([]any)
	if !ok {
		return nil, oerrors.Wrap(oerrors.ErrExpansion, "runs must be a list of run descriptors")
	}

	out := make([]NamedConfig, 0, len(runs))
	for i, rr := range runs {
		run, ok := rr.(map[string]any)
		if !ok {
			return nil, oerrors.Wrap(oerrors.ErrExpansion,
				fmt.Sprintf("runs[%d] is not a mapping", i))
		}
		name, _ := run[KeyRunName].(string)
		if name == "" {
			return nil, oerrors.Wrap(oerrors.ErrExpansion,
				fmt.Sprintf("runs[%d] has no run_name", i))
		}
		out = append(out, NamedConfig{
			Name:   name,
			Config: Overlay(raw, run),
		})
	}
	return out, nil
}

// ExpandOptions controls the expansion pipeline.
type ExpandOptions struct {
	// Soft leaves unresolvable template expressions in place instead of
	// failing the expansion.
	Soft bool
}

// Expand runs the full pipeline: run overlays, per-run grid expansion, and
// expression resolution on each concrete variant. Expressions resolve last
// so they can reference grid variables by their per-variant values. Grid
// variants of a run are numbered run, run_2, run_3, ... in variant order.
func (d *Document) Expand(opts ExpandOptions) ([]NamedConfig, error) {
	runs, err := RunConfigs(d.Raw)
	if err != nil {
		return nil, err
	}

	var out []NamedConfig
	for _, run := range runs {
		variants, err := ExpandGrid(run.Config)
		if err != nil {
			if run.Name != "" {
				return nil, fmt.Errorf("run %s: %w", run.Name, err)
			}
			return nil, err
		}
		for i, variant := range variants {
			name := run.Name
			if name == "" {
				name = d.Name()
			}
			if i > 0 {
				name = fmt.Sprintf("%s_%d", name, i+1)
			}
			resolved, err := EvalExpressions(variant, opts.Soft)
			if err != nil {
				return nil, oerrors.Wrap(oerrors.ErrExpansion,
					fmt.Sprintf("run %s: %s", name, err.Error()))
			}
			out = append(out, NamedConfig{Name: name, Config: resolved})
		}
	}
	return out, nil
}

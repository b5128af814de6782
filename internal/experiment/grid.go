package experiment

import (
	"fmt"
	"strings"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
)

// Grid search modes.
const (
	GridModeExhaustive = "exhaustive"
	GridModeGrid       = "grid"
	GridModePaired     = "paired"
)

// ExpandGrid expands a generic document into its hyperparameter-search
// variants. A document with no grid_variables expands to a single copy of
// itself. "exhaustive" (alias "grid") takes the cartesian product of the
// candidate lists; "paired" zips them positionally.
//
// Variant order is deterministic: the first variable varies slowest.
func ExpandGrid(raw map[string]any) ([]map[string]any, error) {
	rawVars, ok := raw[KeyGridVariables]
	if !ok {
		return []map[string]any{copyMap(raw)}, nil
	}

	varsAny, ok := rawVars.([]any)
	if !ok {
		return nil, oerrors.Wrap(oerrors.ErrExpansion, "grid_variables must be a list of field names")
	}

	names := make([]string, len(varsAny))
	options := make([][]any, len(varsAny))
	for i, rv := range varsAny {
		name, ok := rv.(string)
		if !ok {
			return nil, oerrors.Wrap(oerrors.ErrExpansion,
				fmt.Sprintf("grid variable name %v is not a string", rv))
		}
		val, exists := raw[name]
		if !exists {
			return nil, oerrors.Wrap(oerrors.ErrExpansion,
				fmt.Sprintf("grid variable %q is not a field in the config", name))
		}
		opts, ok := val.([]any)
		if !ok {
			return nil, oerrors.Wrap(oerrors.ErrExpansion,
				fmt.Sprintf("grid variable %q must hold a list of candidate values", name))
		}
		if len(opts) == 0 {
			return nil, oerrors.Wrap(oerrors.ErrExpansion,
				fmt.Sprintf("grid variable %q has no candidate values", name))
		}
		names[i] = name
		options[i] = opts
	}

	mode := GridModeExhaustive
	if m, ok := raw[KeyGridSearchMode].(string); ok && m != "" {
		mode = strings.ToLower(strings.TrimSpace(m))
	}

	var combos [][]any
	switch mode {
	case GridModeExhaustive, GridModeGrid:
		combos = cartesian(options)
	case GridModePaired:
		var err error
		combos, err = zip(names, options)
		if err != nil {
			return nil, err
		}
	default:
		return nil, oerrors.Wrap(oerrors.ErrExpansion,
			fmt.Sprintf("unsupported grid_search_mode %q (valid: exhaustive, paired)", mode))
	}

	variants := make([]map[string]any, 0, len(combos))
	for _, combo := range combos {
		variant := copyMap(raw)
		for i, name := range names {
			variant[name] = copyValue(combo[i])
		}
		// Concrete variants carry no grid bookkeeping.
		delete(variant, KeyGridVariables)
		delete(variant, KeyGridSearchMode)
		variants = append(variants, variant)
	}
	return variants, nil
}

// cartesian enumerates the product of the candidate lists; the first list
// varies slowest.
func cartesian(options [][]any) [][]any {
	total := 1
	for _, opts := range options {
		total *= len(opts)
	}

	combos := make([][]any, 0, total)
	idx := make([]int, len(options))
	for {
		combo := make([]any, len(options))
		for i, opts := range options {
			combo[i] = opts[idx[i]]
		}
		combos = append(combos, combo)

		// Advance the rightmost index.
		pos := len(options) - 1
		for pos >= 0 {
			idx[pos]++
			if idx[pos] < len(options[pos]) {
				break
			}
			idx[pos] = 0
			pos--
		}
		if pos < 0 {
			return combos
		}
	}
}

// zip pairs candidate lists positionally; lengths must match.
func zip(names []string, options [][]any) ([][]any, error) {
	if len(options) == 0 {
		return nil, nil
	}
	n := len(options[0])
	for i, opts := range options {
		if len(opts) != n {
			return nil, oerrors.Wrap(oerrors.ErrExpansion,
				fmt.Sprintf("paired grid variable %q has %d candidates, expected %d",
					names[i], len(opts), n))
		}
	}

	combos := make([][]any, n)
	for j := 0; j < n; j++ {
		combo := make([]any, len(options))
		for i := range options {
			combo[i] = options[i][j]
		}
		combos[j] = combo
	}
	return combos, nil
}

// Package intervention describes the intervention policies the external
// trainer recognizes. Only descriptors live here: which names exist, which
// keys they require, and their defaults. Policy behavior belongs to the
// trainer.
package intervention

import (
	"fmt"
	"sort"

	"github.com/conceptlab/cemctl/internal/experiment"
)

// Policy describes one recognized intervention strategy.
type Policy struct {
	// Name is the policy identifier used in experiment files.
	Name string

	// GroupLevelDefault is the default for the group_level key.
	GroupLevelDefault bool

	// UsePriorDefault is the default for the use_prior key.
	UsePriorDefault bool

	// UsesCompetence reports whether the policy consumes the
	// competence_levels setting.
	UsesCompetence bool
}

// registry holds every policy name the trainer recognizes.
var registry = map[string]Policy{
	"random": {
		Name:              "random",
		GroupLevelDefault: true,
	},
	"coop": {
		Name:              "coop",
		GroupLevelDefault: true,
		UsesCompetence:    true,
	},
	"behavioural_cloning": {
		Name:              "behavioural_cloning",
		GroupLevelDefault: true,
		UsesCompetence:    true,
	},
	"optimal_greedy": {
		Name:              "optimal_greedy",
		GroupLevelDefault: true,
	},
	"global_val_error": {
		Name:              "global_val_error",
		GroupLevelDefault: true,
		UsePriorDefault:   true,
	},
	"global_val_improvement": {
		Name:              "global_val_improvement",
		GroupLevelDefault: true,
		UsePriorDefault:   true,
	},
	"intcem_policy": {
		Name:              "intcem_policy",
		GroupLevelDefault: true,
	},
}

// Lookup returns the policy for a name.
func Lookup(name string) (Policy, bool) {
	p, ok := registry[name]
	return p, ok
}

// Known returns every recognized policy name, sorted.
func Known() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ApplyDefaults fills a descriptor's absent keys from the policy defaults.
// Unrecognized policies get the registry-wide defaults (group-level, no
// prior).
func ApplyDefaults(desc experiment.PolicyDescriptor) experiment.PolicyDescriptor {
	p, ok := registry[desc.Policy]
	if !ok {
		p = Policy{GroupLevelDefault: true}
	}
	if desc.GroupLevel == nil {
		v := p.GroupLevelDefault
		desc.GroupLevel = &v
	}
	if desc.UsePrior == nil {
		v := p.UsePriorDefault
		desc.UsePrior = &v
	}
	return desc
}

// ValidateDescriptors checks every policy descriptor against the registry.
// Unknown names are errors; a competence-consuming policy without
// competence_levels is a warning.
func ValidateDescriptors(ic experiment.InterventionConfig) (experiment.ValidationErrors, []string) {
	var errs experiment.ValidationErrors
	var warnings []string

	for i, desc := range ic.Policies {
		field := fmt.Sprintf("intervention_config.intervention_policies[%d].policy", i)
		if desc.Policy == "" {
			// The schema layer already reports the missing key.
			continue
		}
		p, ok := registry[desc.Policy]
		if !ok {
			errs = append(errs, experiment.ValidationError{
				Field:   field,
				Message: fmt.Sprintf("unknown policy %q (known: %v)", desc.Policy, Known()),
			})
			continue
		}
		if p.UsesCompetence && len(ic.CompetenceLevels) == 0 {
			warnings = append(warnings, fmt.Sprintf(
				"policy %q uses competence levels but competence_levels is empty", desc.Policy))
		}
	}

	return errs, warnings
}

package experiment

import (
	"encoding/json"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
)

// ValidationError represents a single experiment validation finding.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("experiment validation failed:\n")
	for _, err := range e {
		sb.WriteString("  " + err.Error() + "\n")
	}
	return sb.String()
}

// Result holds everything a vet run found. Validation is collecting, not
// first-fail: every violation in the document is reported.
type Result struct {
	Errors   ValidationErrors
	Warnings []string
}

// Valid reports whether the document passed without errors.
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

func (r *Result) addError(field, message string) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r *Result) addWarning(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Validator validates experiment documents against the embedded CUE schema
// plus the semantic rules CUE cannot express.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator creates a new experiment validator.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()

	compiled := ctx.CompileBytes(schemaCUE)
	if compiled.Err() != nil {
		return nil, fmt.Errorf("compiling experiment schema: %w", compiled.Err())
	}

	schema := compiled.LookupPath(cue.ParsePath("#Experiment"))
	if !schema.Exists() {
		return nil, fmt.Errorf("experiment schema: missing #Experiment definition")
	}

	return &Validator{
		ctx:    ctx,
		schema: schema,
	}, nil
}

// Validate runs schema and semantic validation over a document.
func (v *Validator) Validate(doc *Document) (*Result, error) {
	result := &Result{}

	if err := v.validateSchema(doc.Raw, result); err != nil {
		return nil, err
	}
	validateSemantics(doc.Config, result)

	return result, nil
}

// validateSchema unifies the document with the embedded schema and collects
// every reported violation with its field path.
func (v *Validator) validateSchema(raw map[string]any, result *Result) error {
	jsonData, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encoding document for schema check: %w", err)
	}

	value := v.ctx.CompileBytes(jsonData)
	if value.Err() != nil {
		return fmt.Errorf("building document value: %w", value.Err())
	}

	unified := v.schema.Unify(value)
	verr := unified.Validate(cue.Concrete(false), cue.All())
	if verr == nil {
		return nil
	}

	for _, e := range cueerrors.Errors(verr) {
		field := strings.Join(e.Path(), ".")
		format, args := e.Msg()
		result.addError(field, fmt.Sprintf(format, args...))
	}
	return nil
}

// validateSemantics applies the rules the schema cannot express.
func validateSemantics(cfg *Config, result *Result) {
	validateRuns(cfg, result)
	validatePolicies(cfg, result)
	validateDigits(cfg, result)
	validateGrid(cfg, result)
}

func validateRuns(cfg *Config, result *Result) {
	seen := map[string]bool{}
	for i, run := range cfg.Runs {
		field := fmt.Sprintf("runs[%d]", i)
		if run.RunName == "" {
			result.addError(field+".run_name", "required key missing or empty")
		}
		if run.Architecture == "" {
			result.addError(field+".architecture", "required key missing or empty")
		}
		if run.RunName != "" {
			if seen[run.RunName] {
				result.addError(field+".run_name", fmt.Sprintf("duplicate run name %q", run.RunName))
			}
			seen[run.RunName] = true
		}
		for _, key := range run.OverrideKeys() {
			if _, inBase := cfg.Hyper[key]; inBase || knownHyperKeys[key] {
				continue
			}
			result.addWarning("%s overrides %q, which is not set in the base config", field, key)
		}
	}
}

func validatePolicies(cfg *Config, result *Result) {
	for i, p := range cfg.Intervention.Policies {
		field := fmt.Sprintf("intervention_config.intervention_policies[%d]", i)
		if p.Policy == "" {
			result.addError(field+".policy", "required key missing or empty")
		}
		if p.GroupLevel == nil {
			result.addError(field+".group_level", "required key missing")
		}
		if p.UsePrior == nil {
			result.addError(field+".use_prior", "required key missing")
		}
	}
}

func validateDigits(cfg *Config, result *Result) {
	if cfg.Dataset.SelectedDigits.IsZero() {
		return
	}
	if _, err := cfg.Dataset.SelectedDigits.Normalize(cfg.Dataset.NumOperands); err != nil {
		result.addError("dataset_config.selected_digits", err.Error())
	}
}

func validateGrid(cfg *Config, result *Result) {
	rawVars, ok := cfg.Hyper[KeyGridVariables]
	if !ok {
		return
	}

	vars, ok := rawVars.([]any)
	if !ok {
		result.addError(KeyGridVariables, "must be a list of field names")
		return
	}

	var listLens []int
	for _, rv := range vars {
		name, ok := rv.(string)
		if !ok {
			result.addError(KeyGridVariables, fmt.Sprintf("variable name %v is not a string", rv))
			continue
		}
		val, exists := cfg.Hyper[name]
		if !exists {
			result.addError(KeyGridVariables, fmt.Sprintf("variable %q is not a field in the config", name))
			continue
		}
		options, ok := val.([]any)
		if !ok {
			result.addError(name, "grid variable must hold a list of candidate values")
			continue
		}
		if len(options) == 0 {
			result.addError(name, "grid variable candidate list is empty")
			continue
		}
		listLens = append(listLens, len(options))
	}

	if mode, _ := cfg.String(KeyGridSearchMode); mode == GridModePaired {
		for _, n := range listLens {
			if n != listLens[0] {
				result.addError(KeyGridSearchMode, "paired grid variables must have equal-length candidate lists")
				break
			}
		}
	}
}

// knownHyperKeys lists the hyperparameter names the external trainer
// recognizes on run descriptors even when absent from the base config.
var knownHyperKeys = map[string]bool{
	"c_extractor_arch":           true,
	"learning_rate":              true,
	"weight_decay":               true,
	"momentum":                   true,
	"optimizer":                  true,
	"emb_size":                   true,
	"concept_loss_weight":        true,
	"embedding_activation":       true,
	"max_epochs":                 true,
	"patience":                   true,
	"check_val_every_n_epoch":    true,
	"early_stopping_monitor":     true,
	"early_stopping_mode":        true,
	"early_stopping_delta":       true,
	"labeled_ratio":              true,
	"seed":                       true,
	"bool":                       true,
	"extra_dims":                 true,
	"sigmoidal_prob":             true,
	"sigmoidal_extra_capacity":   true,
	"shared_prob_gen":            true,
	"training_intervention_prob": true,
	"intervention_weight":        true,
	"intervention_task_discount": true,
	"bottleneck_nonlinear":       true,
}

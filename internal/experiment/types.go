// Package experiment defines the concept-embedding experiment configuration
// schema and the operations on it: loading, validation, expression
// resolution, grid expansion, and run overlays.
package experiment

import (
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Config is the top-level experiment document.
//
// The typed sections cover the structured parts of the document; every flat
// scalar hyperparameter (learning_rate, max_epochs, ...) lives in the inline
// Hyper map so that grid expansion and run overlays can treat them
// uniformly. The document is read once and treated as immutable: operations
// that change values return a new Config.
type Config struct {
	Dataset      DatasetConfig      `yaml:"dataset_config"`
	Intervention InterventionConfig `yaml:"intervention_config,omitempty"`
	Runs         []Run              `yaml:"runs,omitempty"`

	Hyper map[string]any `yaml:",inline"`
}

// DatasetConfig holds dataset identity, storage location, loading
// parallelism, per-operand label selection, and sampling/noise parameters.
type DatasetConfig struct {
	Dataset          string         `yaml:"dataset"`
	RootDir          string         `yaml:"root_dir,omitempty"`
	NumWorkers       int            `yaml:"num_workers,omitempty"`
	BatchSize        int            `yaml:"batch_size,omitempty"`
	NumOperands      int            `yaml:"num_operands,omitempty"`
	SelectedDigits   DigitSelection `yaml:"selected_digits,omitempty"`
	TrainDatasetSize int            `yaml:"train_dataset_size,omitempty"`
	TestDatasetSize  int            `yaml:"test_dataset_size,omitempty"`
	SamplingPercent  float64        `yaml:"sampling_percent,omitempty"`
	SamplingGroups   bool           `yaml:"sampling_groups,omitempty"`
	ValPercent       *float64       `yaml:"val_percent,omitempty"`
	NoiseLevel       float64        `yaml:"noise_level,omitempty"`
	TestNoiseLevel   *float64       `yaml:"test_noise_level,omitempty"`
	UncertainWidth   float64        `yaml:"uncertain_width,omitempty"`
	Mixing           *bool          `yaml:"mixing,omitempty"`
	Threshold        *bool          `yaml:"threshold,omitempty"`
	EvenConcepts     bool           `yaml:"even_concepts,omitempty"`
	EvenLabels       bool           `yaml:"even_labels,omitempty"`
	ThresholdLabels  *int           `yaml:"threshold_labels,omitempty"`
	WeightLoss       bool           `yaml:"weight_loss,omitempty"`
}

// InterventionConfig holds competence levels, intervention frequency and
// batch size, and the ordered list of policy descriptors.
type InterventionConfig struct {
	CompetenceLevels      []float64          `yaml:"competence_levels,omitempty"`
	InterventionFreq      int                `yaml:"intervention_freq,omitempty"`
	InterventionBatchSize int                `yaml:"intervention_batch_size,omitempty"`
	Policies              []PolicyDescriptor `yaml:"intervention_policies,omitempty"`
}

// PolicyDescriptor names an intervention strategy the external trainer
// applies at evaluation time. GroupLevel and UsePrior are required keys;
// pointers distinguish "absent" from "false" during validation.
type PolicyDescriptor struct {
	Policy     string `yaml:"policy"`
	GroupLevel *bool  `yaml:"group_level"`
	UsePrior   *bool  `yaml:"use_prior"`

	Extra map[string]any `yaml:",inline"`
}

// Run is a run descriptor: an architecture name, a run name, and an
// arbitrary subset of hyperparameter overrides.
type Run struct {
	RunName      string `yaml:"run_name"`
	Architecture string `yaml:"architecture"`

	Overrides map[string]any `yaml:",inline"`
}

// OverrideKeys returns the run's override keys in sorted order.
func (r Run) OverrideKeys() []string {
	keys := make([]string, 0, len(r.Overrides))
	for k := range r.Overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// DigitSelection is the selected_digits field. The document may carry either
// a flat digit list (applied to every operand) or a per-operand list of
// lists; both shapes survive re-serialization unchanged.
type DigitSelection struct {
	Flat       []int
	PerOperand [][]int
}

// IsZero reports whether no digits were selected. It also makes the
// omitempty marshal behavior work for the struct form.
func (d DigitSelection) IsZero() bool {
	return len(d.Flat) == 0 && len(d.PerOperand) == 0
}

// UnmarshalYAML accepts both the flat and the per-operand shape.
func (d *DigitSelection) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode {
		return fmt.Errorf("selected_digits: expected a sequence, got %s", node.Tag)
	}

	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		var nested [][]int
		if err := node.Decode(&nested); err != nil {
			return fmt.Errorf("selected_digits: %w", err)
		}
		d.PerOperand = nested
		return nil
	}

	var flat []int
	if err := node.Decode(&flat); err != nil {
		return fmt.Errorf("selected_digits: %w", err)
	}
	d.Flat = flat
	return nil
}

// MarshalYAML emits the original shape.
func (d DigitSelection) MarshalYAML() (any, error) {
	if len(d.PerOperand) > 0 {
		return d.PerOperand, nil
	}
	return d.Flat, nil
}

// Normalize returns one digit list per operand. A flat list is replicated
// for every operand; a per-operand list must match numOperands exactly.
func (d DigitSelection) Normalize(numOperands int) ([][]int, error) {
	if numOperands < 1 {
		return nil, fmt.Errorf("num_operands must be at least 1, got %d", numOperands)
	}

	if len(d.PerOperand) > 0 {
		if len(d.PerOperand) != numOperands {
			return nil, fmt.Errorf(
				"selected_digits has %d operand lists but num_operands is %d",
				len(d.PerOperand), numOperands,
			)
		}
		out := make([][]int, numOperands)
		for i, digits := range d.PerOperand {
			out[i] = append([]int(nil), digits...)
		}
		return out, nil
	}

	digits := d.Flat
	if len(digits) == 0 {
		// Trainer default: binary digit task per operand.
		digits = []int{0, 1}
	}
	out := make([][]int, numOperands)
	for i := range out {
		out[i] = append([]int(nil), digits...)
	}
	return out, nil
}

// Defaults the external trainer documents for absent optional keys.
const (
	DefaultBatchSize        = 512
	DefaultValPercent       = 0.2
	DefaultNumOperands      = 2
	DefaultTrainDatasetSize = 30000
	DefaultTestDatasetSize  = 10000
	DefaultSamplingPercent  = 1.0
	DefaultInterventionFreq = 1
	DefaultGridSearchMode   = "exhaustive"
)

// WithDefaults returns a copy of the config with documented defaults applied
// to unset fields. The receiver is not modified.
func (c *Config) WithDefaults() *Config {
	out := c.clone()

	if out.Dataset.BatchSize == 0 {
		out.Dataset.BatchSize = DefaultBatchSize
	}
	if out.Dataset.NumOperands == 0 {
		out.Dataset.NumOperands = DefaultNumOperands
	}
	if out.Dataset.TrainDatasetSize == 0 {
		out.Dataset.TrainDatasetSize = DefaultTrainDatasetSize
	}
	if out.Dataset.TestDatasetSize == 0 {
		out.Dataset.TestDatasetSize = DefaultTestDatasetSize
	}
	if out.Dataset.SamplingPercent == 0 {
		out.Dataset.SamplingPercent = DefaultSamplingPercent
	}
	if out.Dataset.ValPercent == nil {
		v := DefaultValPercent
		out.Dataset.ValPercent = &v
	}
	if out.Intervention.InterventionFreq == 0 {
		out.Intervention.InterventionFreq = DefaultInterventionFreq
	}
	if _, ok := out.Hyper[KeyGridSearchMode]; !ok {
		if _, grid := out.Hyper[KeyGridVariables]; grid {
			out.Hyper[KeyGridSearchMode] = DefaultGridSearchMode
		}
	}

	return out
}

// clone returns a deep copy of the config.
func (c *Config) clone() *Config {
	out := *c

	out.Hyper = copyMap(c.Hyper)

	out.Runs = make([]Run, len(c.Runs))
	for i, r := range c.Runs {
		out.Runs[i] = Run{
			RunName:      r.RunName,
			Architecture: r.Architecture,
			Overrides:    copyMap(r.Overrides),
		}
	}

	out.Intervention.CompetenceLevels = append([]float64(nil), c.Intervention.CompetenceLevels...)
	out.Intervention.Policies = make([]PolicyDescriptor, len(c.Intervention.Policies))
	for i, p := range c.Intervention.Policies {
		out.Intervention.Policies[i] = PolicyDescriptor{
			Policy:     p.Policy,
			GroupLevel: copyPtr(p.GroupLevel),
			UsePrior:   copyPtr(p.UsePrior),
			Extra:      copyMap(p.Extra),
		}
	}

	out.Dataset.ValPercent = copyPtr(c.Dataset.ValPercent)
	out.Dataset.TestNoiseLevel = copyPtr(c.Dataset.TestNoiseLevel)
	out.Dataset.Mixing = copyPtr(c.Dataset.Mixing)
	out.Dataset.Threshold = copyPtr(c.Dataset.Threshold)
	out.Dataset.ThresholdLabels = copyPtr(c.Dataset.ThresholdLabels)
	out.Dataset.SelectedDigits = DigitSelection{
		Flat:       append([]int(nil), c.Dataset.SelectedDigits.Flat...),
		PerOperand: copyNested(c.Dataset.SelectedDigits.PerOperand),
	}

	return &out
}

// Well-known hyperparameter keys referenced by operations.
const (
	KeyArchitecture   = "architecture"
	KeyRunName        = "run_name"
	KeyGridVariables  = "grid_variables"
	KeyGridSearchMode = "grid_search_mode"
)

// Float reads a hyperparameter as a float64. YAML integers are widened.
func (c *Config) Float(key string) (float64, bool) {
	v, ok := c.Hyper[key]
	if !ok {
		return 0, false
	}
	return asFloat(v)
}

// Int reads a hyperparameter as an int.
func (c *Config) Int(key string) (int, bool) {
	v, ok := c.Hyper[key]
	if !ok {
		return 0, false
	}
	i, ok := v.(int)
	return i, ok
}

// String reads a hyperparameter as a string.
func (c *Config) String(key string) (string, bool) {
	v, ok := c.Hyper[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func asFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func copyPtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copyNested(in [][]int) [][]int {
	if in == nil {
		return nil
	}
	out := make([][]int, len(in))
	for i, row := range in {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// copyMap deep-copies a generic document fragment.
func copyMap(in map[string]any) map[string]any {
	if in == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = copyValue(v)
	}
	return out
}

func copyValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		return copyMap(val)
	case []any:
		out := make([]any, len(val))
		for i, e := range val {
			out[i] = copyValue(e)
		}
		return out
	default:
		return val
	}
}

// Package config provides cemctl tool configuration loading and management.
package config

// LogConfig contains logging-related settings.
type LogConfig struct {
	// Timestamps controls whether timestamps are shown in log output.
	// Default: false. Override with --timestamps flag.
	Timestamps *bool `json:"timestamps,omitempty" mapstructure:"timestamps"`
}

// Config represents the cemctl tool configuration.
// Loaded from ~/.cemctl/config.yaml; distinct from experiment files.
type Config struct {
	// ExperimentsDir is the default directory searched for experiment files
	// when a command is given a bare file name.
	// Env: CEMCTL_EXPERIMENTS_DIR
	ExperimentsDir string `json:"experimentsDir,omitempty" mapstructure:"experimentsDir"`

	// OutDir is the default output directory for `cemctl expand -o dir`.
	// Env: CEMCTL_OUT_DIR, Default: ./runs
	OutDir string `json:"outDir,omitempty" mapstructure:"outDir"`

	// Output is the default output format (yaml, json, table).
	// Env: CEMCTL_OUTPUT, Default: "yaml"
	Output string `json:"output,omitempty" mapstructure:"output"`

	// Log contains logging-related settings.
	Log LogConfig `json:"log,omitempty" mapstructure:"log"`
}

// DefaultConfigTemplate is the commented config file written by
// `cemctl config init`.
const DefaultConfigTemplate = `# cemctl configuration
# Env overrides: CEMCTL_EXPERIMENTS_DIR, CEMCTL_OUT_DIR, CEMCTL_OUTPUT

# Directory searched for experiment files given by bare name.
#experimentsDir: ~/experiments

# Output directory for 'cemctl expand -o dir'.
outDir: ./runs

# Default output format: yaml, json, table.
output: yaml

log:
  # Show timestamps in log output.
  timestamps: false
`

// DefaultConfig returns a Config with all default values populated.
// Used by `cemctl config init` to generate the initial config file.
func DefaultConfig() *Config {
	return &Config{
		OutDir: "./runs",
		Output: "yaml",
	}
}

// WithDefaults returns a copy of the config with defaults applied to
// unset fields.
func (c *Config) WithDefaults() *Config {
	out := *c
	if out.OutDir == "" {
		out.OutDir = "./runs"
	}
	if out.Output == "" {
		out.Output = "yaml"
	}
	return &out
}

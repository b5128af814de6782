package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `experimentsDir: /data/experiments
outDir: /data/runs
output: json
log:
  timestamps: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/data/experiments", cfg.ExperimentsDir)
	assert.Equal(t, "/data/runs", cfg.OutDir)
	assert.Equal(t, "json", cfg.Output)
	require.NotNil(t, cfg.Log.Timestamps)
	assert.True(t, *cfg.Log.Timestamps)
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")

	cfg, err := NewLoader().LoadWithDefaults(path)
	require.NoError(t, err)
	assert.Equal(t, "./runs", cfg.OutDir)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\n"), 0o600))

	t.Setenv("CEMCTL_OUTPUT", "table")
	t.Setenv("CEMCTL_OUT_DIR", "/env/runs")

	cfg, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, "table", cfg.Output)
	assert.Equal(t, "/env/runs", cfg.OutDir)
}

func TestLoadMalformedFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(":\n  - not yaml mapping\n::"), 0o600))

	_, err := NewLoader().Load(path)
	require.Error(t, err)
}

func TestConfigFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	exists, err := ConfigFileExists(path)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(path, []byte("output: yaml\n"), 0o600))
	exists, err = ConfigFileExists(path)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestWithDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{Output: "table", OutDir: "/custom"}
	out := cfg.WithDefaults()
	assert.Equal(t, "table", out.Output)
	assert.Equal(t, "/custom", out.OutDir)
}

func TestDefaultPaths(t *testing.T) {
	t.Setenv("HOME", "/home/researcher")

	paths, err := DefaultPaths()
	require.NoError(t, err)
	assert.Equal(t, "/home/researcher/.cemctl", paths.HomeDir)
	assert.Equal(t, "/home/researcher/.cemctl/config.yaml", paths.ConfigFile)
}

func TestGetConfigFileEnvOverride(t *testing.T) {
	t.Setenv("CEMCTL_CONFIG", "/elsewhere/config.yaml")

	path, err := GetConfigFile()
	require.NoError(t, err)
	assert.Equal(t, "/elsewhere/config.yaml", path)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/researcher")

	expanded, err := ExpandPath("~/experiments")
	require.NoError(t, err)
	assert.Equal(t, "/home/researcher/experiments", expanded)

	plain, err := ExpandPath("/abs/path")
	require.NoError(t, err)
	assert.Equal(t, "/abs/path", plain)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateAcceptsDefaults(t *testing.T) {
	assert.NoError(t, Validate(DefaultConfig()))
}

func TestValidateRejectsUnknownOutput(t *testing.T) {
	err := Validate(&Config{Output: "xml"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
	assert.Contains(t, err.Error(), "xml")
}

func TestValidateAcceptsCaseInsensitiveOutput(t *testing.T) {
	assert.NoError(t, Validate(&Config{Output: "JSON"}))
}

func TestValidateRejectsWhitespaceDirs(t *testing.T) {
	err := Validate(&Config{ExperimentsDir: "   "})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "experimentsDir")
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: json\n"), 0o600))

	assert.NoError(t, ValidateFile(path))

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("output: csv\n"), 0o600))
	assert.Error(t, ValidateFile(bad))
}

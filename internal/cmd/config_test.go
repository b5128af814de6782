package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
)

func TestConfigInitCreatesFiles(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	require.NoError(t, execRoot(t, "config", "init"))

	configFile := filepath.Join(home, ".cemctl", "config.yaml")
	info, err := os.Stat(configFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	isolateHome(t)

	require.NoError(t, execRoot(t, "config", "init"))

	err := execRoot(t, "config", "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrValidation)
}

func TestConfigInitForce(t *testing.T) {
	isolateHome(t)

	require.NoError(t, execRoot(t, "config", "init"))
	require.NoError(t, execRoot(t, "config", "init", "--force"))
}

func TestConfigVetAfterInit(t *testing.T) {
	isolateHome(t)

	require.NoError(t, execRoot(t, "config", "init"))
	require.NoError(t, execRoot(t, "config", "vet"))
}

func TestConfigVetMissingFile(t *testing.T) {
	isolateHome(t)

	err := execRoot(t, "config", "vet")
	require.Error(t, err)
	assert.ErrorIs(t, err, oerrors.ErrNotFound)
}

func TestConfigVetInvalidValues(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: xml\n"), 0o644))

	err := execRoot(t, "--config", path, "config", "vet")
	require.Error(t, err)
}

func TestConfigPathFlagPrecedence(t *testing.T) {
	isolateHome(t)
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: yaml\n"), 0o644))

	require.NoError(t, execRoot(t, "--config", path, "config", "path"))
}

func TestVersionCommand(t *testing.T) {
	isolateHome(t)

	require.NoError(t, execRoot(t, "version"))
}

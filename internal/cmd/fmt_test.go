package cmd

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
)

func TestFmtCheckCleanFile(t *testing.T) {
	isolateHome(t)

	// Encode output of a freshly formatted file is stable, so formatting
	// it first guarantees a clean check.
	path := writeExperiment(t, validExperiment)
	require.NoError(t, execRoot(t, "fmt", "--write", path))

	require.NoError(t, execRoot(t, "fmt", "--check", path))
}

func TestFmtCheckDrift(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, "seed:   42\ndataset_config: {dataset: mnist_add}\n")

	err := execRoot(t, "fmt", "--check", path)
	require.Error(t, err)

	var exitErr *oerrors.ExitError
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, ExitFormatDrift, exitErr.Code)
	assert.True(t, exitErr.Printed)
}

func TestFmtWriteRewritesFile(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, "seed:    42\ndataset_config: {dataset: mnist_add}\n")

	require.NoError(t, execRoot(t, "fmt", "--write", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "seed: 42")

	// A second check must now pass.
	require.NoError(t, execRoot(t, "fmt", "--check", path))
}

func TestFmtCheckAndWriteExclusive(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, validExperiment)

	err := execRoot(t, "fmt", "--check", "--write", path)
	require.Error(t, err)
}

func TestFmtPreservesComments(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, "# training seed\nseed:     42\ndataset_config:\n  dataset: mnist_add\n")

	require.NoError(t, execRoot(t, "fmt", "--write", path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# training seed")
}

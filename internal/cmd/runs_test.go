package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRunsTable(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, validExperiment)

	require.NoError(t, execRoot(t, "runs", path))
}

func TestRunsYAMLOutput(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, validExperiment)

	require.NoError(t, execRoot(t, "runs", path, "-o", "yaml"))
}

func TestRunsJSONOutput(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, validExperiment)

	require.NoError(t, execRoot(t, "runs", path, "-o", "json"))
}

func TestRunsNoRunsSection(t *testing.T) {
	isolateHome(t)
	path := writeExperiment(t, "seed: 1\ndataset_config:\n  dataset: mnist_add\n")

	require.NoError(t, execRoot(t, "runs", path))
}

func TestRunsMissingFile(t *testing.T) {
	isolateHome(t)

	err := execRoot(t, "runs", "no_such_experiment")
	require.Error(t, err)
}

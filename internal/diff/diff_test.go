package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompareIdentical(t *testing.T) {
	doc := []byte("seed: 42\nlearning_rate: 0.01\n")

	result, err := Compare(doc, doc, Options{FromName: "a", ToName: "b"})
	require.NoError(t, err)
	assert.False(t, result.HasChanges)
	assert.Equal(t, 0, result.Count)
	assert.Empty(t, result.Report)
	assert.Equal(t, "No changes", result.Summary())
}

func TestCompareKeyOrderIrrelevant(t *testing.T) {
	from := []byte("seed: 42\nlearning_rate: 0.01\n")
	to := []byte("learning_rate: 0.01\nseed: 42\n")

	result, err := Compare(from, to, Options{})
	require.NoError(t, err)
	assert.False(t, result.HasChanges)
}

func TestCompareCommentsIrrelevant(t *testing.T) {
	from := []byte("# baseline\nseed: 42\n")
	to := []byte("seed: 42 # tweaked comment\n")

	result, err := Compare(from, to, Options{})
	require.NoError(t, err)
	assert.False(t, result.HasChanges)
}

func TestCompareValueChange(t *testing.T) {
	from := []byte("seed: 42\nlearning_rate: 0.01\n")
	to := []byte("seed: 42\nlearning_rate: 0.1\n")

	result, err := Compare(from, to, Options{FromName: "before", ToName: "after"})
	require.NoError(t, err)
	assert.True(t, result.HasChanges)
	assert.Equal(t, 1, result.Count)
	assert.Contains(t, result.Report, "learning_rate")
	assert.Equal(t, "1 difference", result.Summary())
}

func TestCompareNestedChange(t *testing.T) {
	from := []byte("dataset_config:\n  batch_size: 512\n")
	to := []byte("dataset_config:\n  batch_size: 256\n")

	result, err := Compare(from, to, Options{})
	require.NoError(t, err)
	assert.True(t, result.HasChanges)
	assert.Contains(t, result.Report, "batch_size")
}

func TestCompareAgainstEmpty(t *testing.T) {
	result, err := Compare(nil, []byte("seed: 1\n"), Options{})
	require.NoError(t, err)
	assert.True(t, result.HasChanges)
}

func TestSummaryPlural(t *testing.T) {
	r := &Result{HasChanges: true, Count: 3}
	assert.Equal(t, "3 differences", r.Summary())
}

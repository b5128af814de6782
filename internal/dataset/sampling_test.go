package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func oneHotGeometry(t *testing.T) *Geometry {
	t.Helper()
	return &Geometry{
		NumOperands: 2,
		NumConcepts: 10,
		ConceptGroups: map[int][]int{
			0: {0, 1, 2, 3, 4},
			1: {5, 6, 7, 8, 9},
		},
	}
}

func TestSubsampleFullPercent(t *testing.T) {
	g := oneHotGeometry(t)

	sub, err := g.Subsample(SubsampleOptions{Percent: 1})
	require.NoError(t, err)

	assert.Equal(t, 10, sub.NumConcepts)
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, sub.SelectedConcepts)
	assert.Equal(t, g.ConceptGroups, sub.ConceptGroups)
}

func TestSubsampleInvalidPercent(t *testing.T) {
	g := oneHotGeometry(t)

	_, err := g.Subsample(SubsampleOptions{Percent: 0})
	require.Error(t, err)

	_, err = g.Subsample(SubsampleOptions{Percent: 1.5})
	require.Error(t, err)
}

func TestSubsampleDeterministic(t *testing.T) {
	g := oneHotGeometry(t)
	opts := SubsampleOptions{Percent: 0.5, Seed: 42}

	first, err := g.Subsample(opts)
	require.NoError(t, err)
	second, err := g.Subsample(opts)
	require.NoError(t, err)

	assert.Equal(t, first.SelectedConcepts, second.SelectedConcepts)
	assert.Equal(t, 5, first.NumConcepts)

	// Selection is sorted original indices.
	assert.IsIncreasing(t, first.SelectedConcepts)
}

func TestSubsampleSeedChangesSelection(t *testing.T) {
	// Large population so distinct seeds almost surely disagree.
	g := &Geometry{
		NumOperands:   1,
		NumConcepts:   100,
		ConceptGroups: map[int][]int{0: rangeInts(100)},
	}

	a, err := g.Subsample(SubsampleOptions{Percent: 0.1, Seed: 1})
	require.NoError(t, err)
	b, err := g.Subsample(SubsampleOptions{Percent: 0.1, Seed: 2})
	require.NoError(t, err)

	assert.NotEqual(t, a.SelectedConcepts, b.SelectedConcepts)
}

func TestSubsampleRemapPreservesGroups(t *testing.T) {
	g := oneHotGeometry(t)

	sub, err := g.Subsample(SubsampleOptions{Percent: 0.4, Seed: 7})
	require.NoError(t, err)

	// Dense indices cover exactly 0..n-1.
	assert.Equal(t, 4, sub.NumConcepts)
	var dense []int
	for _, group := range sub.ConceptGroups {
		dense = append(dense, group...)
	}
	assert.ElementsMatch(t, []int{0, 1, 2, 3}, dense)
}

func TestSubsampleByGroup(t *testing.T) {
	g := oneHotGeometry(t)

	sub, err := g.Subsample(SubsampleOptions{Percent: 0.5, Groups: true, Seed: 3})
	require.NoError(t, err)

	// Half of two groups rounds up to one whole surviving group.
	require.Len(t, sub.ConceptGroups, 1)
	assert.Equal(t, 5, sub.NumConcepts)
	for _, group := range sub.ConceptGroups {
		assert.Equal(t, []int{0, 1, 2, 3, 4}, group)
	}
}

func TestSubsamplePersistsSelection(t *testing.T) {
	g := oneHotGeometry(t)
	dir := t.TempDir()
	opts := SubsampleOptions{Percent: 0.5, Seed: 11, RootDir: dir}

	first, err := g.Subsample(opts)
	require.NoError(t, err)

	file := filepath.Join(dir, "selected_concepts_sampling_0.5_operands_2.json")
	_, statErr := os.Stat(file)
	require.NoError(t, statErr, "selection file should be persisted")

	// A different seed reuses the persisted selection.
	opts.Seed = 99
	second, err := g.Subsample(opts)
	require.NoError(t, err)
	assert.Equal(t, first.SelectedConcepts, second.SelectedConcepts)

	// Rerun ignores the persisted selection and reseeds.
	opts.Rerun = true
	third, err := g.Subsample(opts)
	require.NoError(t, err)
	fresh, err := g.Subsample(SubsampleOptions{Percent: 0.5, Seed: 99})
	require.NoError(t, err)
	assert.Equal(t, fresh.SelectedConcepts, third.SelectedConcepts)
}

func TestSubsampleCorruptSelectionFile(t *testing.T) {
	g := oneHotGeometry(t)
	dir := t.TempDir()

	file := filepath.Join(dir, "selected_concepts_sampling_0.5_operands_2.json")
	require.NoError(t, os.WriteFile(file, []byte("not json"), 0o644))

	_, err := g.Subsample(SubsampleOptions{Percent: 0.5, Seed: 1, RootDir: dir})
	require.Error(t, err)
}

func rangeInts(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

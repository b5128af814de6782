package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	oerrors "github.com/conceptlab/cemctl/internal/errors"
)

func TestExpandGridNoVariables(t *testing.T) {
	raw := map[string]any{"seed": 1}

	variants, err := ExpandGrid(raw)
	require.NoError(t, err)
	require.Len(t, variants, 1)
	assert.Equal(t, 1, variants[0]["seed"])

	// The variant is a copy, not the input map.
	variants[0]["seed"] = 2
	assert.Equal(t, 1, raw["seed"])
}

func TestExpandGridExhaustive(t *testing.T) {
	raw := map[string]any{
		"learning_rate":  []any{0.1, 0.01},
		"emb_size":       []any{16, 32, 64},
		"grid_variables": []any{"learning_rate", "emb_size"},
	}

	variants, err := ExpandGrid(raw)
	require.NoError(t, err)
	require.Len(t, variants, 6)

	// First variable varies slowest.
	assert.Equal(t, 0.1, variants[0]["learning_rate"])
	assert.Equal(t, 16, variants[0]["emb_size"])
	assert.Equal(t, 0.1, variants[1]["learning_rate"])
	assert.Equal(t, 32, variants[1]["emb_size"])
	assert.Equal(t, 0.1, variants[2]["learning_rate"])
	assert.Equal(t, 64, variants[2]["emb_size"])
	assert.Equal(t, 0.01, variants[3]["learning_rate"])
	assert.Equal(t, 16, variants[3]["emb_size"])

	// Grid bookkeeping keys are dropped from the variants.
	_, ok := variants[0][KeyGridVariables]
	assert.False(t, ok)
	_, ok = variants[0][KeyGridSearchMode]
	assert.False(t, ok)
}

func TestExpandGridPaired(t *testing.T) {
	raw := map[string]any{
		"learning_rate":    []any{0.1, 0.01},
		"emb_size":         []any{16, 32},
		"grid_variables":   []any{"learning_rate", "emb_size"},
		"grid_search_mode": "paired",
	}

	variants, err := ExpandGrid(raw)
	require.NoError(t, err)
	require.Len(t, variants, 2)
	assert.Equal(t, 0.1, variants[0]["learning_rate"])
	assert.Equal(t, 16, variants[0]["emb_size"])
	assert.Equal(t, 0.01, variants[1]["learning_rate"])
	assert.Equal(t, 32, variants[1]["emb_size"])
}

func TestExpandGridPairedLengthMismatch(t *testing.T) {
	raw := map[string]any{
		"learning_rate":    []any{0.1, 0.01},
		"emb_size":         []any{16},
		"grid_variables":   []any{"learning_rate", "emb_size"},
		"grid_search_mode": "paired",
	}

	_, err := ExpandGrid(raw)
	require.ErrorIs(t, err, oerrors.ErrExpansion)
}

func TestExpandGridMissingVariable(t *testing.T) {
	raw := map[string]any{
		"grid_variables": []any{"learning_rate"},
	}

	_, err := ExpandGrid(raw)
	require.ErrorIs(t, err, oerrors.ErrExpansion)
}

func TestExpandGridScalarVariable(t *testing.T) {
	raw := map[string]any{
		"learning_rate":  0.01,
		"grid_variables": []any{"learning_rate"},
	}

	_, err := ExpandGrid(raw)
	require.ErrorIs(t, err, oerrors.ErrExpansion)
}

func TestExpandGridGridAlias(t *testing.T) {
	raw := map[string]any{
		"learning_rate":    []any{0.1, 0.01},
		"grid_variables":   []any{"learning_rate"},
		"grid_search_mode": "grid",
	}

	variants, err := ExpandGrid(raw)
	require.NoError(t, err)
	assert.Len(t, variants, 2)
}

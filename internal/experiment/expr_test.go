package experiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvalExpressionsArithmetic(t *testing.T) {
	raw := map[string]any{
		"learning_rate": 0.01,
		"weight_decay":  "{{{learning_rate} / 2500}}",
		"emb_size":      16,
		"extra_dims":    "{{{emb_size} * 2}}",
	}

	out, err := EvalExpressions(raw, false)
	require.NoError(t, err)

	assert.InDelta(t, 0.000004, out["weight_decay"], 1e-12)
	assert.Equal(t, 32, out["extra_dims"])

	// Source values untouched.
	assert.Equal(t, 0.01, out["learning_rate"])
	assert.Equal(t, "{{{learning_rate} / 2500}}", raw["weight_decay"])
}

func TestEvalExpressionsNested(t *testing.T) {
	raw := map[string]any{
		"batch_base": 512,
		"intervention_config": map[string]any{
			"intervention_batch_size": "{{{batch_base} * 2}}",
		},
	}

	out, err := EvalExpressions(raw, false)
	require.NoError(t, err)

	ic := out["intervention_config"].(map[string]any)
	assert.Equal(t, 1024, ic["intervention_batch_size"])
}

func TestEvalExpressionsPlainPlaceholder(t *testing.T) {
	raw := map[string]any{
		"seed":        7,
		"results_dir": "results/seed_{seed}",
	}

	out, err := EvalExpressions(raw, false)
	require.NoError(t, err)
	assert.Equal(t, "results/seed_7", out["results_dir"])
}

func TestEvalExpressionsBool(t *testing.T) {
	raw := map[string]any{
		"emb_size": 16,
		"bool":     "{{{emb_size} < 8}}",
	}

	out, err := EvalExpressions(raw, false)
	require.NoError(t, err)
	assert.Equal(t, false, out["bool"])
}

func TestEvalExpressionsUnknownField(t *testing.T) {
	raw := map[string]any{
		"weight_decay": "{{{no_such} / 2}}",
	}

	_, err := EvalExpressions(raw, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_such")
}

func TestEvalExpressionsSoftMode(t *testing.T) {
	raw := map[string]any{
		"weight_decay": "{{{no_such} / 2}}",
		"seed":         1,
	}

	out, err := EvalExpressions(raw, true)
	require.NoError(t, err)
	assert.Equal(t, "{{{no_such} / 2}}", out["weight_decay"])
	assert.Equal(t, 1, out["seed"])
}

func TestEvalExpressionsStringWithoutBraces(t *testing.T) {
	raw := map[string]any{"optimizer": "sgd"}

	out, err := EvalExpressions(raw, false)
	require.NoError(t, err)
	assert.Equal(t, "sgd", out["optimizer"])
}

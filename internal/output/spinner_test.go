package output

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunWithSpinnerExecutesAction(t *testing.T) {
	// Test processes have no TTY, so the action runs directly.
	ran := false
	err := RunWithSpinner(context.Background(), func() error {
		ran = true
		return nil
	})

	require.NoError(t, err)
	assert.True(t, ran)
}

func TestRunWithSpinnerPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	err := RunWithSpinner(context.Background(), func() error {
		return boom
	}, WithTitle("Testing..."))

	assert.ErrorIs(t, err, boom)
}

package runner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRun_Success(t *testing.T) {
	r := New()
	res := r.Run(context.Background(), t.TempDir(), []string{"echo hello"})

	require.True(t, res.Succeeded)
	assert.Empty(t, res.Command, "successful runs keep logs small by clearing Command")
	assert.Contains(t, res.Log, "hello")
	assert.False(t, res.FinishedAt.Before(res.StartedAt))
}

func TestRun_NonZeroExit(t *testing.T) {
	r := New()
	res := r.Run(context.Background(), t.TempDir(), []string{"echo oops 1>&2", "exit 3"})

	require.False(t, res.Succeeded)
	assert.Contains(t, res.Command, "set -e")
	assert.Contains(t, res.Log, "oops")
}

func TestRun_SetDashEAbortsOnFirstFailure(t *testing.T) {
	r := New()
	res := r.Run(context.Background(), t.TempDir(), []string{"false", "echo should-not-run"})

	require.False(t, res.Succeeded)
	assert.NotContains(t, res.Log, "should-not-run")
}

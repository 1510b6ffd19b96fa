package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestSetup(t *testing.T) {
	t.Cleanup(zap.ReplaceGlobals(zap.NewNop()))

	prod, err := Setup(false, "txthistogram", "test")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, prod.Core().Enabled(zapcore.InfoLevel))
	assert.Same(t, prod, zap.L())

	dev, err := Setup(true, "txthistogram", "test")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zapcore.DebugLevel))
	assert.Same(t, dev, zap.L())
}

func TestSyncToleratesAnyStderr(t *testing.T) {
	assert.NotPanics(t, func() { Sync(zap.NewNop()) })
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewDefaultsByEnv(t *testing.T) {
	l, err := New("picks-api", "local")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = New("picks-api", "prod")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.DebugLevel))
	assert.True(t, l.Core().Enabled(zap.InfoLevel))
}

func TestWithLevel(t *testing.T) {
	l, err := New("embed-service", "prod", WithLevel("debug"))
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))

	l, err = New("embed-service", "local", WithLevel("warn"))
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	l, err = New("embed-service", "prod", WithLevel(""))
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.InfoLevel))

	_, err = New("embed-service", "prod", WithLevel("loud"))
	assert.ErrorContains(t, err, "LOG_LEVEL")
}

package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "debug.log")

	logger, closer, err := New(path)
	require.NoError(t, err)

	logger.Info().Str("component", "test").Msg("hello")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"message":"hello"`)
	assert.Contains(t, string(data), `"component":"test"`)
}

func TestNewEmptyPathIsNop(t *testing.T) {
	logger, closer, err := New("")
	require.NoError(t, err)
	require.NotNil(t, closer)

	// must not panic or write anywhere
	logger.Error().Msg("dropped")
	closer()
}

func TestNewAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	logger, closer, err := New(path)
	require.NoError(t, err)
	logger.Info().Msg("first")
	closer()

	logger, closer, err = New(path)
	require.NoError(t, err)
	logger.Info().Msg("second")
	closer()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

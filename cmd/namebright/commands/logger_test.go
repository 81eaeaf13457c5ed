package commands

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	logger := NewZapLogger(zap.New(core))

	logger.Debug("hidden", nil)
	logger.Warn("nameserver not applied", map[string]interface{}{
		"domain":     "example.com",
		"nameserver": "ns2.example.net",
	})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "nameserver not applied", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, map[string]interface{}{
		"domain":     "example.com",
		"nameserver": "ns2.example.net",
	}, entries[0].ContextMap())
}

func TestNewCLILogger(t *testing.T) {
	quiet, err := NewCLILogger(false)
	require.NoError(t, err)
	assert.False(t, quiet.logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, quiet.logger.Core().Enabled(zapcore.WarnLevel))

	verbose, err := NewCLILogger(true)
	require.NoError(t, err)
	assert.True(t, verbose.logger.Core().Enabled(zapcore.DebugLevel))
}

package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel(" WARN "))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("nonsense"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel(""))
}

func TestWithCarriesFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewFromZap(zap.New(core)).With("component", "store")

	log.Warn("insert failed", "op", "insert")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, "insert failed", entries[0].Message)
		fields := entries[0].ContextMap()
		assert.Equal(t, "store", fields["component"])
		assert.Equal(t, "insert", fields["op"])
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	log := NewNopLogger()
	log.Info("ignored", "k", "v")
	log.With("a", 1).Error("ignored")
}

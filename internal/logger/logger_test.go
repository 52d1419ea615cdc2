package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestZapLogger_WithCarriesFields(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	var l Logger = &zapLogger{logger: zap.New(core)}

	l.With(String("utility", "south")).Warn("partner feed degraded",
		Int("failed", 2), Error(errors.New("boom")))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "partner feed degraded", entries[0].Message)
	ctx := entries[0].ContextMap()
	assert.Equal(t, "south", ctx["utility"])
	assert.EqualValues(t, 2, ctx["failed"])
	assert.Equal(t, "boom", ctx["error"])
}

func TestNew(t *testing.T) {
	for _, debug := range []bool{true, false} {
		l, err := New(debug)
		require.NoError(t, err)
		l.Debug("hello", Any("debug", debug))
	}
	assert.NoError(t, NewNop().Sync())
}

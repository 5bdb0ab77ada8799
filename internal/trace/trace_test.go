package trace

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestTraceIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, TraceID(ctx))
	ctx = WithTraceID(ctx, "abc123")
	assert.Equal(t, "abc123", TraceID(ctx))
}

func TestNewTraceID(t *testing.T) {
	a, b := NewTraceID(), NewTraceID()
	assert.Len(t, a, 8)
	assert.NotEqual(t, a, b)
}

func TestLogCarriesTraceField(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	SetLogger(zap.New(core).Sugar())
	t.Cleanup(func() { SetLogger(nil) })

	ctx := WithTraceID(context.Background(), "deadbeef")
	Log(ctx, "analyze: start", "gender", "male")
	Warn(context.Background(), "geo: miss", "place", "火星")
	Debug(ctx, "detail")

	entries := logs.All()
	require.Len(t, entries, 3)
	assert.Equal(t, "deadbeef", entries[0].ContextMap()["trace"])
	assert.Equal(t, "male", entries[0].ContextMap()["gender"])
	assert.Equal(t, "-", entries[1].ContextMap()["trace"])
	assert.Equal(t, zap.WarnLevel, entries[1].Level)
}

func TestNewModes(t *testing.T) {
	for _, m := range []string{"dev", "prod", "off", ""} {
		l, err := New(m)
		require.NoError(t, err, m)
		assert.NotNil(t, l)
	}
}

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	for _, env := range []string{"local", "dev", "prod"} {
		l, err := NewLogger(env)
		require.NoError(t, err, env)
		require.NotNil(t, l, env)
	}

	_, err := NewLogger("docker")
	assert.Error(t, err, "unknown environments are rejected")

	_, err = NewLogger("prod", "loud")
	assert.Error(t, err, "invalid level override is rejected")

	l, err := NewLogger("prod", "debug")
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zap.DebugLevel))
}

func TestFromContext(t *testing.T) {
	fallback := zap.NewNop()

	assert.Same(t, fallback, FromContext(context.Background(), fallback))

	scoped := zap.NewNop().With(zap.String("request_id", "r-1"))
	ctx := ContextWithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, fallback))
}

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewLogger(t *testing.T) {
	l, err := NewLogger("prod", "warn")
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(zap.InfoLevel))
	assert.True(t, l.Core().Enabled(zap.WarnLevel))

	_, err = NewLogger("staging", "")
	assert.Error(t, err)

	_, err = NewLogger("dev", "loud")
	assert.Error(t, err)
}

func TestFromContext(t *testing.T) {
	def := zap.NewExample()
	assert.Same(t, def, FromContext(context.Background(), def))
	assert.NotNil(t, FromContext(context.Background(), nil))

	scoped := zap.NewExample().With(zap.String("request_id", "abc"))
	ctx := ContextWithLogger(context.Background(), scoped)
	assert.Same(t, scoped, FromContext(ctx, def))
}

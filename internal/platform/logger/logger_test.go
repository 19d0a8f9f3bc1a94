package logger

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	ctxLogger := slog.Default().With("source", "context")
	fallback := slog.Default().With("source", "fallback")

	tests := []struct {
		name string
		ctx  context.Context
		want *slog.Logger
	}{
		{
			name: "logger in context wins",
			ctx:  WithLogger(context.Background(), ctxLogger),
			want: ctxLogger,
		},
		{
			name: "fallback when context empty",
			ctx:  context.Background(),
			want: fallback,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FromContextOrDefault(tt.ctx, fallback)
			assert.Same(t, tt.want, got)
		})
	}
}

func TestFromContextOrDefaultNilFallback(t *testing.T) {
	t.Parallel()

	got := FromContextOrDefault(context.Background(), nil)
	assert.NotNil(t, got)
}

func TestFromContextMissing(t *testing.T) {
	t.Parallel()

	assert.Nil(t, FromContext(context.Background()))
}

package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithContextAndFromContext(t *testing.T) {
	l := zap.NewNop()
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestFromContextReturnsNopWhenMissing(t *testing.T) {
	l := FromContext(context.Background())
	assert.NotNil(t, l)
	// must not panic
	l.Info("should go nowhere")
}

func TestWithRequestID(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx, enriched := WithRequestID(context.Background(), l, "req-123")
	enriched.Info("hello")

	assert.Equal(t, "req-123", GetRequestID(ctx))
	entries := logs.All()
	assert.Len(t, entries, 1)
	assert.Equal(t, "req-123", entries[0].ContextMap()["request_id"])
}

func TestWithUserIDAndRole(t *testing.T) {
	l := zap.NewNop()
	ctx, _ := WithUserID(context.Background(), l, "user-1")
	ctx, _ = WithRole(ctx, l, "ADMIN_KIDS")

	assert.Equal(t, "user-1", GetUserID(ctx))
	assert.Equal(t, "ADMIN_KIDS", GetRole(ctx))
}

func TestGettersReturnEmptyWhenMissing(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetRequestID(ctx))
	assert.Empty(t, GetUserID(ctx))
	assert.Empty(t, GetRole(ctx))
}

func TestContextLoggerEnrichment(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := WithContext(context.Background(), l)
	ctx, _ = WithRequestID(ctx, l, "req-9")
	ctx, _ = WithUserID(ctx, l, "user-7")
	ctx, _ = WithRole(ctx, l, "CUSTOMER")

	L(ctx).Info("checkout started", zap.String("order_number", "ORD-1"))

	entries := logs.All()
	assert.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "req-9", fields["request_id"])
	assert.Equal(t, "user-7", fields["user_id"])
	assert.Equal(t, "CUSTOMER", fields["role"])
	assert.Equal(t, "ORD-1", fields["order_number"])
}

func TestContextLoggerWithNilLogger(t *testing.T) {
	cl := &ContextLogger{ctx: context.Background()}
	// must not panic with a nil underlying logger
	cl.Info("noop")
	cl.Error("noop")
}

func TestWithLoggerOverridesContext(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	override := zap.New(core)

	// context carries a nop logger, override must win
	ctx := WithContext(context.Background(), zap.NewNop())
	WithLogger(ctx, override).Info("captured")

	assert.Len(t, logs.All(), 1)
}

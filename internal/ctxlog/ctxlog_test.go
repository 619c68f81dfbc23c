package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}

func TestWith_AppendsAttributes(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(slog.NewTextHandler(&buf, nil))
	ctx := WithLogger(context.Background(), base)

	ctx, logger := With(ctx, "txn", "abc")
	require.NotNil(t, logger)

	FromContext(ctx).Info("hello")
	assert.Contains(t, buf.String(), "txn=abc")
	assert.Contains(t, buf.String(), "msg=hello")
}

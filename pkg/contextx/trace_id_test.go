package contextx_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"pos_catalog/pkg/contextx"
)

func TestTraceID(t *testing.T) {
	rq := require.New(t)
	ctx := context.Background()

	traceID, err := contextx.TraceIDFromContext(ctx)
	rq.Empty(traceID)
	rq.ErrorIs(err, contextx.ErrNoValue)
	rq.ErrorContains(err, "trace id: no value in context")

	ctx = contextx.WithTraceID(ctx, contextx.TraceID("test-trace-id"))

	traceID, err = contextx.TraceIDFromContext(ctx)
	rq.Equal("test-trace-id", traceID.String())
	rq.NoError(err)
}

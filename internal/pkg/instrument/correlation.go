package instrument

import (
	"context"

	"github.com/google/uuid"
)

type correlationKey struct{}

// CorrelationHeader carries the correlation ID over HTTP and message headers.
const CorrelationHeader = "X-Correlation-ID"

// SetCorrelationID returns a child context carrying id. An empty id is
// replaced by a fresh UUID.
func SetCorrelationID(ctx context.Context, id string) context.Context {
	if id == "" {
		id = uuid.NewString()
	}
	return context.WithValue(ctx, correlationKey{}, id)
}

// GetCorrelationID returns the correlation ID stored in ctx, or "".
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationKey{}).(string)
	return id
}

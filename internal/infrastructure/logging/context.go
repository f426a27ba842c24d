package logging

import (
	"context"

	"github.com/google/uuid"
)

type correlationIDKey struct{}

// WithCorrelationID stores the provided run identifier inside the context so
// every log line emitted underneath it can be tied back to one simulation
// run without threading an id through every call.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationIDKey{}, id)
}

// GetCorrelationID retrieves the run identifier from the context, returning
// an empty string when none is present.
func GetCorrelationID(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(correlationIDKey{}).(string)
	return id
}

// GenerateCorrelationID creates a new run identifier.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

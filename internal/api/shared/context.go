package shared

import (
	"context"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"time"

	"github.com/quickai/quickai-api/internal/identity"
)

// ContextKey is the key type for values this package places in contexts.
type ContextKey string

const (
	// UserContextKey is the context key for the authenticated user snapshot.
	UserContextKey ContextKey = "user"

	// TraceIDKey is the key for the trace ID in the request context.
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the number of bytes used to generate the trace ID.
	TraceIDLength = 16 // 32 hex characters
)

// WithUser places the authenticated user snapshot in the context. The
// snapshot is immutable for the life of the request: plan and usage count
// are what the identity provider reported at authentication time.
func WithUser(ctx context.Context, user *identity.User) context.Context {
	return context.WithValue(ctx, UserContextKey, user)
}

// UserFromContext retrieves the authenticated user snapshot from the context.
func UserFromContext(ctx context.Context) (*identity.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*identity.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// SetTraceID adds a fresh trace ID to the context for correlating logs and
// error responses.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, TraceIDKey, generateTraceID())
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// generateTraceID returns a 32-character hex string. If crypto/rand fails it
// falls back to a time-derived value rather than a static one.
func generateTraceID() string {
	b := make([]byte, TraceIDLength)
	if n, err := rand.Read(b); err != nil || n != TraceIDLength {
		binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
		binary.BigEndian.PutUint64(b[8:], uint64(time.Now().Unix()))
	}
	return hex.EncodeToString(b)
}

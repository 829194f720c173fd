// Package identity defines the boundary to the external identity platform.
// The platform is the source of truth for who a user is, which plan they are
// on, and how many free generations they have consumed. This package holds
// only the interfaces and value types; the HTTP implementation lives in
// internal/platform/clerk.
package identity

import (
	"context"
	"errors"

	"github.com/quickai/quickai-api/internal/domain"
)

// Sentinel errors for identity resolution.
var (
	// ErrUnauthenticated indicates the session token was missing, malformed,
	// expired, or otherwise not verifiable.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUserNotFound indicates the token verified but the identity platform
	// has no such user.
	ErrUserNotFound = errors.New("user not found")
)

// User is a point-in-time snapshot of the caller taken at authentication.
// FreeUsage is the count observed at that moment; it is not re-read during
// the request.
type User struct {
	ID        string
	Plan      domain.Plan
	FreeUsage int
}

// Provider resolves session tokens to user snapshots and records free-tier
// usage back to the identity platform.
type Provider interface {
	// CurrentUser verifies the session token and returns a snapshot of the
	// authenticated user. Returns ErrUnauthenticated when the token cannot
	// be verified.
	CurrentUser(ctx context.Context, sessionToken string) (*User, error)

	// IncrementFreeUsage records one additional free-tier use for the user.
	// seen is the usage count observed when the user was authenticated; the
	// stored value becomes seen+1.
	IncrementFreeUsage(ctx context.Context, userID string, seen int) error
}

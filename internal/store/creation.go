package store

import (
	"context"

	"github.com/quickai/quickai-api/internal/domain"
)

// CreationStore defines the interface for creation persistence.
// Creations are append-only: there is no update or delete operation.
type CreationStore interface {
	// Create saves a new creation to the store.
	// It handles domain validation internally.
	// Returns validation errors from the domain Creation if data is invalid.
	Create(ctx context.Context, creation *domain.Creation) error

	// FindByUserID retrieves all creations owned by the given user,
	// newest first. Returns an empty slice if the user has none.
	FindByUserID(ctx context.Context, userID string) ([]*domain.Creation, error)

	// FindPublished retrieves all image creations marked for the public
	// gallery, newest first. Returns an empty slice if there are none.
	FindPublished(ctx context.Context) ([]*domain.Creation, error)
}

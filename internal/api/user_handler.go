package api

import (
	"context"
	"net/http"

	"github.com/quickai/quickai-api/internal/api/shared"
	"github.com/quickai/quickai-api/internal/domain"
)

// CreationReader is the read surface the user handlers depend on.
type CreationReader interface {
	ListUserCreations(ctx context.Context, userID string) ([]*domain.Creation, error)
	ListPublishedCreations(ctx context.Context) ([]*domain.Creation, error)
}

// UserHandler serves the creation read endpoints.
type UserHandler struct {
	reader CreationReader
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(reader CreationReader) *UserHandler {
	return &UserHandler{reader: reader}
}

// GetUserCreations handles GET /api/user/get-user-creations, returning the
// caller's creations newest first.
func (h *UserHandler) GetUserCreations(w http.ResponseWriter, r *http.Request) {
	user, ok := userFromRequest(w, r)
	if !ok {
		return
	}

	creations, err := h.reader.ListUserCreations(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"creations": creations})
}

// GetPublishedCreations handles GET /api/user/get-published-creations, the
// public gallery of published image creations.
func (h *UserHandler) GetPublishedCreations(w http.ResponseWriter, r *http.Request) {
	if _, ok := userFromRequest(w, r); !ok {
		return
	}

	creations, err := h.reader.ListPublishedCreations(r.Context())
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	shared.RespondWithSuccess(w, r, map[string]interface{}{"creations": creations})
}

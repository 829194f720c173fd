package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// CreationType identifies what kind of content a creation holds.
type CreationType string

// Possible creation type values.
const (
	CreationTypeArticle CreationType = "article"
	CreationTypeEmail   CreationType = "email"
	CreationTypeImage   CreationType = "image"
)

// Common validation errors for Creation.
var (
	ErrEmptyCreationID      = errors.New("creation ID cannot be empty")
	ErrEmptyCreationUserID  = errors.New("creation user ID cannot be empty")
	ErrEmptyCreationPrompt  = errors.New("creation prompt cannot be empty")
	ErrEmptyCreationContent = errors.New("creation content cannot be empty")
	ErrInvalidCreationType  = errors.New("invalid creation type")
)

// Creation is an immutable record of one completed generation: the prompt the
// user supplied (or a synthesized one for removal capabilities), the produced
// content (text or a durable image URL), and the capability that produced it.
// Creations are write-once; there is no update or delete path.
type Creation struct {
	ID        uuid.UUID    `json:"id"`
	UserID    string       `json:"user_id"`
	Prompt    string       `json:"prompt"`
	Content   string       `json:"content"`
	Type      CreationType `json:"type"`
	Publish   bool         `json:"publish"`
	CreatedAt time.Time    `json:"created_at"`
}

// NewCreation creates a new Creation owned by the given user. It generates a
// new UUID, sets the creation timestamp, and validates the result.
func NewCreation(userID, prompt, content string, creationType CreationType, publish bool) (*Creation, error) {
	creation := &Creation{
		ID:        uuid.New(),
		UserID:    userID,
		Prompt:    prompt,
		Content:   content,
		Type:      creationType,
		Publish:   publish,
		CreatedAt: time.Now().UTC(),
	}

	if err := creation.Validate(); err != nil {
		return nil, err
	}

	return creation, nil
}

// Validate checks if the Creation has valid data.
// Returns an error if any field fails validation.
func (c *Creation) Validate() error {
	if c.ID == uuid.Nil {
		return ErrEmptyCreationID
	}

	if c.UserID == "" {
		return ErrEmptyCreationUserID
	}

	if c.Prompt == "" {
		return ErrEmptyCreationPrompt
	}

	if c.Content == "" {
		return ErrEmptyCreationContent
	}

	if !isValidCreationType(c.Type) {
		return ErrInvalidCreationType
	}

	return nil
}

// isValidCreationType checks if the given type is a valid CreationType.
func isValidCreationType(t CreationType) bool {
	switch t {
	case CreationTypeArticle, CreationTypeEmail, CreationTypeImage:
		return true
	default:
		return false
	}
}

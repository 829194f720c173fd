package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/generation"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/redact"
	"github.com/quickai/quickai-api/internal/store"
)

// Instruction templates handed to the text generator and the synthesized
// prompts recorded for removal capabilities.
const (
	articleInstructionFormat  = "Write a detailed %d-word article on %s"
	emailInstructionFormat    = "Write a professional email in a %s tone based on the following prompt:\n\n%s"
	backgroundRemovalPrompt   = "Remove background from image"
	objectRemovalPromptFormat = "Removed %s from image"
)

// emailMaxOutputTokens caps generated email length.
const emailMaxOutputTokens = 500

// CreationService orchestrates one generation request end to end: quota
// gate, provider invocation, persistence, usage accounting. The pipeline is
// linear and terminal on first failure.
type CreationService struct {
	textGenerator     generation.TextGenerator
	imageGenerator    generation.ImageGenerator
	backgroundRemover generation.BackgroundRemover
	objectRemover     generation.ObjectRemover
	creationStore     store.CreationStore
	identityProvider  identity.Provider
	logger            *slog.Logger
}

// NewCreationService creates a new CreationService with its provider
// adapters, store, and identity provider. If log is nil, a default logger
// will be used.
func NewCreationService(
	textGenerator generation.TextGenerator,
	imageGenerator generation.ImageGenerator,
	backgroundRemover generation.BackgroundRemover,
	objectRemover generation.ObjectRemover,
	creationStore store.CreationStore,
	identityProvider identity.Provider,
	log *slog.Logger,
) (*CreationService, error) {
	if textGenerator == nil {
		return nil, errors.New("text generator cannot be nil")
	}
	if imageGenerator == nil {
		return nil, errors.New("image generator cannot be nil")
	}
	if backgroundRemover == nil {
		return nil, errors.New("background remover cannot be nil")
	}
	if objectRemover == nil {
		return nil, errors.New("object remover cannot be nil")
	}
	if creationStore == nil {
		return nil, errors.New("creation store cannot be nil")
	}
	if identityProvider == nil {
		return nil, errors.New("identity provider cannot be nil")
	}
	if log == nil {
		log = slog.Default()
	}

	return &CreationService{
		textGenerator:     textGenerator,
		imageGenerator:    imageGenerator,
		backgroundRemover: backgroundRemover,
		objectRemover:     objectRemover,
		creationStore:     creationStore,
		identityProvider:  identityProvider,
		logger:            log.With(slog.String("component", "creation_service")),
	}, nil
}

// GenerateArticle generates an article of roughly the requested word length
// and records it as the user's creation.
func (s *CreationService) GenerateArticle(
	ctx context.Context,
	user *identity.User,
	prompt string,
	length int,
) (*domain.Creation, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}
	if length <= 0 {
		return nil, ErrInvalidLength
	}

	decision := Admit(user, domain.CapabilityArticle)
	if !decision.Allowed {
		return nil, &QuotaDeniedError{Reason: decision.Reason, Message: decision.Message}
	}

	// The requested word count shapes the instruction only; articles carry
	// no token cap.
	content, err := s.textGenerator.GenerateText(ctx, generation.TextRequest{
		Instruction: fmt.Sprintf(articleInstructionFormat, length, prompt),
	})
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, "generate_article", user, decision, prompt, content, domain.CreationTypeArticle, false)
}

// GenerateEmail generates an email in the requested tone and records it as
// the user's creation.
func (s *CreationService) GenerateEmail(
	ctx context.Context,
	user *identity.User,
	prompt string,
	tone string,
) (*domain.Creation, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	decision := Admit(user, domain.CapabilityEmail)
	if !decision.Allowed {
		return nil, &QuotaDeniedError{Reason: decision.Reason, Message: decision.Message}
	}

	content, err := s.textGenerator.GenerateText(ctx, generation.TextRequest{
		Instruction:     fmt.Sprintf(emailInstructionFormat, tone, prompt),
		MaxOutputTokens: emailMaxOutputTokens,
	})
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, "generate_email", user, decision, prompt, content, domain.CreationTypeEmail, false)
}

// GenerateImage generates an image from the prompt and records its durable
// URL. publish marks the creation for the public gallery.
func (s *CreationService) GenerateImage(
	ctx context.Context,
	user *identity.User,
	prompt string,
	publish bool,
) (*domain.Creation, error) {
	if prompt == "" {
		return nil, ErrEmptyPrompt
	}

	decision := Admit(user, domain.CapabilityImageGeneration)
	if !decision.Allowed {
		return nil, &QuotaDeniedError{Reason: decision.Reason, Message: decision.Message}
	}

	url, err := s.imageGenerator.GenerateImage(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, "generate_image", user, decision, prompt, url, domain.CreationTypeImage, publish)
}

// RemoveBackground strips the background from the uploaded image and records
// the resulting URL under a synthesized prompt.
func (s *CreationService) RemoveBackground(
	ctx context.Context,
	user *identity.User,
	imagePath string,
) (*domain.Creation, error) {
	if imagePath == "" {
		return nil, ErrEmptyImagePath
	}

	decision := Admit(user, domain.CapabilityBackgroundRemoval)
	if !decision.Allowed {
		return nil, &QuotaDeniedError{Reason: decision.Reason, Message: decision.Message}
	}

	url, err := s.backgroundRemover.RemoveBackground(ctx, imagePath)
	if err != nil {
		return nil, err
	}

	return s.finalize(ctx, "remove_background", user, decision, backgroundRemovalPrompt, url, domain.CreationTypeImage, false)
}

// RemoveObject removes the described object from the uploaded image and
// records the resulting URL under a synthesized prompt.
func (s *CreationService) RemoveObject(
	ctx context.Context,
	user *identity.User,
	imagePath string,
	object string,
) (*domain.Creation, error) {
	if imagePath == "" {
		return nil, ErrEmptyImagePath
	}
	if object == "" {
		return nil, ErrEmptyObject
	}

	decision := Admit(user, domain.CapabilityObjectRemoval)
	if !decision.Allowed {
		return nil, &QuotaDeniedError{Reason: decision.Reason, Message: decision.Message}
	}

	url, err := s.objectRemover.RemoveObject(ctx, imagePath, object)
	if err != nil {
		return nil, err
	}

	prompt := fmt.Sprintf(objectRemovalPromptFormat, object)
	return s.finalize(ctx, "remove_object", user, decision, prompt, url, domain.CreationTypeImage, false)
}

// ListUserCreations returns the caller's creations, newest first.
func (s *CreationService) ListUserCreations(
	ctx context.Context,
	userID string,
) ([]*domain.Creation, error) {
	creations, err := s.creationStore.FindByUserID(ctx, userID)
	if err != nil {
		return nil, NewCreationServiceError("list_user_creations", "failed to load creations", err)
	}
	return creations, nil
}

// ListPublishedCreations returns all published creations, newest first.
func (s *CreationService) ListPublishedCreations(ctx context.Context) ([]*domain.Creation, error) {
	creations, err := s.creationStore.FindPublished(ctx)
	if err != nil {
		return nil, NewCreationServiceError("list_published_creations", "failed to load creations", err)
	}
	return creations, nil
}

// finalize runs the tail of the pipeline shared by every generation
// operation: build the record, persist it, then account the usage. A
// persistence failure suppresses the increment; the stored record is the
// only durable evidence of the generation. The increment writes the
// successor of the count observed at authentication time, so concurrent
// requests from one user can overlap and settle below the true total.
func (s *CreationService) finalize(
	ctx context.Context,
	operation string,
	user *identity.User,
	decision Decision,
	prompt string,
	content string,
	creationType domain.CreationType,
	publish bool,
) (*domain.Creation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	creation, err := domain.NewCreation(user.ID, prompt, content, creationType, publish)
	if err != nil {
		return nil, NewCreationServiceError(operation, "invalid creation", err)
	}

	if err := s.creationStore.Create(ctx, creation); err != nil {
		log.Error("failed to persist creation",
			slog.String("operation", operation),
			slog.String("user_id", user.ID),
			slog.String("error", redact.Error(err)))
		return nil, NewCreationServiceError(operation, "failed to persist creation", err)
	}

	if decision.CountUsage {
		if err := s.identityProvider.IncrementFreeUsage(ctx, user.ID, user.FreeUsage); err != nil {
			log.Error("failed to record free usage",
				slog.String("operation", operation),
				slog.String("user_id", user.ID),
				slog.String("error", redact.Error(err)))
			return nil, NewCreationServiceError(operation, "failed to record usage", err)
		}
	}

	log.Info("creation completed",
		slog.String("operation", operation),
		slog.String("user_id", user.ID),
		slog.String("creation_id", creation.ID.String()),
		slog.String("type", string(creationType)))
	return creation, nil
}

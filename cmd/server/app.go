package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/quickai/quickai-api/internal/config"
	"github.com/quickai/quickai-api/internal/identity"
	"github.com/quickai/quickai-api/internal/platform/clerk"
	"github.com/quickai/quickai-api/internal/platform/clipdrop"
	"github.com/quickai/quickai-api/internal/platform/cloudinary"
	"github.com/quickai/quickai-api/internal/platform/gemini"
	"github.com/quickai/quickai-api/internal/platform/imaging"
	"github.com/quickai/quickai-api/internal/platform/postgres"
	"github.com/quickai/quickai-api/internal/service"
)

// application wires the configuration, adapters, and services together for
// the lifetime of the process.
type application struct {
	config           *config.Config
	logger           *slog.Logger
	db               *sql.DB
	identityProvider identity.Provider
	creationService  *service.CreationService
}

// newApplication builds every adapter and the creation service from the
// loaded configuration.
func newApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	db *sql.DB,
) (*application, error) {
	identityProvider, err := clerk.NewClient(cfg.Identity, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity client: %w", err)
	}

	textGenerator, err := gemini.NewGenerator(ctx, logger, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("failed to create text generator: %w", err)
	}

	renderer, err := clipdrop.NewClient(cfg.Image.ClipDropBaseURL, cfg.Image.ClipDropAPIKey, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create clipdrop client: %w", err)
	}

	mediaStore, err := cloudinary.NewMediaStore(cfg.Image.CloudinaryURL, cfg.Image.UploadFolder, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create media store: %w", err)
	}

	imageGenerator, err := imaging.NewGenerator(renderer, mediaStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create image generator: %w", err)
	}

	creationStore := postgres.NewPostgresCreationStore(db, logger)

	creationService, err := service.NewCreationService(
		textGenerator,
		imageGenerator,
		mediaStore,
		mediaStore,
		creationStore,
		identityProvider,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create creation service: %w", err)
	}

	return &application{
		config:           cfg,
		logger:           logger,
		db:               db,
		identityProvider: identityProvider,
		creationService:  creationService,
	}, nil
}

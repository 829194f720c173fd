package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/quickai/quickai-api/internal/domain"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/store"
)

// PostgresCreationStore implements the store.CreationStore interface
// using a PostgreSQL database as the storage backend.
type PostgresCreationStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCreationStore creates a new PostgreSQL implementation of the
// CreationStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCreationStore(db store.DBTX, logger *slog.Logger) *PostgresCreationStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCreationStore{
		db:     db,
		logger: logger.With(slog.String("component", "creation_store")),
	}
}

// Ensure PostgresCreationStore implements store.CreationStore interface
var _ store.CreationStore = (*PostgresCreationStore)(nil)

// Create implements store.CreationStore.Create
// It appends a new creation to the database, handling domain validation.
// Returns validation errors from the domain Creation if data is invalid.
func (s *PostgresCreationStore) Create(ctx context.Context, creation *domain.Creation) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := creation.Validate(); err != nil {
		log.Warn("creation validation failed during create",
			slog.String("error", err.Error()),
			slog.String("creation_id", creation.ID.String()))
		return err
	}

	query := `
		INSERT INTO creations (id, user_id, prompt, content, type, publish, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		creation.ID,
		creation.UserID,
		creation.Prompt,
		creation.Content,
		creation.Type,
		creation.Publish,
		creation.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create creation",
			slog.String("error", err.Error()),
			slog.String("creation_id", creation.ID.String()),
			slog.String("user_id", creation.UserID))
		return MapError(err)
	}

	log.Info("creation stored",
		slog.String("creation_id", creation.ID.String()),
		slog.String("user_id", creation.UserID),
		slog.String("type", string(creation.Type)))
	return nil
}

// FindByUserID implements store.CreationStore.FindByUserID
// It retrieves all creations owned by the given user, newest first.
func (s *PostgresCreationStore) FindByUserID(
	ctx context.Context,
	userID string,
) ([]*domain.Creation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, prompt, content, type, publish, created_at
		FROM creations
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		log.Error("failed to query creations by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID))
		return nil, MapError(err)
	}

	return s.scanCreations(ctx, rows)
}

// FindPublished implements store.CreationStore.FindPublished
// It retrieves all creations marked for the public gallery, newest first.
func (s *PostgresCreationStore) FindPublished(ctx context.Context) ([]*domain.Creation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, user_id, prompt, content, type, publish, created_at
		FROM creations
		WHERE publish = TRUE
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query published creations",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	return s.scanCreations(ctx, rows)
}

// scanCreations drains the given rows into domain creations.
func (s *PostgresCreationStore) scanCreations(
	ctx context.Context,
	rows *sql.Rows,
) ([]*domain.Creation, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var creations []*domain.Creation
	for rows.Next() {
		var creation domain.Creation
		var creationType string

		err := rows.Scan(
			&creation.ID,
			&creation.UserID,
			&creation.Prompt,
			&creation.Content,
			&creationType,
			&creation.Publish,
			&creation.CreatedAt,
		)
		if err != nil {
			log.Error("failed to scan creation row",
				slog.String("error", err.Error()))
			return nil, MapError(err)
		}

		creation.Type = domain.CreationType(creationType)
		creations = append(creations, &creation)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, MapError(err)
	}

	// Return empty slice instead of nil if nothing matched
	if creations == nil {
		creations = []*domain.Creation{}
	}

	return creations, nil
}

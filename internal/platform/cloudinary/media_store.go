// Package cloudinary implements the image hosting side of the pipeline on
// top of the Cloudinary API: durable uploads for generated images and the
// server-side background/object removal transformations.
package cloudinary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/quickai/quickai-api/internal/generation"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/redact"
)

// backgroundRemovalTransformation is applied server-side by Cloudinary
// during upload.
const backgroundRemovalTransformation = "e_background_removal"

// MediaStore hosts images on Cloudinary. It implements
// generation.BackgroundRemover and generation.ObjectRemover, and provides the
// durable upload used by the image-generation adapter.
type MediaStore struct {
	cld    *cloudinary.Cloudinary
	folder string
	logger *slog.Logger
}

// NewMediaStore creates a new MediaStore from a cloudinary:// connection URL.
// If logger is nil, a default logger will be used.
func NewMediaStore(cloudinaryURL, folder string, logger *slog.Logger) (*MediaStore, error) {
	if cloudinaryURL == "" {
		return nil, errors.New("cloudinary URL cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	return &MediaStore{
		cld:    cld,
		folder: folder,
		logger: logger.With(slog.String("component", "media_store")),
	}, nil
}

// Ensure MediaStore satisfies the removal adapter interfaces
var (
	_ generation.BackgroundRemover = (*MediaStore)(nil)
	_ generation.ObjectRemover     = (*MediaStore)(nil)
)

// Upload stores the given source (a local file path or an io.Reader) and
// returns its durable secure URL.
func (m *MediaStore) Upload(ctx context.Context, source interface{}) (string, error) {
	result, err := m.upload(ctx, source, uploader.UploadParams{Folder: m.folder})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// RemoveBackground implements generation.BackgroundRemover.
// It uploads the local image file with the background-removal transformation
// applied server-side by Cloudinary and returns the resulting URL. Exactly
// one outbound call is made.
func (m *MediaStore) RemoveBackground(ctx context.Context, imagePath string) (string, error) {
	result, err := m.upload(ctx, imagePath, uploader.UploadParams{
		Folder:         m.folder,
		Transformation: backgroundRemovalTransformation,
	})
	if err != nil {
		return "", err
	}
	return result.SecureURL, nil
}

// RemoveObject implements generation.ObjectRemover.
// It uploads the local image file, then builds a delivery URL with the
// generative-removal transformation parameterized by the object description.
// The description is passed through untouched; malformed values are
// Cloudinary's concern.
func (m *MediaStore) RemoveObject(ctx context.Context, imagePath, object string) (string, error) {
	result, err := m.upload(ctx, imagePath, uploader.UploadParams{Folder: m.folder})
	if err != nil {
		return "", err
	}

	img, err := m.cld.Image(result.PublicID)
	if err != nil {
		return "", generation.NewProviderError(0, "failed to build removal URL", "", err)
	}
	img.Transformation = ObjectRemovalTransformation(object)

	url, err := img.String()
	if err != nil {
		return "", generation.NewProviderError(0, "failed to build removal URL", "", err)
	}
	return url, nil
}

// upload performs one Cloudinary upload call and normalizes its failures.
func (m *MediaStore) upload(
	ctx context.Context,
	source interface{},
	params uploader.UploadParams,
) (*uploader.UploadResult, error) {
	log := logger.FromContextOrDefault(ctx, m.logger)

	result, err := m.cld.Upload.Upload(ctx, source, params)
	if err != nil {
		log.Error("cloudinary upload failed",
			slog.String("error", redact.Error(err)))
		return nil, generation.NewProviderError(0, "image upload failed", "", err)
	}

	// The SDK reports API-level rejections on the result rather than err.
	if result.Error.Message != "" {
		log.Error("cloudinary rejected upload",
			slog.String("error", result.Error.Message))
		return nil, generation.NewProviderError(
			0,
			"image upload failed",
			result.Error.Message,
			fmt.Errorf("cloudinary: %s", result.Error.Message),
		)
	}

	log.Debug("cloudinary upload complete",
		slog.String("public_id", result.PublicID))
	return result, nil
}

// ObjectRemovalTransformation returns the Cloudinary transformation string
// that generatively removes the described object.
func ObjectRemovalTransformation(object string) string {
	return fmt.Sprintf("e_gen_remove:prompt_%s", object)
}

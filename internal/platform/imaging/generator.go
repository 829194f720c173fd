// Package imaging composes the text-to-image renderer with the image host
// into the generation.ImageGenerator adapter: raw bytes from the renderer
// are uploaded for a durable URL before anything reaches the pipeline.
package imaging

import (
	"bytes"
	"context"
	"errors"
	"log/slog"

	"github.com/quickai/quickai-api/internal/generation"
	"github.com/quickai/quickai-api/internal/platform/logger"
)

// Renderer produces raw image bytes from a prompt.
// Implemented by the ClipDrop client.
type Renderer interface {
	TextToImage(ctx context.Context, prompt string) ([]byte, error)
}

// Uploader stores image data and returns a durable secure URL.
// Implemented by the Cloudinary media store.
type Uploader interface {
	Upload(ctx context.Context, source interface{}) (string, error)
}

// Generator implements generation.ImageGenerator by rendering the prompt and
// uploading the result. Two outbound calls per invocation: generate, then
// upload.
type Generator struct {
	renderer Renderer
	uploader Uploader
	logger   *slog.Logger
}

// NewGenerator creates a new image generation adapter.
// If logger is nil, a default logger will be used.
func NewGenerator(renderer Renderer, uploader Uploader, logger *slog.Logger) (*Generator, error) {
	if renderer == nil {
		return nil, errors.New("renderer cannot be nil")
	}

	if uploader == nil {
		return nil, errors.New("uploader cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Generator{
		renderer: renderer,
		uploader: uploader,
		logger:   logger.With(slog.String("component", "image_generator")),
	}, nil
}

// Ensure Generator implements generation.ImageGenerator
var _ generation.ImageGenerator = (*Generator)(nil)

// GenerateImage implements generation.ImageGenerator.
// The durable URL, not the raw bytes, is the normalized result.
func (g *Generator) GenerateImage(ctx context.Context, prompt string) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	data, err := g.renderer.TextToImage(ctx, prompt)
	if err != nil {
		return "", err
	}

	url, err := g.uploader.Upload(ctx, bytes.NewReader(data))
	if err != nil {
		return "", err
	}

	log.Debug("image generated and uploaded",
		slog.Int("image_bytes", len(data)))
	return url, nil
}

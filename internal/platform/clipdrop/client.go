// Package clipdrop is a minimal client for the ClipDrop text-to-image API.
// It covers the single endpoint this service uses and returns raw image
// bytes; hosting the result is the caller's concern.
package clipdrop

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/quickai/quickai-api/internal/generation"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/redact"
)

// textToImagePath is the only endpoint this client calls.
const textToImagePath = "/text-to-image/v1"

// maxErrorBodyBytes caps how much of an upstream error body is kept for
// diagnostics.
const maxErrorBodyBytes = 4 << 10

// Client calls the ClipDrop text-to-image API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewClient creates a new ClipDrop client.
// If logger is nil, a default logger will be used.
func NewClient(baseURL, apiKey string, logger *slog.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("clipdrop base URL cannot be empty")
	}

	if apiKey == "" {
		return nil, errors.New("clipdrop API key cannot be empty")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger.With(slog.String("component", "clipdrop_client")),
	}, nil
}

// TextToImage renders the prompt into an image and returns the raw bytes
// (PNG). Exactly one outbound call is made. Any transport failure or non-2xx
// response is returned as a *generation.ProviderError carrying the upstream
// status code when one was received.
func (c *Client) TextToImage(ctx context.Context, prompt string) ([]byte, error) {
	log := logger.FromContextOrDefault(ctx, c.logger)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if err := writer.WriteField("prompt", prompt); err != nil {
		return nil, generation.NewProviderError(0, "failed to build request", "", err)
	}
	if err := writer.Close(); err != nil {
		return nil, generation.NewProviderError(0, "failed to build request", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+textToImagePath, &body)
	if err != nil {
		return nil, generation.NewProviderError(0, "failed to build request", "", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	log.Debug("calling ClipDrop text-to-image",
		slog.Int("prompt_length", len(prompt)))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error("ClipDrop request failed",
			slog.String("error", redact.Error(err)))
		return nil, generation.NewProviderError(0, "image generation failed", "", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Error("failed to close response body", slog.String("error", err.Error()))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		log.Error("ClipDrop returned error status",
			slog.Int("status", resp.StatusCode))
		return nil, generation.NewProviderError(
			resp.StatusCode,
			"image generation failed",
			string(detail),
			fmt.Errorf("clipdrop returned status %d", resp.StatusCode),
		)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, generation.NewProviderError(0, "failed to read generated image", "", err)
	}

	log.Debug("ClipDrop image generated",
		slog.Int("image_bytes", len(data)))
	return data, nil
}

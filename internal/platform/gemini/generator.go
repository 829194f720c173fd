package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/quickai/quickai-api/internal/config"
	"github.com/quickai/quickai-api/internal/generation"
	"github.com/quickai/quickai-api/internal/platform/logger"
	"github.com/quickai/quickai-api/internal/redact"
	"google.golang.org/genai"
)

// defaultTemperature matches the generation temperature used for all text
// capabilities.
const defaultTemperature float32 = 0.7

// ErrInvalidConfig is returned when the generator configuration is invalid.
var ErrInvalidConfig = errors.New("invalid gemini generator configuration")

// Generator implements the generation.TextGenerator interface using
// Google's Gemini API.
type Generator struct {
	logger *slog.Logger
	client *genai.Client
	model  string
}

// NewGenerator creates a new Generator with the provided dependencies.
//
// Parameters:
//   - ctx: Context for the operation, which can be used for cancellation
//   - logger: A structured logger for operation logging
//   - cfg: LLM configuration containing the API key and model name
//
// Returns a properly initialized Generator or an error if initialization fails.
func NewGenerator(ctx context.Context, logger *slog.Logger, cfg config.LLMConfig) (*Generator, error) {
	if logger == nil {
		return nil, errors.New("logger cannot be nil")
	}

	if cfg.GeminiAPIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key cannot be empty", ErrInvalidConfig)
	}

	if cfg.ModelName == "" {
		return nil, fmt.Errorf("%w: model name cannot be empty", ErrInvalidConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create Gemini client: %v", ErrInvalidConfig, err)
	}

	return &Generator{
		logger: logger.With(slog.String("component", "gemini_generator")),
		client: client,
		model:  cfg.ModelName,
	}, nil
}

// Ensure Generator implements generation.TextGenerator
var _ generation.TextGenerator = (*Generator)(nil)

// GenerateText implements generation.TextGenerator.
// It makes exactly one call to the Gemini API with the constructed
// instruction, extracts the text from the first candidate, and substitutes
// generation.FallbackText when extraction yields nothing. Any transport or
// provider-side failure is returned as a *generation.ProviderError.
func (g *Generator) GenerateText(ctx context.Context, req generation.TextRequest) (string, error) {
	log := logger.FromContextOrDefault(ctx, g.logger)

	if req.Instruction == "" {
		return "", generation.NewProviderError(0, "instruction cannot be empty", "", nil)
	}

	cfg := &genai.GenerateContentConfig{
		Temperature: genai.Ptr[float32](defaultTemperature),
	}
	if req.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = req.MaxOutputTokens
	}

	log.Debug("calling Gemini API",
		slog.String("model", g.model),
		slog.Int("instruction_length", len(req.Instruction)))

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(req.Instruction), cfg)
	if err != nil {
		status := 0
		detail := ""
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			status = apiErr.Code
			detail = apiErr.Message
		}

		log.Error("Gemini API call failed",
			slog.String("error", redact.Error(err)),
			slog.Int("status", status))
		return "", generation.NewProviderError(status, "text generation failed", detail, err)
	}

	text := extractText(resp)
	if text == "" {
		log.Warn("Gemini response contained no text, using fallback",
			slog.String("model", g.model))
		return generation.FallbackText, nil
	}

	log.Debug("Gemini API call successful",
		slog.Int("content_length", len(text)))
	return text, nil
}

// extractText pulls the text out of the first candidate of a Gemini
// response. Returns an empty string when the response carries no text parts.
func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

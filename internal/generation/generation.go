package generation

import "context"

// FallbackText is substituted for the generated content when a provider
// responds successfully but text extraction yields nothing. Adapters apply it
// so downstream code can rely on content never being empty.
const FallbackText = "No content generated."

// TextRequest describes one text-generation call.
type TextRequest struct {
	// Instruction is the fully constructed instruction string sent to the
	// provider (the pipeline builds it from the user prompt and the
	// capability's template).
	Instruction string

	// MaxOutputTokens caps the response length when greater than zero.
	MaxOutputTokens int32
}

// TextGenerator generates text from an instruction string.
//
// Implementations must return a non-empty string on success (substituting
// FallbackText when the provider produced nothing) and a *ProviderError on
// any transport or provider-side failure.
type TextGenerator interface {
	GenerateText(ctx context.Context, req TextRequest) (string, error)
}

// ImageGenerator renders a prompt into an image and returns a durable URL
// for it. The raw image bytes never leave the adapter; hosting the result is
// part of the adapter's contract.
type ImageGenerator interface {
	GenerateImage(ctx context.Context, prompt string) (string, error)
}

// BackgroundRemover uploads a local image file with a server-side
// background-removal transformation applied and returns the resulting URL.
type BackgroundRemover interface {
	RemoveBackground(ctx context.Context, imagePath string) (string, error)
}

// ObjectRemover uploads a local image file and returns a transformation URL
// that removes the described object. The object description is passed through
// unvalidated beyond presence; malformed values are the external service's
// concern.
type ObjectRemover interface {
	RemoveObject(ctx context.Context, imagePath, object string) (string, error)
}

package api

// Common request structures

// GenerateArticleRequest defines the payload for the article endpoint.
type GenerateArticleRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Length int    `json:"length" validate:"required,gt=0"`
}

// GenerateEmailRequest defines the payload for the email endpoint.
type GenerateEmailRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	Tone   string `json:"tone"   validate:"required"`
}

// GenerateImageRequest defines the payload for the image generation endpoint.
type GenerateImageRequest struct {
	Prompt string `json:"prompt" validate:"required"`
	// Publish marks the image for the public gallery.
	Publish bool `json:"publish"`
}

// Package gemini implements the generation.TextGenerator interface using
// Google's Gemini API. It owns the provider-specific response shape: callers
// receive a single extracted text string (or the fallback placeholder) and
// normalized provider errors, never raw candidates.
package gemini

package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure and carry no infrastructure dependency.

var (
	// Modelfile errors
	ErrNoFromDirective = errors.New("Modelfile must include FROM directive")

	// Catalog errors
	ErrUnknownModel = errors.New("model not found in catalog")

	// API errors
	ErrMissingBaseURL = errors.New("missing OpenAI API base URL")
	ErrEmptyResponse  = errors.New("model returned an empty response")
)

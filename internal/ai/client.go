// Package ai provides the model-backed services: resume customization,
// company research, targeted refinement and email parsing.
package ai

import (
	"context"
	"errors"
)

// Client abstracts the completion provider.
type Client interface {
	Complete(ctx context.Context, prompt string, maxTokens int) (string, error)
}

var (
	ErrInvalidInput     = errors.New("invalid input")
	ErrInvalidLLMOutput = errors.New("invalid model output")
)

// ErrNotConfigured is returned by the placeholder client.
var ErrNotConfigured = errors.New("AI provider not configured")

// PlaceholderClient is a stub implementation used when no API key is set.
type PlaceholderClient struct{}

// Complete returns ErrNotConfigured.
func (PlaceholderClient) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	_ = ctx
	_ = prompt
	_ = maxTokens
	return "", ErrNotConfigured
}

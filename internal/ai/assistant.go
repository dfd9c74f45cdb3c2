// Package ai defines the contract judge backends implement.
package ai

import (
	"context"
	"errors"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrEmptyResponse is returned by backends that produced no text.
var ErrEmptyResponse = errors.New("model returned empty response")

// Generator sends one system instruction and one user message to a language
// model and returns its textual reply.
type Generator interface {
	GenerateContent(ctx context.Context, systemInstruction, message string) (string, error)
	Model() string
}

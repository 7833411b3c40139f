package generator

import (
	"context"
	"errors"
)

// ErrNoChoices is returned by an LLMClient when the provider answered
// successfully but produced no candidate completion.
var ErrNoChoices = errors.New("llm: empty choices")

// LLMClient sends one prompt to a completion provider and returns its text.
type LLMClient interface {
	Complete(ctx context.Context, prompt Prompt) (string, error)
}

// LLMSettings configures a provider client. Provider names the backend in
// errors; all supported backends speak the OpenAI chat completion API.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

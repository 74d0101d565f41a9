package provider

import (
	"context"
	"errors"
	"fmt"
)

// Name identifies a provider variant. The order of the constants is the
// selection priority.
type Name string

const (
	Gemini      Name = "gemini"
	OpenAI      Name = "openai"
	HuggingFace Name = "huggingface"
	None        Name = "none"
)

var (
	ErrMissingAPIKey = errors.New("api key not set")
	ErrEmptyResponse = errors.New("provider returned an empty response")
)

// Prompt is what a provider receives: a persona preamble and the user's
// question.
type Prompt struct {
	System   string
	Question string
}

// Provider generates answer text from a prompt.
type Provider interface {
	Name() Name
	Model() string
	Generate(ctx context.Context, p Prompt) (string, error)
}

// Status is the process-wide view of which provider, if any, is in use.
type Status struct {
	Name          Name   `json:"provider"`
	Model         string `json:"model,omitempty"`
	Available     bool   `json:"available"`
	UsingFallback bool   `json:"fallback"`
}

// FallbackStatus is reported when nothing is configured.
func FallbackStatus() Status {
	return Status{Name: None, Available: false, UsingFallback: true}
}

// HTTPError is a non-success response from a provider API.
type HTTPError struct {
	Provider   Name
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("%s: http %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: http %d", e.Provider, e.StatusCode)
}

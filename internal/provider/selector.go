package provider

import (
	"context"

	"github.com/rs/zerolog"
)

// Credentials configures a single provider variant.
type Credentials struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Settings carries credentials for every known provider.
type Settings struct {
	Gemini      Credentials
	OpenAI      Credentials
	HuggingFace Credentials
}

// Candidate is one entry in the priority list.
type Candidate struct {
	Name   Name
	APIKey string
	Build  func(ctx context.Context) (Provider, error)
}

// Candidates returns the fixed priority list: Gemini, then OpenAI, then
// Hugging Face.
func Candidates(s Settings) []Candidate {
	return []Candidate{
		{
			Name:   Gemini,
			APIKey: s.Gemini.APIKey,
			Build: func(ctx context.Context) (Provider, error) {
				return NewGeminiProvider(ctx, s.Gemini.APIKey, s.Gemini.Model, s.Gemini.BaseURL)
			},
		},
		{
			Name:   OpenAI,
			APIKey: s.OpenAI.APIKey,
			Build: func(context.Context) (Provider, error) {
				return NewOpenAIProvider(s.OpenAI.APIKey, s.OpenAI.Model, s.OpenAI.BaseURL)
			},
		},
		{
			Name:   HuggingFace,
			APIKey: s.HuggingFace.APIKey,
			Build: func(context.Context) (Provider, error) {
				return NewHuggingFaceProvider(s.HuggingFace.APIKey, s.HuggingFace.Model, s.HuggingFace.BaseURL)
			},
		},
	}
}

// Select walks candidates in order and returns the first one that has a
// credential and builds cleanly. A nil Provider with FallbackStatus means
// nothing is configured; that is not an error.
func Select(ctx context.Context, candidates []Candidate, logger zerolog.Logger) (Provider, Status) {
	for _, c := range candidates {
		if c.APIKey == "" {
			logger.Debug().Str("provider", string(c.Name)).Msg("no credentials, skipping")
			continue
		}
		p, err := c.Build(ctx)
		if err != nil {
			logger.Warn().Err(err).Str("provider", string(c.Name)).Msg("provider init failed, trying next")
			continue
		}
		logger.Info().Str("provider", string(p.Name())).Str("model", p.Model()).Msg("ai provider selected")
		return p, Status{Name: p.Name(), Model: p.Model(), Available: true, UsingFallback: false}
	}
	logger.Info().Msg("no ai provider configured, answering from fallback rules")
	return nil, FallbackStatus()
}

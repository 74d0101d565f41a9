// Package chat answers visitor questions, through a language-model provider
// when one is configured and from the local fallback rules otherwise.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/alexsisay/alemu-portfolio-backend/internal/fallback"
	"github.com/alexsisay/alemu-portfolio-backend/internal/metrics"
	"github.com/alexsisay/alemu-portfolio-backend/internal/provider"
)

const DefaultTimeout = 8 * time.Second

var ErrInvalidInput = errors.New("question must not be empty")

// Answer is produced fresh for every question. Text is never empty.
type Answer struct {
	Text      string
	Provider  provider.Status
	Timestamp time.Time
}

type Config struct {
	// Provider may be nil, in which case every answer comes from Matcher.
	Provider provider.Provider
	Status   provider.Status
	Matcher  *fallback.Matcher
	Persona  string
	Timeout  time.Duration
	Logger   zerolog.Logger
	Metrics  *metrics.Metrics
	Now      func() time.Time
}

// Responder holds no mutable state; it is safe for concurrent use.
type Responder struct {
	provider provider.Provider
	status   provider.Status
	matcher  *fallback.Matcher
	persona  string
	timeout  time.Duration
	log      zerolog.Logger
	metrics  *metrics.Metrics
	now      func() time.Time
}

func New(cfg Config) (*Responder, error) {
	if cfg.Matcher == nil {
		return nil, errors.New("chat: fallback matcher is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	status := cfg.Status
	if cfg.Provider == nil {
		status = provider.FallbackStatus()
	}
	return &Responder{
		provider: cfg.Provider,
		status:   status,
		matcher:  cfg.Matcher,
		persona:  cfg.Persona,
		timeout:  cfg.Timeout,
		log:      cfg.Logger,
		metrics:  cfg.Metrics,
		now:      cfg.Now,
	}, nil
}

// Status reports the provider chosen at startup.
func (r *Responder) Status() provider.Status {
	return r.status
}

// Ask answers question. The only errors are ErrInvalidInput and, when the
// caller's context is cancelled, the context error; provider failures are
// absorbed into a fallback answer.
func (r *Responder) Ask(ctx context.Context, question string) (Answer, error) {
	q := strings.TrimSpace(question)
	if q == "" {
		return Answer{}, ErrInvalidInput
	}

	if r.provider == nil {
		return r.fallback(q, provider.FallbackStatus()), nil
	}

	text, err := r.generate(ctx, q)
	if err == nil {
		r.observe(false)
		return Answer{
			Text: text,
			Provider: provider.Status{
				Name:      r.provider.Name(),
				Model:     r.provider.Model(),
				Available: true,
			},
			Timestamp: r.now(),
		}, nil
	}

	if ctx.Err() != nil {
		// caller went away, nobody is waiting for an answer
		return Answer{}, fmt.Errorf("chat: %w", ctx.Err())
	}

	r.log.Warn().
		Err(err).
		Str("provider", string(r.provider.Name())).
		Msg("provider call failed, answering from fallback rules")

	return r.fallback(q, provider.Status{
		Name:          r.provider.Name(),
		Model:         r.provider.Model(),
		Available:     false,
		UsingFallback: true,
	}), nil
}

func (r *Responder) generate(ctx context.Context, q string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	start := time.Now()
	text, err := r.provider.Generate(ctx, provider.Prompt{System: r.persona, Question: q})
	if r.metrics != nil {
		r.metrics.ObserveProviderCall(string(r.provider.Name()), time.Since(start))
	}
	if err != nil {
		return "", err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", provider.ErrEmptyResponse
	}
	return text, nil
}

func (r *Responder) fallback(q string, st provider.Status) Answer {
	r.observe(true)
	return Answer{
		Text:      r.matcher.Match(q),
		Provider:  st,
		Timestamp: r.now(),
	}
}

func (r *Responder) observe(usedFallback bool) {
	if r.metrics == nil {
		return
	}
	name := string(provider.None)
	if r.provider != nil {
		name = string(r.provider.Name())
	}
	r.metrics.ObserveAnswer(name, usedFallback)
}

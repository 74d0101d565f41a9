package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alexsisay/alemu-portfolio-backend/internal/api"
	"github.com/alexsisay/alemu-portfolio-backend/internal/chat"
	"github.com/alexsisay/alemu-portfolio-backend/internal/config"
	"github.com/alexsisay/alemu-portfolio-backend/internal/fallback"
	"github.com/alexsisay/alemu-portfolio-backend/internal/logging"
	"github.com/alexsisay/alemu-portfolio-backend/internal/metrics"
	"github.com/alexsisay/alemu-portfolio-backend/internal/provider"
	"github.com/alexsisay/alemu-portfolio-backend/internal/store"
)

// app is everything built once at startup. Nothing in it changes afterwards.
type app struct {
	cfg       *config.Config
	log       zerolog.Logger
	content   *store.MemoryStore
	responder *chat.Responder
	metrics   *metrics.Metrics
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	content, err := store.Load(cfg.ContentFile)
	if err != nil {
		return nil, err
	}
	matcher, err := fallback.Load(cfg.FallbackRulesFile)
	if err != nil {
		return nil, err
	}

	m := metrics.New()
	p, status := provider.Select(ctx, provider.Candidates(cfg.ProviderSettings()), log)

	responder, err := chat.New(chat.Config{
		Provider: p,
		Status:   status,
		Matcher:  matcher,
		Persona:  chat.Persona(content.Profile()),
		Timeout:  cfg.AITimeout,
		Logger:   log,
		Metrics:  m,
	})
	if err != nil {
		return nil, err
	}

	return &app{cfg: cfg, log: log, content: content, responder: responder, metrics: m}, nil
}

func (a *app) router() *gin.Engine {
	h := api.NewHandler(a.content, a.responder, version, a.log)
	return api.NewRouter(h, api.RouterConfig{
		AllowedOrigins: a.cfg.AllowedOrigins,
		Metrics:        a.metrics,
		Logger:         a.log,
	})
}

// serve blocks until ctx is cancelled, then drains in-flight requests.
func (a *app) serve(ctx context.Context) error {
	gin.SetMode(a.cfg.GinMode)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", a.cfg.Port),
		Handler:           a.router(),
		ReadHeaderTimeout: 10 * time.Second,
		// chat answers can take up to the provider timeout
		WriteTimeout: a.cfg.AITimeout + 10*time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		st := a.responder.Status()
		a.log.Info().
			Str("addr", srv.Addr).
			Str("provider", string(st.Name)).
			Bool("available", st.Available).
			Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	a.log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// Command applio-devserver runs an in-memory backend for local development.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blockedby/applio/internal/config"
	"github.com/blockedby/applio/internal/devserver"
	"github.com/blockedby/applio/internal/llm"
	"github.com/blockedby/applio/internal/logger"
	"github.com/blockedby/applio/internal/render"
)

func main() {
	// 1. Load config
	cfg, err := config.Load()
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// 2. Initialize logger
	if err := logger.Init(cfg.LogLevel, cfg.LogFile); err != nil {
		panic("failed to init logger: " + err.Error())
	}
	log := logger.Get()

	// 3. Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Pick generation and rendering backends
	opts := devserver.Options{
		Port:   cfg.DevPort,
		Tokens: map[string]string{cfg.DevToken: "dev-user"},
	}
	if cfg.LLMBaseURL != "" {
		client := llm.NewClient(llm.Config{
			BaseURL:     cfg.LLMBaseURL,
			Model:       cfg.LLMModel,
			APIKey:      cfg.LLMAPIKey,
			MaxTokens:   cfg.LLMMaxTokens,
			Temperature: float32(cfg.LLMTemperature),
			Timeout:     time.Duration(cfg.LLMTimeoutSec) * time.Second,
		})
		opts.Generator = llm.NewGenerator(client)
		log.Info().Str("model", cfg.LLMModel).Msg("using llm generator")
	}
	if cfg.RenderPDF {
		opts.Renderer = render.NewChromeRenderer()
		log.Info().Msg("using chrome pdf renderer")
	}

	// 5. Start server
	server := devserver.New(opts)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()
	log.Info().Int("port", cfg.DevPort).Str("token", cfg.DevToken).Msg("dev server started")

	// 6. Wait for shutdown
	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}

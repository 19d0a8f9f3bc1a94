package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/verbdojo/internal/config"
	"github.com/phrazzld/verbdojo/internal/platform/gemini"
	"github.com/phrazzld/verbdojo/internal/platform/logger"
	"github.com/phrazzld/verbdojo/internal/service/session"
	"github.com/phrazzld/verbdojo/internal/store"
	"github.com/phrazzld/verbdojo/internal/validation"
)

// application holds the initialized dependencies shared by the HTTP layer.
type application struct {
	config    *config.Config
	logger    *slog.Logger
	sessions  *store.SessionStore
	validator validation.Validator
}

// newApplication loads configuration and wires the engine's dependencies.
// The Gemini answer validator is optional: without an API key the server
// runs with exact-match grading only.
func newApplication(ctx context.Context) (*application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Setup(cfg.Server.LogLevel)
	log.Info("server configuration loaded",
		slog.Int("port", cfg.Server.Port),
		slog.String("log_level", cfg.Server.LogLevel),
		slog.Int("question_cap", cfg.Dojo.QuestionCap))

	app := &application{
		config:   cfg,
		logger:   log,
		sessions: store.NewSessionStore(),
	}

	if cfg.LLM.GeminiAPIKey != "" {
		validator, err := gemini.NewValidator(ctx, log, cfg.LLM)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize answer validator: %w", err)
		}
		app.validator = validator
		log.Info("gemini answer validator enabled", slog.String("model", cfg.LLM.ModelName))
	} else {
		log.Info("no gemini API key configured, using exact-match grading")
	}

	return app, nil
}

// sessionConfig converts the loaded bounds into the session package's form.
func (app *application) sessionConfig() session.Config {
	return session.Config{
		QuestionCap:      app.config.Dojo.QuestionCap,
		XPStreakInterval: app.config.Dojo.XPStreakInterval,
	}
}

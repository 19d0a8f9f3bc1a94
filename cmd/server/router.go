package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/phrazzld/verbdojo/internal/api"
	apiMiddleware "github.com/phrazzld/verbdojo/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes
// and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace)

	sessionHandler := api.NewSessionHandler(
		app.sessions,
		app.validator,
		app.sessionConfig(),
		app.logger,
	)

	r.Route("/api/sessions", func(r chi.Router) {
		r.Post("/", sessionHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", sessionHandler.Get)
			r.Post("/start", sessionHandler.Start)
			r.Post("/answers", sessionHandler.SubmitAnswer)
			r.Post("/taps", sessionHandler.Tap)
			r.Post("/exit", sessionHandler.Exit)
			r.Delete("/", sessionHandler.Delete)
		})
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}

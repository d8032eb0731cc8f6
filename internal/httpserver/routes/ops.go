package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/handlers"
)

func init() { RegisterOps(registerOps) }

func registerOps(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/infra", handlers.Infra(d))
	if d.MetricsHandler != nil {
		r.Handle("/metrics", d.MetricsHandler)
	}
}

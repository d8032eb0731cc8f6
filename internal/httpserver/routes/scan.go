package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/handlers"
)

func init() { Register(registerScan) }

func registerScan(r chi.Router, d deps.Deps) {
	r.Post("/scan", handlers.Scan(d))
	r.Get("/scan/presets", handlers.Presets(d))
}

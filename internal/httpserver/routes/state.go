package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/handlers"
)

func init() { Register(registerState) }

func registerState(r chi.Router, d deps.Deps) {
	r.Get("/state", handlers.State(d))
	r.Delete("/state", handlers.ForgetState(d))
	r.Post("/view", handlers.View(d))
	r.Post("/overlay", handlers.Overlay(d))
	r.Post("/preferences/dark-mode", handlers.ToggleDarkMode(d))
}

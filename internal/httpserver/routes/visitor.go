package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/handlers"
)

func init() { Register(registerCollections) }

// registerCollections mounts the per-visitor bookmark and history lists.
func registerCollections(r chi.Router, d deps.Deps) {
	r.Get("/bookmarks", handlers.Bookmarks(d))
	r.Post("/bookmarks/{id}", handlers.ToggleBookmark(d))
	r.Post("/bookmarks/{id}/open", handlers.OpenBookmark(d))

	r.Get("/history", handlers.History(d))
	r.Post("/history/{id}", handlers.SelectHistory(d))
}

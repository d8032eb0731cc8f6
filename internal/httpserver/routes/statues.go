package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/handlers"
)

func init() { Register(registerStatues) }

func registerStatues(r chi.Router, d deps.Deps) {
	r.Get("/statues", handlers.Statues(d))
	r.Route("/statues/{id}", func(r chi.Router) {
		r.Get("/", handlers.Statue(d))
		r.Get("/recommendations", handlers.Recommendations(d))
		r.Get("/map", handlers.Map(d))
		r.Get("/chat", handlers.ChatIntro(d))
		r.Post("/chat", handlers.Chat(d))
	})
}

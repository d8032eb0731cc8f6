package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
)

type entry struct {
	reg Registrar
	mws []Middleware
}

var (
	apiRegistry []entry
	opsRegistry []entry
)

// Register adds a visitor-facing registrar, mounted under /api.
func Register(reg Registrar, mws ...Middleware) {
	apiRegistry = append(apiRegistry, entry{reg: reg, mws: mws})
}

// RegisterOps adds an operator registrar, mounted at the root behind the
// CIDR allow list.
func RegisterOps(reg Registrar, mws ...Middleware) {
	opsRegistry = append(opsRegistry, entry{reg: reg, mws: mws})
}

// RegisterAll mounts the /api routes. Called once from server.New().
func RegisterAll(r chi.Router, d deps.Deps) { mount(r, d, apiRegistry) }

// RegisterAllOps mounts the ops routes. Called once from server.New().
func RegisterAllOps(r chi.Router, d deps.Deps) { mount(r, d, opsRegistry) }

func mount(r chi.Router, d deps.Deps, entries []entry) {
	for _, e := range entries {
		if len(e.mws) == 0 {
			e.reg(r, d)
			continue
		}
		e.reg(r.With(e.mws...), d)
	}
}

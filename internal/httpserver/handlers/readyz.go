package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
)

const readyzTimeout = 2 * time.Second

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Catalog int    `json:"catalog"`
	Storage string `json:"storage"`
	Error   string `json:"error,omitempty"`
}

// Readyz reports ready once the catalog is loaded and the storage answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{Ready: true, Catalog: d.Catalog.Count(), Storage: d.Storage.Backend()}

		ctx, cancel := context.WithTimeout(r.Context(), readyzTimeout)
		defer cancel()

		if err := d.Storage.Ping(ctx); err != nil {
			resp.Ready = false
			resp.Error = err.Error()
		}
		if resp.Catalog == 0 {
			resp.Ready = false
			resp.Error = "catalog empty"
		}

		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}

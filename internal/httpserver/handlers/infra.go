package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
)

type componentStatus struct {
	OK      bool   `json:"ok"`
	Mode    string `json:"mode,omitempty"`
	Impact  string `json:"impact,omitempty"`
	Error   string `json:"error,omitempty"`
	Loaded  *int   `json:"loaded,omitempty"`
	Source  string `json:"source,omitempty"`
	Since   string `json:"since,omitempty"`
	Breaker string `json:"breaker,omitempty"`
}

type sessionStatus struct {
	Active          int    `json:"active"`
	PendingReplies  int    `json:"pending_replies"`
	PersistFailures int64  `json:"persist_failures"`
	HeldWrites      int64  `json:"held_writes"`
	LastPersistErr  string `json:"last_persist_error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
	Sessions   sessionStatus              `json:"sessions"`
}

// Infra reports the health of every component for operators.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Catalog.Count()
		components := map[string]componentStatus{
			"catalog": {
				OK:     count > 0,
				Loaded: &count,
				Source: d.CatalogSource,
				Since:  d.Catalog.LoadedAt().Format(time.RFC3339),
			},
			"storage": checkStorage(r.Context(), d),
		}

		st := d.Sessions.Stats()
		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
			Sessions: sessionStatus{
				Active:          st.ActiveSessions,
				PendingReplies:  d.Replies.Pending(),
				PersistFailures: st.PersistFailures,
				HeldWrites:      st.HeldWrites,
				LastPersistErr:  st.LastPersistErr,
			},
		})
	}
}

// determineMode is "critical" without a catalog and "degraded" when
// visitor state cannot be persisted.
func determineMode(components map[string]componentStatus) string {
	if c, ok := components["catalog"]; ok && !c.OK {
		return "critical"
	}
	if s, ok := components["storage"]; ok && !s.OK {
		return "degraded"
	}
	return "operational"
}

func checkStorage(parent context.Context, d deps.Deps) componentStatus {
	cs := componentStatus{Mode: d.Storage.Backend()}
	if b, ok := d.Storage.(deps.BreakerReporter); ok {
		cs.Breaker = b.BreakerState()
	}

	ctx, cancel := context.WithTimeout(parent, readyzTimeout)
	defer cancel()

	if err := d.Storage.Ping(ctx); err != nil {
		cs.Error = err.Error()
		cs.Impact = "state-not-persisted"
		return cs
	}
	cs.OK = true
	return cs
}

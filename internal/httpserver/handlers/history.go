package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
)

type historyItem struct {
	Statue    domain.Statue `json:"statue"`
	Timestamp int64         `json:"timestamp"`
	Label     string        `json:"label"`
}

type historyResponse struct {
	History []historyItem `json:"history"`
	Count   int           `json:"count"`
}

// History lists scanned statues, most recent first.
func History(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		state := d.Sessions.State(r.Context(), id)
		now := d.Now()

		items := make([]historyItem, 0, len(state.History))
		for _, e := range state.History {
			items = append(items, historyItem{
				Statue:    e.Statue,
				Timestamp: e.Timestamp,
				Label:     domain.AgeLabel(e.Timestamp, now),
			})
		}
		writeJSON(w, http.StatusOK, historyResponse{History: items, Count: len(items)})
	}
}

// SelectHistory reopens a statue from the history without reordering it.
func SelectHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		target := domain.NormalizeID(chi.URLParam(r, "id"))

		state, err := d.Sessions.Do(r.Context(), id, func(cs *domain.ClientState) (domain.Changes, error) {
			if _, ok := d.Catalog.Get(target); !ok {
				return domain.NoChanges, domain.ErrUnknownStatue
			}
			return domain.NoChanges, cs.SelectFromHistory(target)
		})
		if errors.Is(err, domain.ErrUnknownStatue) || errors.Is(err, domain.ErrNotInHistory) {
			writeError(w, http.StatusNotFound, "Statue not in history")
			return
		}
		if err != nil {
			internalError(d, w, "history select failed", err)
			return
		}
		d.Replies.Cancel(id)
		writeJSON(w, http.StatusOK, newStateResponse(d, state))
	}
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
)

// Bookmarks lists the bookmarked statues. Ids no longer in the catalog
// are skipped.
func Bookmarks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		state := d.Sessions.State(r.Context(), id)

		list := make([]*domain.Statue, 0, len(state.Bookmarks))
		for _, b := range state.Bookmarks {
			if s, ok := d.Catalog.Get(b); ok {
				list = append(list, s)
			}
		}
		writeJSON(w, http.StatusOK, newStatuesResponse(list))
	}
}

type bookmarkResponse struct {
	StatueID   string   `json:"statueId"`
	Bookmarked bool     `json:"bookmarked"`
	Bookmarks  []string `json:"bookmarks"`
}

// ToggleBookmark adds or removes a statue from the bookmarks.
func ToggleBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		s, ok := pathStatue(d, w, r)
		if !ok {
			return
		}

		state, err := d.Sessions.Do(r.Context(), id, func(cs *domain.ClientState) (domain.Changes, error) {
			return cs.ToggleBookmark(s.ID), nil
		})
		if err != nil {
			internalError(d, w, "bookmark toggle failed", err)
			return
		}
		writeJSON(w, http.StatusOK, bookmarkResponse{
			StatueID:   s.ID,
			Bookmarked: state.IsBookmarked(s.ID),
			Bookmarks:  state.Bookmarks,
		})
	}
}

// OpenBookmark selects a statue from the bookmark list.
func OpenBookmark(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		target := chi.URLParam(r, "id")

		state, err := d.Sessions.Do(r.Context(), id, func(cs *domain.ClientState) (domain.Changes, error) {
			return domain.NoChanges, cs.SelectBookmarked(target, d.Catalog)
		})
		if errors.Is(err, domain.ErrUnknownStatue) {
			writeError(w, http.StatusNotFound, "Statue not found")
			return
		}
		if err != nil {
			internalError(d, w, "open bookmark failed", err)
			return
		}
		d.Replies.Cancel(id)
		writeJSON(w, http.StatusOK, newStateResponse(d, state))
	}
}

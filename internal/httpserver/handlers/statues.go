package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/statuary/internal/catalog"
	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
)

type statueResponse struct {
	*domain.Statue
	MapURL string `json:"mapUrl,omitempty"`
}

func newStatueResponse(s *domain.Statue) statueResponse {
	u, _ := s.MapURL()
	return statueResponse{Statue: s, MapURL: u}
}

type statuesResponse struct {
	Statues []statueResponse `json:"statues"`
	Count   int              `json:"count"`
}

func newStatuesResponse(list []*domain.Statue) statuesResponse {
	out := make([]statueResponse, 0, len(list))
	for _, s := range list {
		out = append(out, newStatueResponse(s))
	}
	return statuesResponse{Statues: out, Count: len(out)}
}

// pathStatue resolves the {id} URL parameter, answering 404 on a miss.
func pathStatue(d deps.Deps, w http.ResponseWriter, r *http.Request) (*domain.Statue, bool) {
	s, err := d.Catalog.Lookup(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusNotFound, "Statue not found")
		return nil, false
	}
	return s, true
}

// Statues lists the catalog in its configured order.
func Statues(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, newStatuesResponse(d.Catalog.All()))
	}
}

func Statue(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := pathStatue(d, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newStatueResponse(s))
	}
}

type recommendationsResponse struct {
	StatueID        string                   `json:"statueId"`
	Recommendations []*domain.Recommendation `json:"recommendations"`
}

// Recommendations returns up to three related statues with their scores.
func Recommendations(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		recos, err := d.Recommender.For(id)
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Statue not found")
			return
		}
		if err != nil {
			internalError(d, w, "recommendations failed", err)
			return
		}
		if recos == nil {
			recos = []*domain.Recommendation{}
		}
		writeJSON(w, http.StatusOK, recommendationsResponse{StatueID: domain.NormalizeID(id), Recommendations: recos})
	}
}

// Map redirects to a map search for the discovery place.
func Map(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, ok := pathStatue(d, w, r)
		if !ok {
			return
		}
		u, ok := s.MapURL()
		if !ok {
			writeError(w, http.StatusNotFound, "No coordinates known for this statue")
			return
		}
		http.Redirect(w, r, u, http.StatusFound)
	}
}

package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/logger"
)

type stateResponse struct {
	*domain.ClientState
	Theme    string         `json:"theme"`
	Selected *domain.Statue `json:"selectedStatue,omitempty"`
}

func newStateResponse(d deps.Deps, s *domain.ClientState) stateResponse {
	resp := stateResponse{ClientState: s, Theme: s.Theme()}
	if s.SelectedStatueID != "" {
		if st, ok := d.Catalog.Get(s.SelectedStatueID); ok {
			resp.Selected = st
		}
	}
	return resp
}

// State returns the caller's full client state.
func State(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, newStateResponse(d, d.Sessions.State(r.Context(), id)))
	}
}

// ForgetState wipes the caller's stored preferences, bookmarks and history.
func ForgetState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		d.Replies.Cancel(id)

		state, err := d.Sessions.Forget(r.Context(), id)
		if err != nil {
			d.Logger.Warn("forget visitor failed", logger.String("visitor_id", id), logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "Could not clear your data, try again later")
			return
		}
		d.Logger.Info("visitor state cleared", logger.String("visitor_id", id))
		writeJSON(w, http.StatusOK, newStateResponse(d, state))
	}
}

type viewRequest struct {
	View string `json:"view" validate:"required,oneof=home scanner bookmarks history"`
}

func (v *viewRequest) normalize() { v.View = trimLower(v.View) }

// View switches screen. Leaving the statue closes any pending chat reply.
func View(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		var req viewRequest
		if !decode(w, r, &req) {
			return
		}
		view, err := domain.ParseView(req.View)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		state, err := d.Sessions.Do(r.Context(), id, func(s *domain.ClientState) (domain.Changes, error) {
			s.SetView(view)
			return domain.NoChanges, nil
		})
		if err != nil {
			internalError(d, w, "set view failed", err)
			return
		}
		d.Replies.Cancel(id)
		writeJSON(w, http.StatusOK, newStateResponse(d, state))
	}
}

type overlayRequest struct {
	Overlay string `json:"overlay" validate:"required,oneof=drawer chat none"`
}

func (o *overlayRequest) normalize() { o.Overlay = trimLower(o.Overlay) }

// Overlay opens the detail drawer or the chat, or closes both.
func Overlay(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		var req overlayRequest
		if !decode(w, r, &req) {
			return
		}

		state, err := d.Sessions.Do(r.Context(), id, func(s *domain.ClientState) (domain.Changes, error) {
			switch req.Overlay {
			case "drawer":
				s.OpenDrawer()
			case "chat":
				s.OpenChat()
			default:
				s.CloseOverlays()
			}
			return domain.NoChanges, nil
		})
		if err != nil {
			internalError(d, w, "overlay change failed", err)
			return
		}
		if !state.ChatOpen {
			d.Replies.Cancel(id)
		}
		writeJSON(w, http.StatusOK, newStateResponse(d, state))
	}
}

type themeResponse struct {
	DarkMode bool   `json:"darkMode"`
	Theme    string `json:"theme"`
}

// ToggleDarkMode flips the theme and persists it.
func ToggleDarkMode(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		state, err := d.Sessions.Do(r.Context(), id, func(s *domain.ClientState) (domain.Changes, error) {
			return s.ToggleDarkMode(), nil
		})
		if err != nil {
			internalError(d, w, "dark mode toggle failed", err)
			return
		}
		writeJSON(w, http.StatusOK, themeResponse{DarkMode: state.DarkMode, Theme: state.Theme()})
	}
}

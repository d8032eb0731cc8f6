package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/logger"
	"github.com/MrSnakeDoc/statuary/internal/sources/catalogfile"
)

type scanRequest struct {
	Code string `json:"code" validate:"required,max=128"`
}

func (s *scanRequest) normalize()             { s.Code = strings.TrimSpace(s.Code) }
func (s *scanRequest) invalidMessage() string { return "Please enter a valid code" }

// Scan selects the statue behind a scanned code and records it in the
// visitor history. Unknown codes answer 404 and change nothing.
func Scan(d deps.Deps) http.HandlerFunc {
	rec := d.Recorder()
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := visitor(w, r)
		if !ok {
			return
		}
		var req scanRequest
		if !decode(w, r, &req) {
			rec.IncScan("invalid")
			return
		}

		now := d.Now()
		state, err := d.Sessions.Do(r.Context(), id, func(s *domain.ClientState) (domain.Changes, error) {
			return s.Scan(req.Code, d.Catalog, now)
		})
		if errors.Is(err, domain.ErrUnknownStatue) {
			rec.IncScan("miss")
			d.Logger.Debug("scan miss", logger.String("code", req.Code))
			writeError(w, http.StatusNotFound, "No statue found for code \""+req.Code+"\"")
			return
		}
		if err != nil {
			internalError(d, w, "scan failed", err)
			return
		}

		rec.IncScan("hit")
		d.Replies.Cancel(id)
		writeJSON(w, http.StatusOK, newStateResponse(d, state))
	}
}

type presetsResponse struct {
	Presets []catalogfile.Preset `json:"presets"`
}

// Presets lists the quick-scan buttons.
func Presets(d deps.Deps) http.HandlerFunc {
	presets := d.Presets
	if presets == nil {
		presets = []catalogfile.Preset{}
	}
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, presetsResponse{Presets: presets})
	}
}

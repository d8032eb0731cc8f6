package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/goccy/go-json"

	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/mw"
	"github.com/MrSnakeDoc/statuary/internal/logger"
	"github.com/MrSnakeDoc/statuary/internal/validation"
)

const maxBodyBytes = 16 << 10

type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// decode reads a small JSON body into dst and validates it. It writes the
// 400 response itself and reports false on failure.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if n, ok := dst.(interface{ normalize() }); ok {
		n.normalize()
	}
	if err := validation.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			msg := verr.Error()
			if m, ok := dst.(interface{ invalidMessage() string }); ok {
				msg = m.invalidMessage()
			}
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg, Fields: verr.Fields})
			return false
		}
		writeError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// visitor returns the caller's visitor id, answering 400 when the
// Visitor middleware did not run.
func visitor(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := mw.VisitorID(r.Context())
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing visitor id")
		return "", false
	}
	return id, true
}

func internalError(d deps.Deps, w http.ResponseWriter, msg string, err error) {
	d.Logger.Error(msg, logger.Error(err))
	writeError(w, http.StatusInternalServerError, "internal error")
}

func trimLower(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

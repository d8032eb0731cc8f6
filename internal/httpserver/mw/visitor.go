package mw

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/MrSnakeDoc/statuary/internal/logger"
)

const (
	// VisitorCookie carries the anonymous visitor id.
	VisitorCookie = "statuary_visitor"
	// VisitorHeader lets non-browser clients pick their visitor id.
	VisitorHeader = "X-Visitor-ID"

	visitorCookieMaxAge = 365 * 24 * time.Hour
	maxVisitorIDLen     = 64
)

type visitorKey struct{}

// VisitorID returns the visitor id attached by the Visitor middleware.
func VisitorID(ctx context.Context) string {
	id, _ := ctx.Value(visitorKey{}).(string)
	return id
}

// WithVisitorID attaches id to ctx. Tests use it to call handlers directly.
func WithVisitorID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, visitorKey{}, id)
}

// Visitor identifies the caller. The X-Visitor-ID header wins over the
// cookie; when neither is usable a fresh UUID v4 is issued as a cookie.
func Visitor(secure bool, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := visitorFromHeader(r)
			if id == "" {
				id = visitorFromCookie(r)
			}

			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     VisitorCookie,
					Value:    id,
					Path:     "/",
					MaxAge:   int(visitorCookieMaxAge.Seconds()),
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
					Secure:   secure || r.TLS != nil,
				})
				log.Debug("issued visitor cookie", logger.String("visitor", id))
			}

			next.ServeHTTP(w, r.WithContext(WithVisitorID(r.Context(), id)))
		})
	}
}

func visitorFromHeader(r *http.Request) string {
	id := strings.TrimSpace(r.Header.Get(VisitorHeader))
	if !validVisitorID(id) {
		return ""
	}
	return id
}

// validVisitorID accepts 1 to 64 ASCII letters, digits, '-' or '_'. The id
// ends up inside storage keys, so separators and glob characters are out.
func validVisitorID(id string) bool {
	if id == "" || len(id) > maxVisitorIDLen {
		return false
	}
	for i := 0; i < len(id); i++ {
		c := id[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
		default:
			return false
		}
	}
	return true
}

func visitorFromCookie(r *http.Request) string {
	c, err := r.Cookie(VisitorCookie)
	if err != nil {
		return ""
	}
	u, err := uuid.Parse(c.Value)
	if err != nil {
		return ""
	}
	return u.String()
}

package deps

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/statuary/internal/catalog"
	"github.com/MrSnakeDoc/statuary/internal/logger"
	"github.com/MrSnakeDoc/statuary/internal/metrics"
	"github.com/MrSnakeDoc/statuary/internal/scheduler"
	"github.com/MrSnakeDoc/statuary/internal/session"
	"github.com/MrSnakeDoc/statuary/internal/sources/catalogfile"
)

// StorageInfo is the read-only view of the visitor storage used by ops
// endpoints.
type StorageInfo interface {
	Backend() string
	Ping(ctx context.Context) error
}

// BreakerReporter is implemented by storages guarded by a circuit breaker.
type BreakerReporter interface {
	BreakerState() string
}

type Deps struct {
	Logger    logger.Logger
	StartTime time.Time
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
	TimeNow   func() time.Time // for testing, defaults to time.Now

	AllowedHosts   []string // Host headers allowed to access the server
	AllowedCIDRS   []string // IPs allowed to access the ops endpoints
	AllowedOrigins []string // CORS origins
	TrustProxy     bool     // true if running behind a trusted reverse proxy (e.g., cloudflared)
	CookieSecure   bool     // force the Secure flag on the visitor cookie
	RateLimitRPS   float64
	RateLimitBurst int

	Catalog       *catalog.Catalog
	CatalogSource string // "embedded" or the catalog file path
	Recommender   *catalog.Recommender
	Presets       []catalogfile.Preset

	Sessions *session.Manager
	Replies  *scheduler.ReplyScheduler
	Storage  StorageInfo

	Metrics        metrics.Recorder
	MetricsHandler http.Handler // nil disables /metrics
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}

// Recorder never returns nil.
func (d Deps) Recorder() metrics.Recorder {
	if d.Metrics == nil {
		return metrics.Noop{}
	}
	return d.Metrics
}

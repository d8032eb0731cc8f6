package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline (must exceed ChatDelayMax)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Catalog & visitor state
	CatalogFile       string        // optional YAML catalog, empty = embedded default catalog
	HistoryLimit      int           // max history entries per visitor (0 = unbounded)
	StateTTL          time.Duration // expiry of persisted visitor keys (0 = never)
	SessionGCInterval time.Duration // interval to evict idle in-memory sessions
	SessionIdleTTL    time.Duration // idle time after which a session is evicted
	ChatDelayMin      time.Duration // shortest simulated typing delay
	ChatDelayMax      time.Duration // longest simulated typing delay
	RecoCacheSize     int           // recommendation cache size in bytes (0 = disabled)
	CookieSecure      bool          // mark the visitor cookie Secure (HTTPS deployments)

	// Redis (optional: empty address => in-memory storage)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password, false => allow empty password
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts
	BreakerFailures       int           // consecutive Redis failures before the breaker opens
	BreakerTimeout        time.Duration // how long the breaker stays open

	// Access restrictions
	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict ops endpoints to these IPs/CIDRs
	TrustProxy     bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
	AllowedOrigins []string // CORS origins, empty = same-origin only
	RateLimitRPS   float64  // per-client requests per second (0 = disabled)
	RateLimitBurst int      // per-client burst
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("STATUARY_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("STATUARY_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("STATUARY_REQUEST_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel:  getenv("STATUARY_LOG_LEVEL", "info"),
		PrettyLog: mustBool("STATUARY_PRETTY_LOG", true),

		// Catalog & visitor state
		CatalogFile:       getenv("STATUARY_CATALOG_FILE", ""),
		HistoryLimit:      getenvInt("STATUARY_HISTORY_LIMIT", 0),
		StateTTL:          mustDuration("STATUARY_STATE_TTL", 0),
		SessionGCInterval: mustDuration("STATUARY_SESSION_GC_INTERVAL", 10*time.Minute),
		SessionIdleTTL:    mustDuration("STATUARY_SESSION_IDLE_TTL", time.Hour),
		ChatDelayMin:      mustDuration("STATUARY_CHAT_DELAY_MIN", 900*time.Millisecond),
		ChatDelayMax:      mustDuration("STATUARY_CHAT_DELAY_MAX", 2*time.Second),
		RecoCacheSize:     getenvInt("STATUARY_RECO_CACHE_BYTES", 512*1024),
		CookieSecure:      mustBool("STATUARY_COOKIE_SECURE", false),

		// Redis settings
		RedisAddr:             getenv("STATUARY_REDIS_ADDR", ""),
		RedisUser:             getenv("STATUARY_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("STATUARY_REDIS_PASSWORD_REQUIRED", false),
		RedisPassword:         getenv("STATUARY_REDIS_PASSWORD", ""),
		RedisDB:               getenvInt("STATUARY_REDIS_DB", 0),
		RedisDT:               mustDuration("STATUARY_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("STATUARY_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("STATUARY_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("STATUARY_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("STATUARY_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("STATUARY_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("STATUARY_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("STATUARY_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("STATUARY_REDIS_WARN_THRESHOLD", 3),
		BreakerFailures:       getenvInt("STATUARY_REDIS_BREAKER_FAILURES", 5),
		BreakerTimeout:        mustDuration("STATUARY_REDIS_BREAKER_TIMEOUT", 30*time.Second),

		// Access restrictions
		AllowedHosts:   splitAndTrim(getenv("STATUARY_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   parseAllowedIPs(getenv("STATUARY_ALLOWED_CIDRS", "")),
		TrustProxy:     mustBool("STATUARY_TRUST_PROXY", true),
		AllowedOrigins: splitAndTrim(getenv("STATUARY_ALLOWED_ORIGINS", "")),
		RateLimitRPS:   getenvFloat("STATUARY_RATE_LIMIT_RPS", 10),
		RateLimitBurst: getenvInt("STATUARY_RATE_LIMIT_BURST", 20),
	}

	// Validate Redis password configuration
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired {
		cfg.RedisPassword = requireEnv("STATUARY_REDIS_PASSWORD")
	}

	if cfg.ChatDelayMax < cfg.ChatDelayMin {
		panic(fmt.Sprintf("❌ FATAL: STATUARY_CHAT_DELAY_MAX (%v) is lower than STATUARY_CHAT_DELAY_MIN (%v)",
			cfg.ChatDelayMax, cfg.ChatDelayMin))
	}
	if cfg.ChatDelayMax >= cfg.RequestTimeout {
		panic(fmt.Sprintf("❌ FATAL: STATUARY_CHAT_DELAY_MAX (%v) must be below STATUARY_REQUEST_TIMEOUT (%v)",
			cfg.ChatDelayMax, cfg.RequestTimeout))
	}
	if cfg.HistoryLimit < 0 {
		panic(fmt.Sprintf("❌ FATAL: STATUARY_HISTORY_LIMIT must be >= 0, got %d", cfg.HistoryLimit))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		cfgCopy.RedisPassword = "***REDACTED***"
		if cfg.RedisUser != "" {
			cfgCopy.RedisUser = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// UseRedis reports whether visitor state goes to Redis.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/statuary/internal/cache"
	"github.com/MrSnakeDoc/statuary/internal/catalog"
	"github.com/MrSnakeDoc/statuary/internal/config"
	"github.com/MrSnakeDoc/statuary/internal/httpserver"
	"github.com/MrSnakeDoc/statuary/internal/httpserver/deps"
	"github.com/MrSnakeDoc/statuary/internal/logger"
	"github.com/MrSnakeDoc/statuary/internal/metrics"
	"github.com/MrSnakeDoc/statuary/internal/redis"
	"github.com/MrSnakeDoc/statuary/internal/scheduler"
	"github.com/MrSnakeDoc/statuary/internal/session"
	"github.com/MrSnakeDoc/statuary/internal/sources/catalogfile"
	"github.com/MrSnakeDoc/statuary/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/statuary/internal/store/redis"
	"github.com/MrSnakeDoc/statuary/internal/utils"
	"github.com/MrSnakeDoc/statuary/internal/version"
)

// visitorStorage is what both storage backends provide.
type visitorStorage interface {
	session.Storage
	Backend() string
}

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	replies     *scheduler.ReplyScheduler
	collector   *scheduler.SessionCollector
}

func New() (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Catalog first: without it there is nothing to serve.
	loader := catalogfile.NewLoader(cfg.CatalogFile)
	doc, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog from %s: %w", loader.Source(), err)
	}
	mapper := catalogfile.NewMapper()
	statues, err := mapper.MapStatues(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to map catalog: %w", err)
	}
	cat, err := catalog.New(statues)
	if err != nil {
		return nil, fmt.Errorf("failed to index catalog: %w", err)
	}
	loggerClient.Info("catalog loaded",
		logger.String("source", loader.Source()),
		logger.Int("statues", cat.Count()))

	m := metrics.New()
	recoCache := cache.WithHitCounter("recommendations", cache.New(cfg.RecoCacheSize, 0, loggerClient), m)

	// Visitor storage: Redis when configured, memory otherwise.
	var (
		storage     visitorStorage
		redisClient *goredis.Client
	)
	if cfg.UseRedis() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.Connect(context.Background(), redis.OptionsFromConfig(cfg), loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		storage = redisstore.NewStore(redisClient, redisstore.Options{
			TTL:             cfg.StateTTL,
			BreakerFailures: uint32(max(cfg.BreakerFailures, 0)),
			BreakerTimeout:  cfg.BreakerTimeout,
		}, loggerClient)
		loggerClient.Info("Redis initialized successfully")
	} else {
		loggerClient.Warn("STATUARY_REDIS_ADDR not set, visitor state is kept in memory only")
		storage = memory.NewStore()
	}

	sessions := session.NewManager(storage, loggerClient, session.Options{HistoryLimit: cfg.HistoryLimit})
	replies := scheduler.NewReplyScheduler(cfg.ChatDelayMin, cfg.ChatDelayMax)
	collector := scheduler.NewSessionCollector(sessions, loggerClient, cfg.SessionGCInterval, cfg.SessionIdleTTL)
	collector.OnSweep(m.AddSessionsEvicted)

	m.GaugeFunc("active_sessions", "Visitor sessions held in memory", func() float64 {
		return float64(sessions.Active())
	})
	m.GaugeFunc("pending_chat_replies", "Chat replies waiting for their typing delay", func() float64 {
		return float64(replies.Pending())
	})
	if ms, ok := storage.(*memory.Store); ok {
		m.GaugeFunc("memory_visitors", "Visitors with values in the memory store", func() float64 {
			return float64(ms.Visitors())
		})
	}
	m.GaugeFunc("catalog_statues", "Statues in the loaded catalog", func() float64 {
		return float64(cat.Count())
	})

	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		AllowedOrigins: cfg.AllowedOrigins,
		TrustProxy:     cfg.TrustProxy,
		CookieSecure:   cfg.CookieSecure,
		RateLimitRPS:   cfg.RateLimitRPS,
		RateLimitBurst: cfg.RateLimitBurst,
		Catalog:        cat,
		CatalogSource:  loader.Source(),
		Recommender:    catalog.NewRecommender(cat, recoCache),
		Presets:        mapper.MapPresets(doc),
		Sessions:       sessions,
		Replies:        replies,
		Storage:        storage,
		Metrics:        m,
		MetricsHandler: m.Handler(),
	}

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      httpserver.New(cfg, loggerClient, d),
		redisClient: redisClient,
		replies:     replies,
		collector:   collector,
	}, nil
}

func (a *App) Run() error {
	a.logger.Infof("🗿 Starting statuary %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Info("build info", version.Fields()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.collector.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session collector: %w", err)
	}
	a.logger.Info("session collector started",
		logger.Duration("interval", a.cfg.SessionGCInterval),
		logger.Duration("idle_ttl", a.cfg.SessionIdleTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.collector.Stop()

	// Waiting and late chat requests answer 204 instead of holding up the
	// shutdown.
	if n := a.replies.Close(); n > 0 {
		a.logger.Info("discarded pending chat replies", logger.Int("count", n))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, "redis", a.logger)
	}

	a.logger.Info("✅ statuary stopped cleanly")
	return nil
}

package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/MrSnakeDoc/shelf/internal/catalog"
	"github.com/MrSnakeDoc/shelf/internal/config"
	"github.com/MrSnakeDoc/shelf/internal/domain"
	"github.com/MrSnakeDoc/shelf/internal/httpserver"
	"github.com/MrSnakeDoc/shelf/internal/httpserver/deps"
	"github.com/MrSnakeDoc/shelf/internal/logger"
	"github.com/MrSnakeDoc/shelf/internal/redis"
	"github.com/MrSnakeDoc/shelf/internal/render"
	"github.com/MrSnakeDoc/shelf/internal/scheduler"
	"github.com/MrSnakeDoc/shelf/internal/sources/assets"
	redisstore "github.com/MrSnakeDoc/shelf/internal/store/redis"
	"github.com/MrSnakeDoc/shelf/internal/theme"
	"github.com/MrSnakeDoc/shelf/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	reloader    *scheduler.CatalogReloader
	sweeper     *scheduler.PreferenceSweeper // nil when preferences live in Redis
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Theme preferences: Redis when configured (fail fast if unreachable), memory otherwise
	var (
		redisClient *goredis.Client
		preferences theme.Store
		sweeper     *scheduler.PreferenceSweeper
	)
	if cfg.RedisEnabled() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			loggerClient.Errorf("Failed to connect to Redis: %v", err)
			os.Exit(1)
		}
		loggerClient.Info("Redis initialized successfully")
		redisClient = client
		preferences = redisstore.NewStore(client, cfg.PreferenceTTL)
	} else {
		loggerClient.Info("SHELF_REDIS_ADDR not set, theme preferences kept in memory")
		memory := theme.NewMemoryStore()
		preferences = memory
		sweeper = scheduler.NewPreferenceSweeper(memory, loggerClient, cfg.PreferenceSweep, cfg.PreferenceTTL)
	}

	visitors, err := theme.NewVisitors([]byte(cfg.CookieHashKey), cfg.CookieSecure, cfg.PreferenceTTL)
	if err != nil {
		loggerClient.Errorf("Failed to initialize visitor cookies: %v", err)
		os.Exit(1)
	}
	if cfg.CookieHashKey == "" {
		loggerClient.Warn("SHELF_COOKIE_HASH_KEY not set, visitor cookies reset on restart")
	}

	// Catalog store, filled by the reloader before the server starts
	store := catalog.NewStore()

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	loader := assets.NewLoader(cfg.DataSource, assets.LoaderOptions{
		Timeout:  cfg.FetchTimeout,
		MaxBytes: cfg.MaxDataBytes,
	})
	reloader := scheduler.NewCatalogReloader(
		loader,
		store,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	defaultSort := domain.SortKey(cfg.DefaultSort)
	if !defaultSort.Known() {
		loggerClient.Warn("unknown SHELF_DEFAULT_SORT, using name-asc",
			logger.String("value", cfg.DefaultSort))
		defaultSort = domain.DefaultSort
	}

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:          loggerClient,
		StartTime:       time.Now(),
		Version:         version.Version,
		Commit:          version.Commit,
		BuildDate:       version.BuildDate,
		GoVersion:       version.GoVersion,
		TimeNow:         time.Now,
		AllowedHosts:    cfg.AllowedHosts,
		AllowedCIDRS:    cfg.AllowedCIDRS,
		TrustProxy:      cfg.TrustProxy,
		RateLimitBurst:  cfg.RateLimitBurst,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DataSource:      cfg.DataSource,
		Catalog:         store,
		Pipeline:        catalog.Options{Locale: catalog.ParseLocale(cfg.Locale)},
		DefaultSort:     defaultSort,
		Renderer:        render.MustRenderer(),
		Preferences:     preferences,
		Visitors:        visitors,
		ClientHints:     cfg.ClientHintsEnabled,
		ReloadTrigger:   reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		reloader:    reloader,
		sweeper:     sweeper,
	}
}

func (a *App) Run() error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting Shelf v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Shelf %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (initial load, then periodic and manual reloads)
	if err := a.reloader.Start(ctx); err != nil {
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.String("source", a.cfg.DataSource),
		logger.Duration("interval", a.cfg.ReloadInterval))

	// Start preference sweeper (memory mode only)
	if a.sweeper != nil {
		if err := a.sweeper.Start(ctx); err != nil {
			return fmt.Errorf("failed to start preference sweeper: %w", err)
		}
		a.logger.Info("preference sweeper started",
			logger.Duration("interval", a.cfg.PreferenceSweep))
	}

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

	a.reloader.Stop()
	if a.sweeper != nil {
		a.sweeper.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Shelf stopped cleanly")
	return nil
}

package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	apiMiddleware "github.com/Nivlac17/jwt-pizza-service/internal/api/middleware"
	"github.com/Nivlac17/jwt-pizza-service/internal/config"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/factory"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/metrics"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/postgres"
	"github.com/Nivlac17/jwt-pizza-service/internal/platform/redis"
	"github.com/Nivlac17/jwt-pizza-service/internal/service"
	"github.com/Nivlac17/jwt-pizza-service/internal/service/auth"
	"github.com/Nivlac17/jwt-pizza-service/internal/store"
	goredis "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// appStores groups the persistence implementations used by the services.
type appStores struct {
	users      store.UserStore
	franchises store.FranchiseStore
	menu       store.MenuStore
	orders     store.OrderStore
	sessions   store.SessionStore
}

// application holds all the shared application dependencies to simplify management
// and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger

	// Owned handles, closed in cleanup. Both are nil in tests.
	db    *sql.DB
	redis *goredis.Client

	stores  appStores
	metrics *metrics.Metrics

	authService      service.AuthService
	userService      service.UserService
	franchiseService service.FranchiseService
	orderService     service.OrderService

	authLimiter *apiMiddleware.RateLimiter
	scheduler   *cron.Cron
}

// newApplication creates the application on top of an open database. The
// session store is PostgreSQL or Redis depending on configuration.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	stores := appStores{
		users:      postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger),
		franchises: postgres.NewPostgresFranchiseStore(db, logger),
		menu:       postgres.NewPostgresMenuStore(db, logger),
		orders:     postgres.NewPostgresOrderStore(db, logger),
	}

	var redisClient *goredis.Client
	switch cfg.Auth.SessionBackend {
	case config.SessionBackendRedis:
		client, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		redisClient = client
		stores.sessions = redis.NewSessionStore(client, logger)
	default:
		stores.sessions = postgres.NewPostgresSessionStore(db, logger)
	}
	logger.Info("Session store initialized", "backend", cfg.Auth.SessionBackend)

	app, err := buildApplication(ctx, cfg, logger, stores, metrics.New())
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, err
	}
	app.db = db
	app.redis = redisClient
	return app, nil
}

// buildApplication wires services over the given stores and bootstraps the
// admin account.
func buildApplication(
	ctx context.Context,
	cfg *config.Config,
	logger *slog.Logger,
	stores appStores,
	m *metrics.Metrics,
) (*application, error) {
	app := &application{
		config:  cfg,
		logger:  logger,
		stores:  stores,
		metrics: m,
		authLimiter: apiMiddleware.NewRateLimiter(
			cfg.RateLimit.AuthRequestsPerSecond,
			cfg.RateLimit.AuthBurst,
		),
	}

	jwtService, err := auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.authService, err = service.NewAuthService(
		stores.users,
		stores.sessions,
		jwtService,
		auth.NewBcryptVerifier(),
		m,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth service: %w", err)
	}

	app.userService, err = service.NewUserService(stores.users, app.authService, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create user service: %w", err)
	}

	app.franchiseService, err = service.NewFranchiseService(stores.franchises, stores.users, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create franchise service: %w", err)
	}

	var fulfiller service.Fulfiller
	if cfg.Factory.URL != "" {
		fulfiller = factory.NewClient(cfg.Factory, logger)
		logger.Info("Pizza factory client initialized")
	}
	app.orderService, err = service.NewOrderService(
		stores.menu,
		stores.orders,
		stores.franchises,
		fulfiller,
		m,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %w", err)
	}

	if cfg.Admin.Email != "" {
		created, err := app.authService.EnsureAdmin(ctx, cfg.Admin.Name, cfg.Admin.Email, cfg.Admin.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to bootstrap admin account: %w", err)
		}
		logger.Info("Admin account checked", "created", created)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts background maintenance and serves HTTP until ctx is cancelled.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startMaintenance(); err != nil {
		app.cleanup()
		return err
	}

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.scheduler != nil {
		stopped := app.scheduler.Stop()
		select {
		case <-stopped.Done():
		case <-time.After(5 * time.Second):
			app.logger.Warn("Maintenance jobs still running at shutdown")
		}
	}

	if app.redis != nil {
		if err := app.redis.Close(); err != nil {
			app.logger.Error("Error closing redis connection", "error", err)
		}
	}

	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}

package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/phrazzld/tasktrack-api/internal/api"
	apimiddleware "github.com/phrazzld/tasktrack-api/internal/api/middleware"
	"github.com/phrazzld/tasktrack-api/internal/config"
	"github.com/phrazzld/tasktrack-api/internal/platform/cache"
	"github.com/phrazzld/tasktrack-api/internal/platform/postgres"
	"github.com/phrazzld/tasktrack-api/internal/service"
	"github.com/phrazzld/tasktrack-api/internal/service/auth"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// application holds the shared application dependencies so startup and
// shutdown can manage them in one place.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	taskCache cache.Cache

	userStore store.UserStore
	taskStore store.TaskStore

	jwtService       auth.JWTService
	passwordVerifier auth.PasswordVerifier
	taskService      service.TaskService
	userService      service.UserService

	router http.Handler
}

// newApplication creates an application instance with all dependencies
// initialized. The database connection must already be established.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		slog.Int("token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes))

	app.passwordVerifier = auth.NewBcryptVerifier()

	app.userStore = postgres.NewPostgresUserStore(db, cfg.Auth.BcryptCost, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	app.taskCache = cache.NewRedis(redisClient,
		cache.WithQueryTimeout(time.Duration(cfg.Redis.QueryTimeoutMillis)*time.Millisecond))
	logger.Info("redis cache initialized", slog.String("addr", cfg.Redis.Addr))

	app.taskService = service.NewTaskService(
		app.taskStore,
		app.taskCache,
		time.Duration(cfg.Redis.CacheTTLSeconds)*time.Second,
		logger,
	)

	app.userService = service.NewUserService(
		store.NewDBTxRunner(db),
		app.userStore,
		app.taskStore,
		app.taskCache,
		logger,
	)

	app.router = api.NewRouter(api.RouterConfig{
		AuthHandler:    api.NewAuthHandler(app.userStore, app.jwtService, app.passwordVerifier),
		UserHandler:    api.NewUserHandler(app.userStore, app.userService, logger),
		TaskHandler:    api.NewTaskHandler(app.taskService, logger),
		AuthMiddleware: apimiddleware.NewAuthMiddleware(app.jwtService),
	})

	return app, nil
}

// cleanup releases resources held by the application. Called after the
// HTTP server has stopped accepting requests.
func (app *application) cleanup() {
	if err := app.taskCache.Close(); err != nil {
		app.logger.Error("failed to close cache", slog.Any("error", err))
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error("failed to close database", slog.Any("error", err))
	}
}

package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/platform/cache"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// UserService orchestrates account-level operations that span multiple
// stores.
type UserService interface {
	// DeleteAccount removes the user and all of their tasks atomically,
	// then sweeps the user's cached task data.
	// Returns store.ErrUserNotFound if the user does not exist.
	DeleteAccount(ctx context.Context, userID uuid.UUID) error
}

type userService struct {
	txRunner store.TxRunner
	users    store.UserStore
	tasks    store.TaskStore
	cache    cache.Cache
	logger   *slog.Logger
}

var _ UserService = (*userService)(nil)

// NewUserService creates a UserService over the given stores.
func NewUserService(txRunner store.TxRunner, users store.UserStore, tasks store.TaskStore, c cache.Cache, logger *slog.Logger) UserService {
	if txRunner == nil {
		panic("tx runner cannot be nil")
	}
	if users == nil {
		panic("user store cannot be nil")
	}
	if tasks == nil {
		panic("task store cannot be nil")
	}
	if c == nil {
		panic("cache cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &userService{
		txRunner: txRunner,
		users:    users,
		tasks:    tasks,
		cache:    c,
		logger:   logger.With(slog.String("component", "user_service")),
	}
}

// DeleteAccount implements UserService.DeleteAccount. The user row and
// their tasks are removed in one transaction; the cache sweep happens
// after commit and is best-effort, like every other invalidation.
func (s *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var removedTasks int64
	err := s.txRunner.RunTx(ctx, func(ctx context.Context, tx *sql.Tx) error {
		tasks := s.tasks
		users := s.users
		if tx != nil {
			tasks = tasks.WithTx(tx)
			users = users.WithTx(tx)
		}

		var err error
		removedTasks, err = tasks.DeleteByOwner(ctx, userID)
		if err != nil {
			return err
		}
		return users.Delete(ctx, userID)
	})
	if err != nil {
		return err
	}

	log.Info("account deleted",
		slog.String("user_id", userID.String()),
		slog.Int64("removed_tasks", removedTasks))

	// Sweep both cache namespaces for the former owner.
	for _, pattern := range []string{taskPattern(userID), listPattern(userID)} {
		if err := s.cache.DeletePattern(ctx, pattern); err != nil {
			log.Warn("cache invalidation failed, stale entries may persist until TTL",
				slog.String("pattern", pattern),
				slog.String("error", err.Error()))
		}
	}

	return nil
}

package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/platform/cache"
	"github.com/phrazzld/tasktrack-api/internal/platform/logger"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// DefaultCacheTTL bounds how long a cached task read may be served when no
// explicit TTL is configured. Staleness after a missed invalidation is
// bounded by this value.
const DefaultCacheTTL = 60 * time.Second

// TaskService orchestrates task reads and writes for a single owner's
// tasks across the record store and the cache.
type TaskService interface {
	// CreateTask validates and persists a new task, then invalidates the
	// owner's listing cache.
	CreateTask(ctx context.Context, ownerID uuid.UUID, title, description string, status domain.TaskStatus, dueDate *time.Time) (*domain.Task, error)

	// GetTask returns one of the owner's tasks, serving from cache when a
	// fresh entry exists and repopulating the cache on a miss.
	// Returns store.ErrTaskNotFound if the task is absent or foreign-owned.
	GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// ListTasks returns a page of the owner's tasks ordered by creation
	// time descending, serving from cache when possible. Each distinct
	// pagination/filter combination is cached independently.
	ListTasks(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error)

	// UpdateTask applies a partial field set to one of the owner's tasks,
	// then invalidates the task's cache entry and the owner's listings.
	// An update with no fields is a no-op and returns the unchanged task.
	// Returns store.ErrTaskNotFound if the task is absent or foreign-owned.
	UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// DeleteTask removes one of the owner's tasks, then invalidates the
	// task's cache entry and the owner's listings.
	// Returns store.ErrTaskNotFound if the task is absent or foreign-owned.
	DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error
}

// taskService is the production TaskService implementation.
//
// Consistency contract: the store is the source of truth and is always
// written first. Cache entries are deleted only after the store commit, so
// a reader can never repopulate the cache with pre-mutation data observed
// before the commit. The window between commit and invalidation remains:
// a concurrent reader may see a stale entry for the duration of the
// invalidation call. Cache failures never fail a request; a failed
// invalidation is logged because it leaves stale data for up to the TTL.
type taskService struct {
	tasks  store.TaskStore
	cache  cache.Cache
	ttl    time.Duration
	logger *slog.Logger
}

var _ TaskService = (*taskService)(nil)

// NewTaskService creates a TaskService backed by the given store and cache.
// A non-positive ttl selects DefaultCacheTTL. If logger is nil, a default
// logger will be used.
func NewTaskService(tasks store.TaskStore, c cache.Cache, ttl time.Duration, logger *slog.Logger) TaskService {
	if tasks == nil {
		panic("task store cannot be nil")
	}
	if c == nil {
		panic("cache cannot be nil")
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &taskService{
		tasks:  tasks,
		cache:  c,
		ttl:    ttl,
		logger: logger.With(slog.String("component", "task_service")),
	}
}

// CreateTask implements TaskService.CreateTask.
func (s *taskService) CreateTask(ctx context.Context, ownerID uuid.UUID, title, description string, status domain.TaskStatus, dueDate *time.Time) (*domain.Task, error) {
	task, err := domain.NewTask(ownerID, title, description, status, dueDate)
	if err != nil {
		return nil, err
	}

	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, err
	}

	// A new task can appear in any of the owner's listings; sweep them all.
	// The single-task key cannot exist yet, so only listings are touched.
	s.invalidateListings(ctx, ownerID)

	return task, nil
}

// GetTask implements TaskService.GetTask.
func (s *taskService) GetTask(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)
	key := taskKey(ownerID, taskID)

	if data, ok := s.cacheGet(ctx, key); ok {
		task, err := decodeTask(data)
		if err == nil {
			return task, nil
		}
		// A corrupt entry is treated as a miss; the read below overwrites it.
		log.Warn("discarding undecodable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	task, err := s.tasks.GetByID(ctx, ownerID, taskID)
	if err != nil {
		return nil, err
	}

	s.cachePopulate(ctx, key, func() (string, error) { return encodeTask(task) })
	return task, nil
}

// ListTasks implements TaskService.ListTasks.
func (s *taskService) ListTasks(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := validateListOptions(&opts); err != nil {
		return nil, err
	}

	key := listKey(ownerID, opts)
	if data, ok := s.cacheGet(ctx, key); ok {
		tasks, err := decodeTaskList(data)
		if err == nil {
			return tasks, nil
		}
		log.Warn("discarding undecodable cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}

	tasks, err := s.tasks.List(ctx, ownerID, opts)
	if err != nil {
		return nil, err
	}

	// Empty pages are cached too; they are as expensive to recompute as
	// any other page.
	s.cachePopulate(ctx, key, func() (string, error) { return encodeTaskList(tasks) })
	return tasks, nil
}

// UpdateTask implements TaskService.UpdateTask.
func (s *taskService) UpdateTask(ctx context.Context, ownerID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	// No fields means nothing to write: answer like a read and leave the
	// cache alone. Absent or foreign-owned tasks still surface as not found.
	if update.IsEmpty() {
		return s.GetTask(ctx, ownerID, taskID)
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}

	task, err := s.tasks.Update(ctx, ownerID, taskID, update)
	if err != nil {
		return nil, err
	}

	s.invalidateTask(ctx, ownerID, taskID)
	s.invalidateListings(ctx, ownerID)

	return task, nil
}

// DeleteTask implements TaskService.DeleteTask.
func (s *taskService) DeleteTask(ctx context.Context, ownerID, taskID uuid.UUID) error {
	if err := s.tasks.Delete(ctx, ownerID, taskID); err != nil {
		return err
	}

	s.invalidateTask(ctx, ownerID, taskID)
	s.invalidateListings(ctx, ownerID)

	return nil
}

// cacheGet reads a key, treating any cache error as a miss. The store can
// always answer, so cache unavailability degrades to store-only reads.
func (s *taskService) cacheGet(ctx context.Context, key string) (string, bool) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		log.Warn("cache read failed, falling back to store",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return "", false
	}
	return data, ok
}

// cachePopulate stores a freshly-read value under key with the service TTL.
// Failures are logged and swallowed: the caller already has the value.
func (s *taskService) cachePopulate(ctx context.Context, key string, encode func() (string, error)) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	data, err := encode()
	if err != nil {
		log.Warn("failed to encode value for cache",
			slog.String("key", key),
			slog.String("error", err.Error()))
		return
	}
	if err := s.cache.Set(ctx, key, data, s.ttl); err != nil {
		log.Warn("cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// invalidateTask removes the single-task cache entry after a committed
// write. A failure here is a silent correctness risk: the stale entry can
// survive for up to the TTL. It is logged at WARN and not retried inline,
// since a synchronous retry would add user-facing latency to a best-effort
// operation.
func (s *taskService) invalidateTask(ctx context.Context, ownerID, taskID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	key := taskKey(ownerID, taskID)
	if _, err := s.cache.Delete(ctx, key); err != nil {
		log.Warn("cache invalidation failed, stale task entry may persist until TTL",
			slog.String("key", key),
			slog.String("error", err.Error()))
	}
}

// invalidateListings sweeps every listing entry of an owner after a
// committed write: any listing might now be stale through changed
// membership, order, or filtered status. Same failure policy as
// invalidateTask.
func (s *taskService) invalidateListings(ctx context.Context, ownerID uuid.UUID) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	pattern := listPattern(ownerID)
	if err := s.cache.DeletePattern(ctx, pattern); err != nil {
		log.Warn("cache invalidation failed, stale listings may persist until TTL",
			slog.String("pattern", pattern),
			slog.String("error", err.Error()))
	}
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/mocks"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

func newTestService(t *testing.T) (TaskService, *mocks.MockTaskStore, *mocks.MockCache) {
	t.Helper()
	taskStore := mocks.NewMockTaskStore()
	taskCache := mocks.NewMockCache()
	svc := NewTaskService(taskStore, taskCache, DefaultCacheTTL, nil)
	return svc, taskStore, taskCache
}

func mustCreateTask(t *testing.T, svc TaskService, ownerID uuid.UUID, title string) *domain.Task {
	t.Helper()
	task, err := svc.CreateTask(context.Background(), ownerID, title, "", "", nil)
	require.NoError(t, err)
	return task
}

func TestCreateTask(t *testing.T) {
	t.Run("persists task with defaults", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		ownerID := uuid.New()

		task, err := svc.CreateTask(context.Background(), ownerID, "Write report", "quarterly numbers", "", nil)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.Equal(t, ownerID, task.OwnerID)
		assert.Equal(t, "Write report", task.Title)
		assert.Equal(t, domain.TaskStatusTodo, task.Status)
		assert.False(t, task.CreatedAt.IsZero())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)

		_, err := svc.CreateTask(context.Background(), uuid.New(), "", "", "", nil)
		assert.ErrorIs(t, err, domain.ErrTaskTitleEmpty)
		assert.Zero(t, taskStore.CreateCalls)
	})

	t.Run("rejects invalid status", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.CreateTask(context.Background(), uuid.New(), "Task", "", "archived", nil)
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
	})

	t.Run("invalidates cached listings", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)
		ownerID := uuid.New()
		mustCreateTask(t, svc, ownerID, "First")

		// Populate the listing cache, then create another task.
		first, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{})
		require.NoError(t, err)
		require.Len(t, first, 1)
		require.Equal(t, 1, taskStore.ListCalls)

		mustCreateTask(t, svc, ownerID, "Second")

		// The listing must reflect the new task immediately, which means
		// the cached page was dropped and the store consulted again.
		second, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, second, 2)
		assert.Equal(t, 2, taskStore.ListCalls)
	})
}

func TestGetTask(t *testing.T) {
	t.Run("cache miss reads store and populates cache", func(t *testing.T) {
		svc, taskStore, taskCache := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Cached read")

		got, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, task.ID, got.ID)
		assert.Equal(t, 1, taskStore.GetByIDCalls)
		assert.Equal(t, 1, taskCache.SetCalls)

		// Second read is served from cache: the store is not consulted again
		// and the result is identical.
		again, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, got.ID, again.ID)
		assert.Equal(t, got.Title, again.Title)
		assert.Equal(t, got.Status, again.Status)
		assert.True(t, got.CreatedAt.Equal(again.CreatedAt))
		assert.Equal(t, 1, taskStore.GetByIDCalls)
	})

	t.Run("missing task returns not found", func(t *testing.T) {
		svc, _, taskCache := newTestService(t)

		_, err := svc.GetTask(context.Background(), uuid.New(), uuid.New())
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		// A failed read must not leave anything in the cache.
		assert.Zero(t, taskCache.SetCalls)
	})

	t.Run("foreign-owned task is invisible even when cached", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		ownerID := uuid.New()
		otherID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Private")

		// Warm the owner's cache entry first.
		_, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)

		// Another user asking for the same task ID must get not-found,
		// regardless of the cache state. Keys are owner-scoped.
		_, err = svc.GetTask(context.Background(), otherID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("corrupt cache entry falls back to store", func(t *testing.T) {
		svc, taskStore, taskCache := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Resilient")

		err := taskCache.Set(context.Background(), taskKey(ownerID, task.ID), "{not json", time.Minute)
		require.NoError(t, err)

		got, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Resilient", got.Title)
		assert.Equal(t, 1, taskStore.GetByIDCalls)
	})
}

func TestListTasks(t *testing.T) {
	t.Run("distinct pages cached independently", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)
		ownerID := uuid.New()
		for i := 0; i < 3; i++ {
			mustCreateTask(t, svc, ownerID, "Task")
		}

		_, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{Skip: 0, Limit: 2})
		require.NoError(t, err)
		_, err = svc.ListTasks(context.Background(), ownerID, store.ListOptions{Skip: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, taskStore.ListCalls)

		// Repeating both queries hits only the cache.
		_, err = svc.ListTasks(context.Background(), ownerID, store.ListOptions{Skip: 0, Limit: 2})
		require.NoError(t, err)
		_, err = svc.ListTasks(context.Background(), ownerID, store.ListOptions{Skip: 2, Limit: 2})
		require.NoError(t, err)
		assert.Equal(t, 2, taskStore.ListCalls)
	})

	t.Run("empty listing is cached", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)
		ownerID := uuid.New()

		tasks, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.Equal(t, 1, taskStore.ListCalls)

		tasks, err = svc.ListTasks(context.Background(), ownerID, store.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
		assert.Equal(t, 1, taskStore.ListCalls)
	})

	t.Run("status filter has its own cache entry", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Filtered")

		done := domain.TaskStatusDone
		todo := domain.TaskStatusTodo

		todoTasks, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{Status: &todo})
		require.NoError(t, err)
		assert.Len(t, todoTasks, 1)

		doneTasks, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{Status: &done})
		require.NoError(t, err)
		assert.Empty(t, doneTasks)
		assert.Equal(t, 2, taskStore.ListCalls)

		// Moving the task to done invalidates both filtered listings.
		_, err = svc.UpdateTask(context.Background(), ownerID, task.ID, domain.TaskUpdate{Status: &done})
		require.NoError(t, err)

		doneTasks, err = svc.ListTasks(context.Background(), ownerID, store.ListOptions{Status: &done})
		require.NoError(t, err)
		assert.Len(t, doneTasks, 1)
	})

	t.Run("rejects invalid pagination", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		ownerID := uuid.New()

		_, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{Skip: -1})
		assert.ErrorIs(t, err, ErrInvalidPagination)

		_, err = svc.ListTasks(context.Background(), ownerID, store.ListOptions{Limit: store.MaxListLimit + 1})
		assert.ErrorIs(t, err, ErrInvalidPagination)
	})

	t.Run("rejects invalid status filter", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		bogus := domain.TaskStatus("archived")

		_, err := svc.ListTasks(context.Background(), uuid.New(), store.ListOptions{Status: &bogus})
		assert.ErrorIs(t, err, ErrInvalidStatusFilter)
	})
}

func TestUpdateTask(t *testing.T) {
	t.Run("invalidates single-task cache entry", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Before")

		// Warm the cache.
		_, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		require.Equal(t, 1, taskStore.GetByIDCalls)

		newTitle := "After"
		updated, err := svc.UpdateTask(context.Background(), ownerID, task.ID, domain.TaskUpdate{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "After", updated.Title)

		// The next read must not serve the stale cached copy.
		got, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "After", got.Title)
		assert.Equal(t, 2, taskStore.GetByIDCalls)
	})

	t.Run("empty update is a no-op returning the unchanged task", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Unchanged")

		got, err := svc.UpdateTask(context.Background(), ownerID, task.ID, domain.TaskUpdate{})
		require.NoError(t, err)
		assert.Equal(t, "Unchanged", got.Title)
		assert.Zero(t, taskStore.UpdateCalls, "no-op update must not hit the store write path")
	})

	t.Run("empty update on an unknown task returns not found", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.UpdateTask(context.Background(), uuid.New(), uuid.New(), domain.TaskUpdate{})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})

	t.Run("invalid status is rejected before touching the store", func(t *testing.T) {
		svc, taskStore, _ := newTestService(t)
		bogus := domain.TaskStatus("archived")

		_, err := svc.UpdateTask(context.Background(), uuid.New(), uuid.New(), domain.TaskUpdate{Status: &bogus})
		assert.ErrorIs(t, err, domain.ErrInvalidTaskStatus)
		assert.Zero(t, taskStore.UpdateCalls)
	})

	t.Run("foreign-owned task returns not found", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Protected")

		newTitle := "Hijacked"
		_, err := svc.UpdateTask(context.Background(), uuid.New(), task.ID, domain.TaskUpdate{Title: &newTitle})
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		// The owner's copy is untouched.
		got, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Protected", got.Title)
	})
}

func TestDeleteTask(t *testing.T) {
	t.Run("removes task and cached copies", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Doomed")

		// Warm both the single-task entry and a listing.
		_, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		_, err = svc.ListTasks(context.Background(), ownerID, store.ListOptions{})
		require.NoError(t, err)

		require.NoError(t, svc.DeleteTask(context.Background(), ownerID, task.ID))

		_, err = svc.GetTask(context.Background(), ownerID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		tasks, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{})
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("foreign-owned task returns not found", func(t *testing.T) {
		svc, _, _ := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Safe")

		err := svc.DeleteTask(context.Background(), uuid.New(), task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)

		_, err = svc.GetTask(context.Background(), ownerID, task.ID)
		assert.NoError(t, err)
	})
}

func TestCacheFailuresDegrade(t *testing.T) {
	cacheDown := errors.New("connection refused")

	t.Run("read failure falls back to store", func(t *testing.T) {
		svc, taskStore, taskCache := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Still readable")

		taskCache.GetErr = cacheDown
		taskCache.SetErr = cacheDown

		got, err := svc.GetTask(context.Background(), ownerID, task.ID)
		require.NoError(t, err)
		assert.Equal(t, "Still readable", got.Title)
		assert.Equal(t, 1, taskStore.GetByIDCalls)

		tasks, err := svc.ListTasks(context.Background(), ownerID, store.ListOptions{})
		require.NoError(t, err)
		assert.Len(t, tasks, 1)
	})

	t.Run("invalidation failure does not fail the write", func(t *testing.T) {
		svc, _, taskCache := newTestService(t)
		ownerID := uuid.New()
		task := mustCreateTask(t, svc, ownerID, "Write anyway")

		taskCache.DeleteErr = cacheDown
		taskCache.DeletePatternErr = cacheDown

		newTitle := "Updated anyway"
		updated, err := svc.UpdateTask(context.Background(), ownerID, task.ID, domain.TaskUpdate{Title: &newTitle})
		require.NoError(t, err)
		assert.Equal(t, "Updated anyway", updated.Title)

		assert.NoError(t, svc.DeleteTask(context.Background(), ownerID, task.ID))
	})

	t.Run("create succeeds when listing sweep fails", func(t *testing.T) {
		svc, _, taskCache := newTestService(t)
		taskCache.DeletePatternErr = cacheDown

		_, err := svc.CreateTask(context.Background(), uuid.New(), "Created anyway", "", "", nil)
		assert.NoError(t, err)
	})
}

func TestNewTaskService(t *testing.T) {
	t.Run("panics on nil store", func(t *testing.T) {
		assert.Panics(t, func() {
			NewTaskService(nil, mocks.NewMockCache(), 0, nil)
		})
	})

	t.Run("panics on nil cache", func(t *testing.T) {
		assert.Panics(t, func() {
			NewTaskService(mocks.NewMockTaskStore(), nil, 0, nil)
		})
	})

	t.Run("non-positive TTL selects the default", func(t *testing.T) {
		svc := NewTaskService(mocks.NewMockTaskStore(), mocks.NewMockCache(), 0, nil)
		impl, ok := svc.(*taskService)
		require.True(t, ok)
		assert.Equal(t, DefaultCacheTTL, impl.ttl)
	})
}

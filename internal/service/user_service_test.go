package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/mocks"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

func newAccountFixture(t *testing.T) (UserService, TaskService, *mocks.MockUserStore, *mocks.MockTaskStore, *mocks.MockCache, *mocks.MockTxRunner) {
	t.Helper()
	userStore := mocks.NewMockUserStore()
	taskStore := mocks.NewMockTaskStore()
	taskCache := mocks.NewMockCache()
	txRunner := &mocks.MockTxRunner{}
	userSvc := NewUserService(txRunner, userStore, taskStore, taskCache, nil)
	taskSvc := NewTaskService(taskStore, taskCache, 0, nil)
	return userSvc, taskSvc, userStore, taskStore, taskCache, txRunner
}

func registerAccount(t *testing.T, users *mocks.MockUserStore, email string) uuid.UUID {
	t.Helper()
	user, err := domain.NewUser(email, "secret123", "")
	require.NoError(t, err)
	require.NoError(t, users.Create(context.Background(), user))
	return user.ID
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("removes user, tasks, and cached data", func(t *testing.T) {
		userSvc, taskSvc, userStore, taskStore, _, txRunner := newAccountFixture(t)
		userID := registerAccount(t, userStore, "user@example.com")

		task, err := taskSvc.CreateTask(ctx, userID, "Orphan-to-be", "", "", nil)
		require.NoError(t, err)

		// Warm the cache so the sweep has something to remove.
		_, err = taskSvc.GetTask(ctx, userID, task.ID)
		require.NoError(t, err)
		_, err = taskSvc.ListTasks(ctx, userID, store.ListOptions{})
		require.NoError(t, err)

		require.NoError(t, userSvc.DeleteAccount(ctx, userID))
		assert.Equal(t, 1, txRunner.RunTxCalls)

		_, err = userStore.GetByID(ctx, userID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)

		// The store reads below must miss both the cache and the store.
		storeReads := taskStore.GetByIDCalls
		_, err = taskSvc.GetTask(ctx, userID, task.ID)
		assert.ErrorIs(t, err, store.ErrTaskNotFound)
		assert.Equal(t, storeReads+1, taskStore.GetByIDCalls, "cached task entry should have been swept")
	})

	t.Run("unknown user returns not found", func(t *testing.T) {
		userSvc, _, _, _, _, _ := newAccountFixture(t)
		err := userSvc.DeleteAccount(ctx, uuid.New())
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})

	t.Run("transaction failure leaves no partial deletion", func(t *testing.T) {
		userSvc, _, userStore, taskStore, _, txRunner := newAccountFixture(t)
		userID := registerAccount(t, userStore, "user@example.com")

		txRunner.RunTxFn = func(ctx context.Context, fn store.TxFn) error {
			return errors.New("serialization failure")
		}

		err := userSvc.DeleteAccount(ctx, userID)
		require.Error(t, err)

		_, err = userStore.GetByID(ctx, userID)
		assert.NoError(t, err, "user should survive a failed transaction")
		assert.Zero(t, taskStore.DeleteCalls)
	})

	t.Run("cache sweep failure does not fail the deletion", func(t *testing.T) {
		userSvc, _, userStore, _, taskCache, _ := newAccountFixture(t)
		userID := registerAccount(t, userStore, "user@example.com")

		taskCache.DeletePatternErr = errors.New("connection refused")
		assert.NoError(t, userSvc.DeleteAccount(ctx, userID))
	})
}

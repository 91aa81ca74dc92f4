package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

func sampleTask(t *testing.T) *domain.Task {
	t.Helper()
	due := time.Date(2026, 9, 1, 12, 30, 0, 123456789, time.UTC)
	return &domain.Task{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Title:       "Ship release",
		Description: "cut the tag and announce",
		Status:      domain.TaskStatusInProgress,
		DueDate:     &due,
		CreatedAt:   time.Date(2026, 8, 20, 9, 0, 0, 42, time.UTC),
		UpdatedAt:   time.Date(2026, 8, 21, 10, 15, 0, 0, time.UTC),
	}
}

func TestTaskCodecRoundTrip(t *testing.T) {
	t.Run("all fields survive encode and decode", func(t *testing.T) {
		original := sampleTask(t)

		data, err := encodeTask(original)
		require.NoError(t, err)

		decoded, err := decodeTask(data)
		require.NoError(t, err)

		assert.Equal(t, original.ID, decoded.ID)
		assert.Equal(t, original.OwnerID, decoded.OwnerID)
		assert.Equal(t, original.Title, decoded.Title)
		assert.Equal(t, original.Description, decoded.Description)
		assert.Equal(t, original.Status, decoded.Status)
		require.NotNil(t, decoded.DueDate)
		assert.True(t, original.DueDate.Equal(*decoded.DueDate))
		assert.True(t, original.CreatedAt.Equal(decoded.CreatedAt))
		assert.True(t, original.UpdatedAt.Equal(decoded.UpdatedAt))
	})

	t.Run("nil due date stays nil", func(t *testing.T) {
		original := sampleTask(t)
		original.DueDate = nil

		data, err := encodeTask(original)
		require.NoError(t, err)

		decoded, err := decodeTask(data)
		require.NoError(t, err)
		assert.Nil(t, decoded.DueDate)
	})

	t.Run("list round-trips in order", func(t *testing.T) {
		first := sampleTask(t)
		second := sampleTask(t)
		second.Title = "Second"

		data, err := encodeTaskList([]*domain.Task{first, second})
		require.NoError(t, err)

		decoded, err := decodeTaskList(data)
		require.NoError(t, err)
		require.Len(t, decoded, 2)
		assert.Equal(t, first.ID, decoded[0].ID)
		assert.Equal(t, "Second", decoded[1].Title)
	})

	t.Run("empty list encodes to empty array", func(t *testing.T) {
		data, err := encodeTaskList(nil)
		require.NoError(t, err)
		assert.Equal(t, "[]", data)

		decoded, err := decodeTaskList(data)
		require.NoError(t, err)
		assert.Empty(t, decoded)
	})
}

func TestTaskCodecDecodeErrors(t *testing.T) {
	t.Run("malformed JSON", func(t *testing.T) {
		_, err := decodeTask("{broken")
		assert.Error(t, err)
	})

	t.Run("malformed timestamp", func(t *testing.T) {
		_, err := decodeTask(`{"id":"` + uuid.NewString() + `","owner_id":"` + uuid.NewString() +
			`","title":"x","status":"todo","created_at":"not-a-time","updated_at":"not-a-time"}`)
		assert.Error(t, err)
	})

	t.Run("list with malformed entry", func(t *testing.T) {
		_, err := decodeTaskList(`[{"created_at":"nope"}]`)
		assert.Error(t, err)
	})
}

func TestCacheKeys(t *testing.T) {
	ownerID := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	taskID := uuid.MustParse("aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee")

	t.Run("task key embeds owner and task", func(t *testing.T) {
		assert.Equal(t,
			"task:11111111-2222-3333-4444-555555555555:aaaaaaaa-bbbb-cccc-dddd-eeeeeeeeeeee",
			taskKey(ownerID, taskID))
	})

	t.Run("list key embeds pagination", func(t *testing.T) {
		key := listKey(ownerID, store.ListOptions{Skip: 5, Limit: 20})
		assert.Equal(t, "tasks:11111111-2222-3333-4444-555555555555:5:20", key)
	})

	t.Run("list key embeds status filter", func(t *testing.T) {
		done := domain.TaskStatusDone
		key := listKey(ownerID, store.ListOptions{Skip: 0, Limit: 10, Status: &done})
		assert.Equal(t, "tasks:11111111-2222-3333-4444-555555555555:0:10:done", key)
	})

	t.Run("listing pattern covers listing keys but not task keys", func(t *testing.T) {
		pattern := listPattern(ownerID)
		assert.Equal(t, "tasks:11111111-2222-3333-4444-555555555555:*", pattern)
	})
}

package service

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// cachedTask is the canonical serialized form of a task in the cache.
// It is an explicit codec boundary: exactly these fields are cacheable,
// timestamps are coerced to RFC3339 strings, and encode/decode round-trips
// are equality-preserving (a checkable property, see task_codec_test.go).
// Changing this struct changes the wire format of every cache entry.
type cachedTask struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner_id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	DueDate     string    `json:"due_date,omitempty"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
}

func toCachedTask(t *domain.Task) cachedTask {
	c := cachedTask{
		ID:          t.ID,
		OwnerID:     t.OwnerID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		CreatedAt:   t.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   t.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
	if t.DueDate != nil {
		c.DueDate = t.DueDate.UTC().Format(time.RFC3339Nano)
	}
	return c
}

func (c cachedTask) toDomain() (*domain.Task, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("decode cached task created_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, c.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("decode cached task updated_at: %w", err)
	}

	task := &domain.Task{
		ID:          c.ID,
		OwnerID:     c.OwnerID,
		Title:       c.Title,
		Description: c.Description,
		Status:      domain.TaskStatus(c.Status),
		CreatedAt:   createdAt,
		UpdatedAt:   updatedAt,
	}
	if c.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339Nano, c.DueDate)
		if err != nil {
			return nil, fmt.Errorf("decode cached task due_date: %w", err)
		}
		task.DueDate = &dueDate
	}
	return task, nil
}

// encodeTask serializes a single task for caching.
func encodeTask(t *domain.Task) (string, error) {
	data, err := json.Marshal(toCachedTask(t))
	if err != nil {
		return "", fmt.Errorf("encode cached task: %w", err)
	}
	return string(data), nil
}

// decodeTask deserializes a single cached task.
func decodeTask(data string) (*domain.Task, error) {
	var c cachedTask
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		return nil, fmt.Errorf("decode cached task: %w", err)
	}
	return c.toDomain()
}

// encodeTaskList serializes a task listing for caching. An empty listing
// encodes to "[]" and is cached like any other result.
func encodeTaskList(tasks []*domain.Task) (string, error) {
	cached := make([]cachedTask, 0, len(tasks))
	for _, t := range tasks {
		cached = append(cached, toCachedTask(t))
	}
	data, err := json.Marshal(cached)
	if err != nil {
		return "", fmt.Errorf("encode cached task list: %w", err)
	}
	return string(data), nil
}

// decodeTaskList deserializes a cached task listing.
func decodeTaskList(data string) ([]*domain.Task, error) {
	var cached []cachedTask
	if err := json.Unmarshal([]byte(data), &cached); err != nil {
		return nil, fmt.Errorf("decode cached task list: %w", err)
	}
	tasks := make([]*domain.Task, 0, len(cached))
	for _, c := range cached {
		task, err := c.toDomain()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, task)
	}
	return tasks, nil
}

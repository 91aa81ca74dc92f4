package mocks

import (
	"context"
	"database/sql"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing.
// By default it behaves as an in-memory store; individual methods can be
// overridden with the *Fn fields. Call counts let cache tests verify
// whether a read was served from cache or hit the store.
type MockTaskStore struct {
	mu    sync.Mutex
	tasks map[uuid.UUID]*domain.Task

	CreateFn        func(ctx context.Context, task *domain.Task) error
	GetByIDFn       func(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)
	ListFn          func(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error)
	UpdateFn        func(ctx context.Context, ownerID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)
	DeleteFn        func(ctx context.Context, ownerID, taskID uuid.UUID) error
	DeleteByOwnerFn func(ctx context.Context, ownerID uuid.UUID) (int64, error)

	CreateCalls  int
	GetByIDCalls int
	ListCalls    int
	UpdateCalls  int
	DeleteCalls  int
}

// NewMockTaskStore creates an empty in-memory task store.
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{tasks: make(map[uuid.UUID]*domain.Task)}
}

// Create implements store.TaskStore.
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	m.mu.Lock()
	m.CreateCalls++
	m.mu.Unlock()

	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *task
	m.tasks[task.ID] = &cp
	return nil
}

// GetByID implements store.TaskStore.
func (m *MockTaskStore) GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error) {
	m.mu.Lock()
	m.GetByIDCalls++
	m.mu.Unlock()

	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, ownerID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	cp := *task
	return &cp, nil
}

// List implements store.TaskStore.
func (m *MockTaskStore) List(ctx context.Context, ownerID uuid.UUID, opts store.ListOptions) ([]*domain.Task, error) {
	m.mu.Lock()
	m.ListCalls++
	m.mu.Unlock()

	if m.ListFn != nil {
		return m.ListFn(ctx, ownerID, opts)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var owned []*domain.Task
	for _, task := range m.tasks {
		if task.OwnerID != ownerID {
			continue
		}
		if opts.Status != nil && task.Status != *opts.Status {
			continue
		}
		cp := *task
		owned = append(owned, &cp)
	}
	sort.Slice(owned, func(i, j int) bool {
		return owned[i].CreatedAt.After(owned[j].CreatedAt)
	})

	if opts.Skip >= len(owned) {
		return []*domain.Task{}, nil
	}
	owned = owned[opts.Skip:]

	limit := opts.Limit
	if limit <= 0 {
		limit = store.DefaultListLimit
	}
	if limit < len(owned) {
		owned = owned[:limit]
	}
	return owned, nil
}

// Update implements store.TaskStore.
func (m *MockTaskStore) Update(ctx context.Context, ownerID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error) {
	m.mu.Lock()
	m.UpdateCalls++
	m.mu.Unlock()

	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, ownerID, taskID, update)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return nil, store.ErrTaskNotFound
	}
	if err := update.Validate(); err != nil {
		return nil, err
	}
	update.Apply(task)
	cp := *task
	return &cp, nil
}

// Delete implements store.TaskStore.
func (m *MockTaskStore) Delete(ctx context.Context, ownerID, taskID uuid.UUID) error {
	m.mu.Lock()
	m.DeleteCalls++
	m.mu.Unlock()

	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, ownerID, taskID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	task, ok := m.tasks[taskID]
	if !ok || task.OwnerID != ownerID {
		return store.ErrTaskNotFound
	}
	delete(m.tasks, taskID)
	return nil
}

// DeleteByOwner implements store.TaskStore.
func (m *MockTaskStore) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	if m.DeleteByOwnerFn != nil {
		return m.DeleteByOwnerFn(ctx, ownerID)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	var removed int64
	for id, task := range m.tasks {
		if task.OwnerID == ownerID {
			delete(m.tasks, id)
			removed++
		}
	}
	return removed, nil
}

// WithTx implements store.TaskStore. The mock has no transaction
// semantics, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// Reset clears call counters while keeping stored tasks.
func (m *MockTaskStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CreateCalls = 0
	m.GetByIDCalls = 0
	m.ListCalls = 0
	m.UpdateCalls = 0
	m.DeleteCalls = 0
}

package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/domain"
)

// List pagination bounds, enforced by callers before reaching the store.
const (
	// DefaultListLimit is the page size used when the caller supplies none.
	DefaultListLimit = 20

	// MaxListLimit is the largest page size a caller may request.
	MaxListLimit = 100
)

// ListOptions controls pagination and filtering of task listings.
type ListOptions struct {
	// Skip is the number of tasks to skip (offset). Must be >= 0.
	Skip int

	// Limit is the maximum number of tasks to return. Must be in [1, MaxListLimit].
	Limit int

	// Status, when non-nil, restricts the listing to tasks with that status.
	Status *domain.TaskStatus
}

// TaskStore defines the interface for task data persistence.
// Every operation is scoped by the owning user's ID: a task belonging to a
// different owner behaves exactly like a task that does not exist.
type TaskStore interface {
	// Create saves a new task to the store.
	// Returns validation errors from the domain Task if data is invalid.
	// Returns ErrInvalidEntity if the owner does not exist.
	Create(ctx context.Context, task *domain.Task) error

	// GetByID retrieves a task by its unique ID, scoped to the owner.
	// Returns ErrTaskNotFound if the task does not exist or is owned by
	// someone else.
	GetByID(ctx context.Context, ownerID, taskID uuid.UUID) (*domain.Task, error)

	// List retrieves the owner's tasks ordered by creation time descending,
	// honoring the pagination and status filter in opts.
	List(ctx context.Context, ownerID uuid.UUID, opts ListOptions) ([]*domain.Task, error)

	// Update applies a partial field set to an existing task and refreshes
	// its updated_at timestamp. Returns the updated task.
	// Returns ErrTaskNotFound if the task does not exist or is owned by
	// someone else.
	Update(ctx context.Context, ownerID, taskID uuid.UUID, update domain.TaskUpdate) (*domain.Task, error)

	// Delete removes a task from the store, scoped to the owner.
	// Returns ErrTaskNotFound if no row was removed.
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) error

	// DeleteByOwner removes every task belonging to the owner, returning
	// the number of tasks removed. Used during account deletion.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)

	// WithTx returns a new TaskStore instance that uses the provided transaction.
	// The transaction should be created and managed by the caller.
	WithTx(tx *sql.Tx) TaskStore
}

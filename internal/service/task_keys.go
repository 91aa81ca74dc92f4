package service

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/phrazzld/tasktrack-api/internal/store"
)

// Cache key layout. Keys are structured strings encoding scope so that a
// single glob can sweep all listings belonging to one owner:
//
//	task:{owner_id}:{task_id}                      single task
//	tasks:{owner_id}:{skip}:{limit}[:{status}]     one listing page
//	tasks:{owner_id}:*                             every listing of an owner

// taskKey returns the cache key for a single task.
func taskKey(ownerID, taskID uuid.UUID) string {
	return fmt.Sprintf("task:%s:%s", ownerID, taskID)
}

// listKey returns the cache key for one listing page. Each distinct
// combination of owner, skip, limit, and status filter is a distinct entry.
func listKey(ownerID uuid.UUID, opts store.ListOptions) string {
	key := fmt.Sprintf("tasks:%s:%d:%d", ownerID, opts.Skip, opts.Limit)
	if opts.Status != nil {
		key += ":" + string(*opts.Status)
	}
	return key
}

// listPattern returns the glob matching every listing key of an owner.
func listPattern(ownerID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s:*", ownerID)
}

// taskPattern returns the glob matching every single-task key of an owner.
func taskPattern(ownerID uuid.UUID) string {
	return fmt.Sprintf("task:%s:*", ownerID)
}

// validateListOptions normalizes and checks pagination and filter bounds
// before any store or cache access.
func validateListOptions(opts *store.ListOptions) error {
	if opts.Limit == 0 {
		opts.Limit = store.DefaultListLimit
	}
	if opts.Skip < 0 || opts.Limit < 1 || opts.Limit > store.MaxListLimit {
		return ErrInvalidPagination
	}
	if opts.Status != nil && !opts.Status.IsValid() {
		return ErrInvalidStatusFilter
	}
	return nil
}

package service

import "errors"

// Common service errors.
var (
	// ErrInvalidPagination is returned when listing parameters fall outside
	// the allowed bounds (skip >= 0, 1 <= limit <= 100).
	ErrInvalidPagination = errors.New("invalid pagination parameters")

	// ErrInvalidStatusFilter is returned when a listing status filter is not
	// one of the recognized task statuses.
	ErrInvalidStatusFilter = errors.New("invalid status filter")
)

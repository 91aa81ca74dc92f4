// Package postgres provides PostgreSQL implementations of the store
// interfaces using database/sql with the pgx driver. It is the system of
// record: all durable user and task state lives here, and the cache layer
// is repopulated from it on every miss.
package postgres

// Package store defines the persistence interfaces for users and tasks,
// the sentinel errors store implementations return, and the transaction
// plumbing (DBTX, RunInTransaction) that lets stores participate in a
// shared database transaction. Task operations are always scoped by the
// owning user's ID.
package store

// Package service contains the application's orchestration logic. Its
// centerpiece is the TaskService, which mediates between the PostgreSQL
// system of record and the best-effort cache: reads go cache-first with
// lazy repopulation, writes go store-first with post-commit invalidation.
package service

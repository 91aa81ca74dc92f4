// Package domain contains the core entities of the task tracker: users,
// tasks, and their validation rules. It is independent of storage,
// caching, and transport concerns; the rest of the application depends
// on it, never the other way around.
package domain

// Package mocks provides hand-written test doubles for the store and
// auth interfaces. Each mock keeps an in-memory default behavior, an
// optional per-method override function, and call counters so tests can
// assert how many times the backing store was actually consulted.
package mocks

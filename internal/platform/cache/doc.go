// Package cache provides a best-effort, TTL-bounded key-value cache
// abstraction with Redis and in-memory backends.
//
// The cache is never a source of truth: callers must tolerate missing
// entries, and every operation is bounded by a short per-call timeout so
// cache slowness or unavailability degrades service latency, never
// correctness. Values are opaque strings; serialization is the caller's
// concern.
//
// Exact-key removal (Delete) and glob-pattern removal (DeletePattern) are
// two explicit operations. DeletePattern is not atomic: on the Redis
// backend it walks the keyspace with SCAN, so keys written concurrently
// during the scan may or may not be observed. Callers rely on the TTL to
// bound any staleness this leaves behind.
package cache

// Package timeouts defines shared timeout constants used across the
// rxlab services. Centralizing these values prevents drift between
// service boundaries and makes the durations discoverable.
package timeouts

import "time"

// ReadHeader limits how long an HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long an HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// MatchRun caps a single match run from the web surface. The sandboxed
// engine itself is not time-boxed; this only releases the waiting
// request. See the concurrency notes in internal/match/luaengine.
const MatchRun = 10 * time.Second

// SnapshotSave caps a background snapshot write.
const SnapshotSave = 2 * time.Second

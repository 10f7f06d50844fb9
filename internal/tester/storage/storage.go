// Package storage defines persistence for tester session snapshots.
package storage

import (
	"context"

	"github.com/louisbranch/rxlab/internal/match"
)

// SnapshotKey is the single well-known key under which the tester
// session persists its state.
const SnapshotKey = "tester"

// SessionState is the restorable portion of a tester session. All
// fields are plain values so the snapshot survives process restarts.
type SessionState struct {
	Pattern    string         `json:"pattern"`
	Flags      string         `json:"flags"`
	TestString string         `json:"test_string"`
	Engine     match.EngineID `json:"engine"`
}

// SnapshotStore persists session snapshots. Load returns ok=false when
// no usable snapshot exists; implementations discard corrupt snapshots
// rather than surfacing them.
type SnapshotStore interface {
	Save(ctx context.Context, key string, state SessionState) error
	Load(ctx context.Context, key string) (SessionState, bool, error)
}

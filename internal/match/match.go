// Package match defines the engine-neutral data model for regex test
// runs: pattern specs, normalized matches, the engine contract, flag
// validation, and the per-engine compile cache.
//
// Two backends implement the Engine interface: the native Go engine
// (internal/match/native) and the sandboxed Lua runtime
// (internal/match/luaengine). Callers treat both uniformly; behavioral
// differences are limited to pattern dialect and flag alphabet.
package match

import (
	"fmt"
	"strings"
)

// EngineID identifies a regex-matching backend.
type EngineID string

const (
	// EngineGo is the native backend built on Go's regexp package.
	EngineGo EngineID = "go"
	// EngineLua is the sandboxed backend hosted in an embedded Lua runtime.
	EngineLua EngineID = "lua"
)

// ParseEngineID validates a raw engine identifier.
func ParseEngineID(raw string) (EngineID, bool) {
	switch EngineID(strings.TrimSpace(raw)) {
	case EngineGo:
		return EngineGo, true
	case EngineLua:
		return EngineLua, true
	}
	return "", false
}

// PatternSpec is the input to a compile: a pattern, its flag string, and
// the engine that should run it.
type PatternSpec struct {
	Pattern string
	Flags   string
	Engine  EngineID
}

// Group is one capture-group value within a match. Present is false when
// the group did not participate in the match.
type Group struct {
	Value   string
	Present bool
}

// Match is a single normalized match. Index and Length are byte offsets
// into the subject text; Groups follows capture-group declaration order.
type Match struct {
	Index  int
	Length int
	Text   string
	Groups []Group
}

// End returns the byte offset one past the match.
func (m Match) End() int {
	return m.Index + m.Length
}

// MatchSet is an ordered sequence of matches from a single left-to-right
// scan, ascending by Index.
type MatchSet []Match

// Handle is an opaque compiled-pattern object owned by the engine that
// produced it. Handles are never shared across engines.
type Handle interface {
	// Spec returns the pattern and flags this handle was compiled from.
	Spec() PatternSpec
}

// FlagGlobal selects find-all, non-overlapping, left-to-right execution.
// It is recognized by both engines and handled by the adapters rather
// than the underlying pattern engines.
const FlagGlobal = 'g'

// CompileError is a malformed-pattern failure surfaced by an engine. The
// Detail field carries the raw host diagnostic untouched; translation to
// user-facing text happens at the service boundary.
type CompileError struct {
	Engine  EngineID
	Pattern string
	Detail  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile pattern on %s engine: %s", e.Engine, e.Detail)
}

// ErrEngineLoading reports that the sandboxed engine is still
// bootstrapping. Callers must re-invoke after bootstrap completes;
// execution requests are never queued behind a bootstrap.
var ErrEngineLoading = fmt.Errorf("engine runtime is still loading")

// BootstrapError is a fatal sandboxed-runtime initialization failure.
// The engine stays unusable until a new bootstrap is requested; the
// native engine is unaffected.
type BootstrapError struct {
	Engine EngineID
	Cause  error
}

func (e *BootstrapError) Error() string {
	return fmt.Sprintf("bootstrap %s engine: %v", e.Engine, e.Cause)
}

func (e *BootstrapError) Unwrap() error {
	return e.Cause
}

// Package tester orchestrates a regex-testing session: it routes runs
// to the selected engine through the compile cache, renders results,
// and persists session state so a restart resumes where the user
// stopped.
package tester

import (
	"context"
	stderrors "errors"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/louisbranch/rxlab/internal/match"
	"github.com/louisbranch/rxlab/internal/match/render"
	"github.com/louisbranch/rxlab/internal/match/snippet"
	"github.com/louisbranch/rxlab/internal/platform/errors"
	"github.com/louisbranch/rxlab/internal/platform/timeouts"
	"github.com/louisbranch/rxlab/internal/tester/storage"
)

// DebounceInterval is how long the session waits after the last run
// before persisting a snapshot. Bursts of keystroke-driven runs
// collapse into one save.
const DebounceInterval = 200 * time.Millisecond

// MaxSubjectBytes is the ceiling on subject size. Longer subjects are
// truncated before matching and the result carries a warning, since
// render and match cost grows with the subject.
const MaxSubjectBytes = 64 << 10

// RunInput is one full evaluation request: the pattern, its flags, the
// subject text, and which engine to use.
type RunInput struct {
	Pattern    string
	Flags      string
	TestString string
	Engine     match.EngineID
}

// RunResult is the outcome of a successful run.
type RunResult struct {
	Engine match.EngineID
	// Matches is the normalized match set before rendering, for
	// surfaces that want structured data instead of HTML.
	Matches match.MatchSet
	Output  render.Output
	// Warnings are advisory diagnostics (flag mismatches, oversized
	// subject) that do not prevent the run.
	Warnings []string
	// Stale reports that a newer run superseded this one while it was
	// executing; its output must not be displayed or persisted.
	Stale bool
}

// Session is the single shared tester session. It is safe for
// concurrent use; overlapping runs are sequenced so only the newest
// one's result is committed.
type Session struct {
	engines map[match.EngineID]match.Engine
	cache   *match.Cache
	store   storage.SnapshotStore
	saver   *Debouncer
	logger  *log.Logger

	mu    sync.Mutex
	state storage.SessionState
	seq   uint64
}

// NewSession wires a session over the given engines. The store may be
// nil, in which case state is kept in memory only.
func NewSession(store storage.SnapshotStore, logger *log.Logger, engines ...match.Engine) *Session {
	byID := make(map[match.EngineID]match.Engine, len(engines))
	for _, engine := range engines {
		byID[engine.ID()] = engine
	}
	return &Session{
		engines: byID,
		cache:   match.NewCache(),
		store:   store,
		saver:   NewDebouncer(DebounceInterval),
		logger:  logger,
		state:   storage.SessionState{Engine: match.EngineGo},
	}
}

// Restore loads the persisted snapshot, if any, into the session.
func (s *Session) Restore(ctx context.Context) error {
	if s.store == nil {
		return nil
	}

	state, ok, err := s.store.Load(ctx, storage.SnapshotKey)
	if err != nil {
		return errors.Wrap(errors.CodeStorageUnavailable, "load session snapshot", err)
	}
	if !ok {
		return nil
	}

	s.mu.Lock()
	s.state = state
	s.mu.Unlock()
	return nil
}

// State returns the current session state.
func (s *Session) State() storage.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Snippet renders the session's current pattern in the requested form
// for the given engine.
func (s *Session) Snippet(engine match.EngineID, kind snippet.Kind) (string, error) {
	if _, ok := s.engines[engine]; !ok {
		return "", errors.WithMetadata(errors.CodeEngineUnknown, "unknown engine",
			map[string]string{"engine": string(engine)})
	}

	state := s.State()
	spec := match.PatternSpec{
		Pattern: state.Pattern,
		Flags:   match.FilterFlags(state.Flags, engine),
		Engine:  engine,
	}
	return snippet.Format(spec, kind), nil
}

// Run evaluates one input against its engine and renders the result.
// It updates the session state and schedules a debounced snapshot save
// unless a newer run supersedes this one first.
func (s *Session) Run(ctx context.Context, input RunInput) (RunResult, error) {
	tracer := otel.Tracer("rxlab/tester")
	ctx, span := tracer.Start(ctx, "tester.run")
	defer span.End()
	span.SetAttributes(
		attribute.String("engine", string(input.Engine)),
		attribute.Int("subject_bytes", len(input.TestString)),
	)

	engine, ok := s.engines[input.Engine]
	if !ok {
		return RunResult{}, errors.WithMetadata(errors.CodeEngineUnknown, "unknown engine",
			map[string]string{"engine": string(input.Engine)})
	}

	seq := s.begin(input.Engine)

	var warnings []string
	if check := match.CheckFlags(input.Flags, input.Engine); check.Warning != "" {
		warnings = append(warnings, check.Warning)
	}
	if len(input.TestString) > MaxSubjectBytes {
		cut := MaxSubjectBytes
		for cut > 0 && !utf8.RuneStart(input.TestString[cut]) {
			cut--
		}
		warnings = append(warnings, fmt.Sprintf(
			"test string exceeds %d bytes; matching against the first %d bytes only", MaxSubjectBytes, cut))
		input.TestString = input.TestString[:cut]
	}

	handle, err := s.cache.GetOrCompile(ctx, engine, input.Pattern, input.Flags)
	if err != nil {
		err = classifyEngineError(err, input)
		span.SetStatus(codes.Error, err.Error())
		return RunResult{}, err
	}

	runCtx, cancel := context.WithTimeout(ctx, timeouts.MatchRun)
	defer cancel()

	matches, err := engine.Execute(runCtx, handle, input.TestString)
	if err != nil {
		err = classifyEngineError(err, input)
		span.SetStatus(codes.Error, err.Error())
		return RunResult{}, err
	}

	result := RunResult{
		Engine:   input.Engine,
		Matches:  matches,
		Output:   render.Render(input.TestString, matches),
		Warnings: warnings,
	}
	if !s.commit(seq, input) {
		result.Stale = true
		return result, nil
	}

	s.saver.Trigger(s.persist)
	return result, nil
}

// Flush persists any pending snapshot immediately. Called at shutdown.
func (s *Session) Flush() {
	s.saver.Flush()
}

// begin assigns this run the next sequence number and invalidates the
// compile cache when the engine changed since the last run.
func (s *Session) begin(engine match.EngineID) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if engine != s.state.Engine {
		s.cache.InvalidateAll()
	}
	s.seq++
	return s.seq
}

// commit records the run's input as the session state. It reports false
// when a newer run started in the meantime, in which case the caller's
// result is stale.
func (s *Session) commit(seq uint64, input RunInput) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return false
	}
	s.state = storage.SessionState{
		Pattern:    input.Pattern,
		Flags:      input.Flags,
		TestString: input.TestString,
		Engine:     input.Engine,
	}
	return true
}

// persist writes the current state to the snapshot store. Failures are
// logged and swallowed; persistence is best effort and must not break
// the session.
func (s *Session) persist() {
	if s.store == nil {
		return
	}

	state := s.State()
	ctx, cancel := context.WithTimeout(context.Background(), timeouts.SnapshotSave)
	defer cancel()

	if err := s.store.Save(ctx, storage.SnapshotKey, state); err != nil {
		if s.logger != nil {
			s.logger.Printf("snapshot save failed: %v", err)
		}
	}
}

// classifyEngineError wraps engine failures in domain errors so the
// surfaces can map them to responses.
func classifyEngineError(err error, input RunInput) error {
	var compileErr *match.CompileError
	var bootErr *match.BootstrapError
	switch {
	case stderrors.Is(err, match.ErrEngineLoading):
		return errors.Wrap(errors.CodeEngineLoading, "engine runtime is still loading", err)
	case stderrors.As(err, &compileErr):
		return errors.WrapWithMetadata(errors.CodePatternCompile, compileErr.Detail,
			map[string]string{"engine": string(compileErr.Engine), "pattern": input.Pattern}, err)
	case stderrors.As(err, &bootErr):
		return errors.Wrap(errors.CodeEngineBootstrap, "engine runtime failed to start", err)
	default:
		return errors.Wrap(errors.CodeEngineExecution, "match run failed", err)
	}
}

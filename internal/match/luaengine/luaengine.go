// Package luaengine implements the match.Engine contract on a sandboxed
// Lua 5.2 runtime embedded via go-lua.
//
// A lua.State is not safe for concurrent use, so a single worker
// goroutine owns it exclusively and every compile/execute crosses a
// request/response channel. The runtime is bootstrapped once per engine
// lifecycle: Uninitialized -> Bootstrapping -> Ready, or Failed when the
// support script cannot be loaded. Requests arriving before Ready are
// rejected with match.ErrEngineLoading rather than queued.
//
// No deadline is imposed on an in-flight execution. A pathological
// pattern can stall the worker until it finishes; callers time out on
// their side but the worker keeps running.
package luaengine

import (
	"context"
	_ "embed"
	"fmt"
	"sync"

	"github.com/louisbranch/rxlab/internal/match"
)

//go:embed engine.lua
var engineSource string

// Option bits marshaled to rx_compile. Mirrored in engine.lua.
const (
	optIgnoreCase = 1
	optVerbose    = 2
	optASCII      = 4
)

// Phase is the bootstrap state of the Lua runtime.
type Phase int

const (
	// PhaseUninitialized means no bootstrap has been requested yet.
	PhaseUninitialized Phase = iota
	// PhaseBootstrapping means the runtime is loading; requests are
	// rejected with match.ErrEngineLoading.
	PhaseBootstrapping
	// PhaseReady means the runtime accepts requests.
	PhaseReady
	// PhaseFailed means bootstrap failed; a new Bootstrap call retries.
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseBootstrapping:
		return "bootstrapping"
	case PhaseReady:
		return "ready"
	case PhaseFailed:
		return "failed"
	default:
		return "uninitialized"
	}
}

type request struct {
	compile bool
	pattern string
	opts    int
	// execute fields
	compiled string
	text     string
	global   bool

	reply chan response
}

type response struct {
	compiled string
	matches  match.MatchSet
	err      error
}

// Engine is the sandboxed Lua backend.
type Engine struct {
	mu      sync.Mutex
	phase   Phase
	bootErr error
	reqs    chan request
	booted  chan struct{}
	// done is closed by Close to stop the worker; requests select on it
	// so shutdown never races a sender. The request channel itself is
	// never closed.
	done chan struct{}
}

// New returns an engine with no runtime; callers request Bootstrap
// explicitly (or implicitly through the first Compile).
func New() *Engine {
	return &Engine{}
}

// ID identifies this backend.
func (e *Engine) ID() match.EngineID {
	return match.EngineLua
}

// FlagAlphabet returns the flags the Lua engine recognizes.
func (e *Engine) FlagAlphabet() string {
	return match.LuaFlagAlphabet
}

// Bootstrap starts the runtime worker unless one is already starting or
// ready. It returns immediately with the current phase; a bootstrap
// already in flight is never restarted. After a failure, calling
// Bootstrap again retries from scratch.
func (e *Engine) Bootstrap(_ context.Context) Phase {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.phase {
	case PhaseBootstrapping, PhaseReady:
		return e.phase
	}

	e.phase = PhaseBootstrapping
	e.bootErr = nil
	e.reqs = make(chan request)
	e.booted = make(chan struct{})
	e.done = make(chan struct{})
	go e.run(e.reqs, e.booted, e.done)
	return e.phase
}

// Phase returns the current bootstrap phase.
func (e *Engine) Phase() Phase {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.phase
}

// WaitReady blocks until the pending bootstrap settles or ctx ends.
// It returns nil when the runtime is ready and the bootstrap failure
// otherwise. Calling WaitReady without a bootstrap in flight is an
// error rather than an implicit Bootstrap.
func (e *Engine) WaitReady(ctx context.Context) error {
	e.mu.Lock()
	booted := e.booted
	e.mu.Unlock()
	if booted == nil {
		return fmt.Errorf("bootstrap has not been requested")
	}

	select {
	case <-booted:
	case <-ctx.Done():
		return ctx.Err()
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.phase == PhaseFailed {
		return e.bootErr
	}
	return nil
}

// Close shuts the worker down and resets the engine to Uninitialized.
// In-flight requests that already reached the worker are answered;
// everything else fails with match.ErrEngineLoading.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.done != nil {
		close(e.done)
	}
	e.done = nil
	e.reqs = nil
	e.booted = nil
	e.phase = PhaseUninitialized
	e.bootErr = nil
}

// Compile maps the filtered flags onto the runtime's option bitmask and
// asks the worker to transform and validate the pattern. While the
// runtime bootstraps it returns match.ErrEngineLoading; the caller
// re-invokes once bootstrap settles.
func (e *Engine) Compile(ctx context.Context, pattern, flags string) (match.Handle, error) {
	filtered := match.FilterFlags(flags, match.EngineLua)

	reqs, done, err := e.ready(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := e.roundTrip(ctx, reqs, done, request{
		compile: true,
		pattern: pattern,
		opts:    optionBits(filtered),
	})
	if err != nil {
		return nil, err
	}
	if resp.err != nil {
		return nil, resp.err
	}

	return &handle{
		spec:     match.PatternSpec{Pattern: pattern, Flags: filtered, Engine: match.EngineLua},
		compiled: resp.compiled,
		global:   match.HasFlag(filtered, match.FlagGlobal),
	}, nil
}

// Execute runs a compiled handle against text on the worker goroutine.
func (e *Engine) Execute(ctx context.Context, h match.Handle, text string) (match.MatchSet, error) {
	lh, ok := h.(*handle)
	if !ok || lh == nil {
		return nil, &match.CompileError{Engine: match.EngineLua, Detail: "handle was not produced by the lua engine"}
	}

	reqs, done, err := e.ready(ctx)
	if err != nil {
		return nil, err
	}

	resp, err := e.roundTrip(ctx, reqs, done, request{
		compiled: lh.compiled,
		text:     text,
		global:   lh.global,
	})
	if err != nil {
		return nil, err
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return resp.matches, nil
}

// ready reports the request and shutdown channels when the runtime is
// usable, kicking a bootstrap off on first use. A failed bootstrap is
// reported once and the engine is reset, so the next request retries
// from scratch.
func (e *Engine) ready(ctx context.Context) (chan request, chan struct{}, error) {
	e.mu.Lock()
	phase := e.phase
	reqs := e.reqs
	done := e.done
	bootErr := e.bootErr
	if phase == PhaseFailed {
		e.phase = PhaseUninitialized
		e.bootErr = nil
		e.reqs = nil
		e.booted = nil
		e.done = nil
	}
	e.mu.Unlock()

	switch phase {
	case PhaseReady:
		return reqs, done, nil
	case PhaseFailed:
		return nil, nil, bootErr
	case PhaseUninitialized:
		e.Bootstrap(ctx)
		return nil, nil, match.ErrEngineLoading
	default:
		return nil, nil, match.ErrEngineLoading
	}
}

func (e *Engine) roundTrip(ctx context.Context, reqs chan request, done chan struct{}, req request) (response, error) {
	req.reply = make(chan response, 1)
	select {
	case reqs <- req:
	case <-done:
		return response{}, match.ErrEngineLoading
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
	// A request the worker accepted is always answered, even when the
	// engine closes immediately afterwards.
	select {
	case resp := <-req.reply:
		return resp, nil
	case <-ctx.Done():
		return response{}, ctx.Err()
	}
}

func optionBits(flags string) int {
	bits := 0
	if match.HasFlag(flags, 'i') {
		bits |= optIgnoreCase
	}
	if match.HasFlag(flags, 'x') {
		bits |= optVerbose
	}
	if match.HasFlag(flags, 'a') {
		bits |= optASCII
	}
	return bits
}

// settle records the bootstrap outcome, unless the engine was reset (or
// re-bootstrapped) while this worker was still starting, in which case
// the stale outcome is dropped.
func (e *Engine) settle(booted chan struct{}, phase Phase, bootErr error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.booted != booted {
		return
	}
	e.phase = phase
	e.bootErr = bootErr
}

// run owns the lua.State for the lifetime of one bootstrap. It loads the
// support script, flips the engine to Ready or Failed, and then serves
// requests until Close signals shutdown.
func (e *Engine) run(reqs chan request, booted chan struct{}, done chan struct{}) {
	worker := &luaWorker{}

	if err := worker.bootstrap(); err != nil {
		e.settle(booted, PhaseFailed, &match.BootstrapError{Engine: match.EngineLua, Cause: err})
		close(booted)
		return
	}

	e.settle(booted, PhaseReady, nil)
	close(booted)

	for {
		select {
		case req := <-reqs:
			if req.compile {
				compiled, err := worker.compile(req.pattern, req.opts)
				req.reply <- response{compiled: compiled, err: err}
				continue
			}
			matches, err := worker.execute(req.compiled, req.text, req.global)
			req.reply <- response{matches: matches, err: err}
		case <-done:
			return
		}
	}
}

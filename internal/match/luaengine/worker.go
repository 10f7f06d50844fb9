package luaengine

import (
	"fmt"

	lua "github.com/Shopify/go-lua"

	"github.com/louisbranch/rxlab/internal/match"
)

// luaWorker wraps the lua.State owned by the worker goroutine. Every
// call restores the stack to its pre-call height before returning, so
// values obtained from the runtime never outlive their extraction.
type luaWorker struct {
	state *lua.State

	// collecting receives emitted match records for the request that is
	// currently executing. Only the worker goroutine touches it.
	collecting *match.MatchSet
}

func (w *luaWorker) bootstrap() error {
	state := lua.NewState()
	lua.OpenLibraries(state)

	state.Register("rx_emit", w.emit)

	if err := lua.LoadBuffer(state, engineSource, "engine.lua", ""); err != nil {
		return fmt.Errorf("load engine script: %w", err)
	}
	if err := state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("run engine script: %w", err)
	}

	w.state = state
	return nil
}

// compile calls rx_compile(pattern, opts) and returns the transformed
// pattern, or the runtime's raw diagnostic as a *match.CompileError.
func (w *luaWorker) compile(pattern string, opts int) (string, error) {
	state := w.state
	base := state.Top()
	defer state.SetTop(base)

	state.Global("rx_compile")
	state.PushString(pattern)
	state.PushInteger(opts)
	if err := state.ProtectedCall(2, 2, 0); err != nil {
		return "", &match.CompileError{Engine: match.EngineLua, Pattern: pattern, Detail: err.Error()}
	}

	// Stack: compiled|nil, errmsg|nil.
	if state.TypeOf(-2) == lua.TypeNil {
		detail, _ := state.ToString(-1)
		return "", &match.CompileError{Engine: match.EngineLua, Pattern: pattern, Detail: detail}
	}
	compiled, ok := state.ToString(-2)
	if !ok {
		return "", &match.CompileError{Engine: match.EngineLua, Pattern: pattern, Detail: "engine script returned a non-string pattern"}
	}
	return compiled, nil
}

// execute calls rx_execute(compiled, text, global). Match records arrive
// through the rx_emit callback while the call is in flight.
func (w *luaWorker) execute(compiled, text string, global bool) (match.MatchSet, error) {
	state := w.state
	base := state.Top()
	defer state.SetTop(base)

	set := match.MatchSet{}
	w.collecting = &set
	defer func() { w.collecting = nil }()

	state.Global("rx_execute")
	state.PushString(compiled)
	state.PushString(text)
	state.PushBoolean(global)
	if err := state.ProtectedCall(3, 1, 0); err != nil {
		return nil, &match.CompileError{Engine: match.EngineLua, Pattern: compiled, Detail: err.Error()}
	}
	return set, nil
}

// emit is called from Lua as rx_emit(start, length, text, captures...).
// Offsets arrive 1-based; capture values may be numbers for position
// captures and are coerced to strings.
func (w *luaWorker) emit(state *lua.State) int {
	if w.collecting == nil {
		lua.Errorf(state, "rx_emit called outside an execution")
		return 0
	}

	start := lua.CheckInteger(state, 1)
	length := lua.CheckInteger(state, 2)
	text := lua.CheckString(state, 3)

	m := match.Match{
		Index:  start - 1,
		Length: length,
		Text:   text,
	}
	top := state.Top()
	for i := 4; i <= top; i++ {
		m.Groups = append(m.Groups, match.Group{Value: lua.CheckString(state, i), Present: true})
	}

	*w.collecting = append(*w.collecting, m)
	return 0
}

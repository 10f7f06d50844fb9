package luaengine

import "github.com/louisbranch/rxlab/internal/match"

// handle is the Lua engine's compiled-pattern object: the transformed
// pattern string the runtime validated, plus the execution mode. The
// transformed pattern stays opaque to callers.
type handle struct {
	spec     match.PatternSpec
	compiled string
	global   bool
}

func (h *handle) Spec() match.PatternSpec {
	return h.spec
}

package native

import (
	"regexp"

	"github.com/louisbranch/rxlab/internal/match"
)

// handle is the native engine's compiled-pattern object. It is owned by
// the engine instance and invalidated by the caller's cache whenever the
// pattern or flags change.
type handle struct {
	spec   match.PatternSpec
	re     *regexp.Regexp
	global bool
}

func (h *handle) Spec() match.PatternSpec {
	return h.spec
}

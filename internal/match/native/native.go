// Package native implements the match.Engine contract on top of Go's
// regexp package. Compilation and execution are synchronous; the engine
// holds no state beyond the handles it hands out.
package native

import (
	"context"
	"regexp"
	"strings"

	"github.com/louisbranch/rxlab/internal/match"
)

// Engine is the native Go regexp backend.
type Engine struct{}

// New returns the native engine.
func New() *Engine {
	return &Engine{}
}

// ID identifies this backend.
func (e *Engine) ID() match.EngineID {
	return match.EngineGo
}

// FlagAlphabet returns the flags the native engine recognizes.
func (e *Engine) FlagAlphabet() string {
	return match.GoFlagAlphabet
}

// Compile builds a handle from the pattern, filtering flag characters
// the native engine does not recognize. The i, m, s, and U flags become
// an inline (?...) group; g only affects Execute.
func (e *Engine) Compile(_ context.Context, pattern, flags string) (match.Handle, error) {
	filtered := match.FilterFlags(flags, match.EngineGo)

	var inline strings.Builder
	for _, c := range filtered {
		if c != match.FlagGlobal {
			inline.WriteRune(c)
		}
	}
	expr := pattern
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + pattern
	}

	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, &match.CompileError{
			Engine:  match.EngineGo,
			Pattern: pattern,
			Detail:  err.Error(),
		}
	}

	return &handle{
		spec:   match.PatternSpec{Pattern: pattern, Flags: filtered, Engine: match.EngineGo},
		re:     re,
		global: match.HasFlag(filtered, match.FlagGlobal),
	}, nil
}

// Execute runs a compiled handle against text. With the global flag it
// returns every non-overlapping match; otherwise at most the first.
func (e *Engine) Execute(_ context.Context, h match.Handle, text string) (match.MatchSet, error) {
	nh, ok := h.(*handle)
	if !ok || nh == nil || nh.re == nil {
		return nil, &match.CompileError{Engine: match.EngineGo, Detail: "handle was not produced by the native engine"}
	}

	if nh.global {
		pairs := nh.re.FindAllStringSubmatchIndex(text, -1)
		set := make(match.MatchSet, 0, len(pairs))
		for _, span := range pairs {
			set = append(set, matchFromSpans(text, span))
		}
		return set, nil
	}

	span := nh.re.FindStringSubmatchIndex(text)
	if span == nil {
		return match.MatchSet{}, nil
	}
	return match.MatchSet{matchFromSpans(text, span)}, nil
}

// matchFromSpans converts a FindStringSubmatchIndex result into a
// normalized match. Index 0/1 is the whole match; a -1 pair marks a
// capture group that did not participate.
func matchFromSpans(text string, span []int) match.Match {
	m := match.Match{
		Index:  span[0],
		Length: span[1] - span[0],
		Text:   text[span[0]:span[1]],
	}
	for i := 2; i+1 < len(span); i += 2 {
		if span[i] < 0 {
			m.Groups = append(m.Groups, match.Group{})
			continue
		}
		m.Groups = append(m.Groups, match.Group{Value: text[span[i]:span[i+1]], Present: true})
	}
	return m
}

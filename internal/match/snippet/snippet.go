// Package snippet formats a pattern spec for the copy-to-clipboard
// actions: a bare /pattern/flags literal, or an embeddable code snippet
// for either engine's host language.
package snippet

import (
	"fmt"
	"strings"

	"github.com/louisbranch/rxlab/internal/match"
)

// Kind selects the clipboard format.
type Kind string

const (
	// KindLiteral is the bare /pattern/flags form.
	KindLiteral Kind = "literal"
	// KindCode is an embeddable snippet in the engine's host language.
	KindCode Kind = "code"
)

// ParseKind validates a raw kind value.
func ParseKind(raw string) (Kind, bool) {
	switch Kind(strings.TrimSpace(raw)) {
	case KindLiteral:
		return KindLiteral, true
	case KindCode:
		return KindCode, true
	}
	return "", false
}

// Format renders the spec in the requested form.
func Format(spec match.PatternSpec, kind Kind) string {
	if kind == KindLiteral {
		return Literal(spec)
	}
	if spec.Engine == match.EngineLua {
		return luaCode(spec)
	}
	return goCode(spec)
}

// Literal renders the bare /pattern/flags form. Slashes inside the
// pattern are escaped so the literal stays unambiguous.
func Literal(spec match.PatternSpec) string {
	escaped := strings.ReplaceAll(spec.Pattern, "/", `\/`)
	return "/" + escaped + "/" + spec.Flags
}

func goCode(spec match.PatternSpec) string {
	filtered := match.FilterFlags(spec.Flags, match.EngineGo)
	var inline strings.Builder
	for _, c := range filtered {
		if c != match.FlagGlobal {
			inline.WriteRune(c)
		}
	}
	expr := spec.Pattern
	if inline.Len() > 0 {
		expr = "(?" + inline.String() + ")" + spec.Pattern
	}

	call := "FindString"
	if match.HasFlag(filtered, match.FlagGlobal) {
		call = "FindAllString"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "re := regexp.MustCompile(%s)\n", goQuote(expr))
	if call == "FindAllString" {
		b.WriteString("matches := re.FindAllString(text, -1)")
	} else {
		b.WriteString("match := re.FindString(text)")
	}
	return b.String()
}

func luaCode(spec match.PatternSpec) string {
	filtered := match.FilterFlags(spec.Flags, match.EngineLua)
	pattern := luaQuote(spec.Pattern)

	if match.HasFlag(filtered, match.FlagGlobal) {
		return fmt.Sprintf("for m in string.gmatch(text, %s) do\n  print(m)\nend", pattern)
	}
	return fmt.Sprintf("local s, e = string.find(text, %s)", pattern)
}

// goQuote prefers a raw string literal, falling back to an interpreted
// one when the pattern cannot be expressed raw.
func goQuote(s string) string {
	if !strings.ContainsAny(s, "`\n") {
		return "`" + s + "`"
	}
	return fmt.Sprintf("%q", s)
}

func luaQuote(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`)
	return `"` + replacer.Replace(s) + `"`
}

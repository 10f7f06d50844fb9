package match

import (
	"fmt"
	"strings"
)

// Flag alphabets per engine. The global flag is shared; the rest map to
// engine-specific behavior (inline (?imsU) groups for Go, the numeric
// option bitmask for the Lua runtime).
const (
	GoFlagAlphabet  = "gimsU"
	LuaFlagAlphabet = "gixa"
)

// FlagAlphabetFor returns the recognized flag characters for an engine.
func FlagAlphabetFor(engine EngineID) string {
	switch engine {
	case EngineLua:
		return LuaFlagAlphabet
	default:
		return GoFlagAlphabet
	}
}

// FlagCheck is the advisory result of flag validation. A non-empty
// Warning never blocks execution: the engine adapter filters unsupported
// characters and runs with what remains.
type FlagCheck struct {
	// Warning is a human-readable advisory, empty when all flags are
	// valid for the active engine.
	Warning string
	// Unknown holds characters recognized by neither engine.
	Unknown string
	// ForeignOnly holds characters valid only for the other engine.
	ForeignOnly string
}

// CheckFlags classifies a flag string against the active engine's
// alphabet. Characters outside both alphabets take precedence over
// recognized-but-wrong-engine characters; only one warning is returned.
func CheckFlags(flags string, engine EngineID) FlagCheck {
	active := FlagAlphabetFor(engine)
	other := FlagAlphabetFor(otherEngine(engine))

	var unknown, foreign []rune
	seen := map[rune]bool{}
	for _, c := range flags {
		if seen[c] {
			continue
		}
		seen[c] = true
		switch {
		case strings.ContainsRune(active, c):
		case strings.ContainsRune(other, c):
			foreign = append(foreign, c)
		default:
			unknown = append(unknown, c)
		}
	}

	if len(unknown) > 0 {
		return FlagCheck{
			Warning: fmt.Sprintf("unrecognized flag(s): %s", joinRunes(unknown)),
			Unknown: string(unknown),
		}
	}
	if len(foreign) > 0 {
		return FlagCheck{
			Warning: fmt.Sprintf("flag(s) %s are only supported by the %s engine and will be ignored",
				joinRunes(foreign), engineLabel(otherEngine(engine))),
			ForeignOnly: string(foreign),
		}
	}
	return FlagCheck{}
}

// FilterFlags keeps only the characters the engine recognizes,
// preserving order and dropping duplicates.
func FilterFlags(flags string, engine EngineID) string {
	alphabet := FlagAlphabetFor(engine)
	var out []rune
	seen := map[rune]bool{}
	for _, c := range flags {
		if seen[c] || !strings.ContainsRune(alphabet, c) {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return string(out)
}

// HasFlag reports whether the flag string contains the given character.
func HasFlag(flags string, flag rune) bool {
	return strings.ContainsRune(flags, flag)
}

func otherEngine(engine EngineID) EngineID {
	if engine == EngineLua {
		return EngineGo
	}
	return EngineLua
}

func engineLabel(engine EngineID) string {
	switch engine {
	case EngineLua:
		return "Lua"
	default:
		return "Go"
	}
}

func joinRunes(runes []rune) string {
	parts := make([]string, 0, len(runes))
	for _, c := range runes {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

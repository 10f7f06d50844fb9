package match

import "context"

// Engine is the uniform contract over the regex backends. Compile turns
// a pattern and flag string into a reusable Handle; Execute runs a
// Handle against subject text and returns normalized matches.
//
// Execute honors FlagGlobal: with it, every non-overlapping match in
// left-to-right order; without it, at most the first match. Both
// backends report non-participating capture groups as absent.
type Engine interface {
	ID() EngineID

	// FlagAlphabet returns the flag characters this engine recognizes.
	FlagAlphabet() string

	// Compile builds a handle for the pattern. Unrecognized flag
	// characters are filtered, not rejected; a malformed pattern yields
	// a *CompileError. The sandboxed engine returns ErrEngineLoading
	// while its runtime bootstraps.
	Compile(ctx context.Context, pattern, flags string) (Handle, error)

	// Execute runs a compiled handle against text. The handle must have
	// been produced by this engine's Compile.
	Execute(ctx context.Context, handle Handle, text string) (MatchSet, error)
}

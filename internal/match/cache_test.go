package match

import (
	"context"
	"fmt"
	"testing"
)

type fakeHandle struct {
	spec PatternSpec
}

func (h fakeHandle) Spec() PatternSpec { return h.spec }

type fakeEngine struct {
	id       EngineID
	compiles int
	fail     bool
}

func (e *fakeEngine) ID() EngineID         { return e.id }
func (e *fakeEngine) FlagAlphabet() string { return FlagAlphabetFor(e.id) }

func (e *fakeEngine) Compile(_ context.Context, pattern, flags string) (Handle, error) {
	e.compiles++
	if e.fail {
		return nil, &CompileError{Engine: e.id, Pattern: pattern, Detail: "boom"}
	}
	return fakeHandle{spec: PatternSpec{Pattern: pattern, Flags: flags, Engine: e.id}}, nil
}

func (e *fakeEngine) Execute(context.Context, Handle, string) (MatchSet, error) {
	return nil, fmt.Errorf("not implemented")
}

func TestCacheReusesHandleWhenOnlyTextChanges(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	engine := &fakeEngine{id: EngineGo}
	ctx := context.Background()

	first, err := cache.GetOrCompile(ctx, engine, "a+", "g")
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	second, err := cache.GetOrCompile(ctx, engine, "a+", "g")
	if err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if engine.compiles != 1 {
		t.Fatalf("compiles = %d, want 1", engine.compiles)
	}
	if first != second {
		t.Fatalf("expected cached handle to be reused")
	}
}

func TestCacheRecompilesOnPatternOrFlagChange(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	engine := &fakeEngine{id: EngineGo}
	ctx := context.Background()

	if _, err := cache.GetOrCompile(ctx, engine, "a+", "g"); err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if _, err := cache.GetOrCompile(ctx, engine, "b+", "g"); err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if _, err := cache.GetOrCompile(ctx, engine, "b+", "gi"); err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if engine.compiles != 3 {
		t.Fatalf("compiles = %d, want 3", engine.compiles)
	}
}

func TestCacheInvalidateAllForcesRecompileOnBothEngines(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	goEngine := &fakeEngine{id: EngineGo}
	luaEngine := &fakeEngine{id: EngineLua}
	ctx := context.Background()

	if _, err := cache.GetOrCompile(ctx, goEngine, "a+", "g"); err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if _, err := cache.GetOrCompile(ctx, luaEngine, "a+", "g"); err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}

	cache.InvalidateAll()
	if cache.Cached(EngineGo, "a+", "g") || cache.Cached(EngineLua, "a+", "g") {
		t.Fatalf("slots survived InvalidateAll")
	}

	if _, err := cache.GetOrCompile(ctx, goEngine, "a+", "g"); err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if _, err := cache.GetOrCompile(ctx, luaEngine, "a+", "g"); err != nil {
		t.Fatalf("GetOrCompile() error = %v", err)
	}
	if goEngine.compiles != 2 || luaEngine.compiles != 2 {
		t.Fatalf("compiles = %d/%d, want 2/2 after invalidation", goEngine.compiles, luaEngine.compiles)
	}
}

func TestCacheCompileFailureClearsSlot(t *testing.T) {
	t.Parallel()

	cache := NewCache()
	engine := &fakeEngine{id: EngineGo, fail: true}
	ctx := context.Background()

	if _, err := cache.GetOrCompile(ctx, engine, "(", ""); err == nil {
		t.Fatalf("expected compile error")
	}
	if cache.Cached(EngineGo, "(", "") {
		t.Fatalf("failed compile left a valid-looking slot")
	}

	engine.fail = false
	if _, err := cache.GetOrCompile(ctx, engine, "(", ""); err != nil {
		t.Fatalf("GetOrCompile() retry error = %v", err)
	}
	if engine.compiles != 2 {
		t.Fatalf("compiles = %d, want 2 (retry must recompile)", engine.compiles)
	}
}

package match

import "context"

type cacheSlot struct {
	pattern string
	flags   string
	handle  Handle
}

// Cache memoizes the last compiled pattern per engine so edits that only
// touch the subject text skip recompilation. One slot per engine; a slot
// is valid only while both pattern and flags are unchanged.
type Cache struct {
	slots map[EngineID]cacheSlot
}

// NewCache returns an empty compile cache.
func NewCache() *Cache {
	return &Cache{slots: map[EngineID]cacheSlot{}}
}

// GetOrCompile returns the cached handle when the engine's slot matches
// pattern and flags, compiling and repopulating the slot otherwise.
// A compile failure clears the slot so the next attempt recompiles
// instead of reusing a broken handle.
func (c *Cache) GetOrCompile(ctx context.Context, engine Engine, pattern, flags string) (Handle, error) {
	if slot, ok := c.slots[engine.ID()]; ok && slot.pattern == pattern && slot.flags == flags {
		return slot.handle, nil
	}

	handle, err := engine.Compile(ctx, pattern, flags)
	if err != nil {
		delete(c.slots, engine.ID())
		return nil, err
	}
	c.slots[engine.ID()] = cacheSlot{pattern: pattern, flags: flags, handle: handle}
	return handle, nil
}

// Invalidate clears the slot for one engine.
func (c *Cache) Invalidate(engine EngineID) {
	delete(c.slots, engine)
}

// InvalidateAll clears every slot. Called on engine switches so a stale
// handle from the previously active engine is never reused.
func (c *Cache) InvalidateAll() {
	c.slots = map[EngineID]cacheSlot{}
}

// Cached reports whether the engine's slot currently holds a handle for
// the given pattern and flags.
func (c *Cache) Cached(engine EngineID, pattern, flags string) bool {
	slot, ok := c.slots[engine]
	return ok && slot.pattern == pattern && slot.flags == flags
}

package resource

// FrameID numbers built frames. It is the cache-eviction clock: every
// cache entry remembers the frame that last used it, and eviction
// removes entries unused for longer than a configured horizon.
type FrameID uint64

// Resource is a cache entry that owns releasable GPU-side storage.
// Free releases that storage into the given context (in practice the
// TextureCache) and is invoked exactly once, on removal or eviction.
type Resource[C any] interface {
	Free(ctx C)
}

// Cache is a keyed store of resources with frame-epoch-based eviction.
// One Cache instance serves one resource class; the eviction algorithm
// is shared across classes by parameterizing over the entry type and
// its free-hook context.
//
// Cache is not safe for concurrent use: all access happens on the
// consumer goroutine.
type Cache[K comparable, V Resource[C], C any] struct {
	resources  map[K]V
	lastAccess map[K]FrameID
}

// NewCache creates an empty cache.
func NewCache[K comparable, V Resource[C], C any]() *Cache[K, V, C] {
	return &Cache[K, V, C]{
		resources:  make(map[K]V),
		lastAccess: make(map[K]FrameID),
	}
}

// Get returns the entry for key if present. It does not touch the
// entry's last-access frame.
func (c *Cache[K, V, C]) Get(key K) (V, bool) {
	v, ok := c.resources[key]
	return v, ok
}

// GetOrCreate returns the existing entry for key, or inserts and
// returns the entry produced by create. Neither path advances the
// last-access frame; a fresh entry starts at frame 0.
func (c *Cache[K, V, C]) GetOrCreate(key K, create func() V) V {
	if v, ok := c.resources[key]; ok {
		return v
	}
	v := create()
	c.resources[key] = v
	c.lastAccess[key] = 0
	return v
}

// MarkAccessed records that the entry for key was used by the frame
// being built. The frame builder must call this for every entry that
// ends up in a frame, or eviction will reclaim it.
func (c *Cache[K, V, C]) MarkAccessed(key K, frame FrameID) {
	if _, ok := c.resources[key]; ok {
		c.lastAccess[key] = frame
	}
}

// LastAccess returns the frame that last used the entry for key.
func (c *Cache[K, V, C]) LastAccess(key K) (FrameID, bool) {
	f, ok := c.lastAccess[key]
	return f, ok
}

// Remove frees and deletes the entry for key, if present.
func (c *Cache[K, V, C]) Remove(key K, ctx C) {
	v, ok := c.resources[key]
	if !ok {
		return
	}
	v.Free(ctx)
	delete(c.resources, key)
	delete(c.lastAccess, key)
}

// ExpireOldResources frees and removes every entry whose last access is
// older than current minus horizon. The whole cache is visited exactly
// once; entries accessed during the current frame always survive.
func (c *Cache[K, V, C]) ExpireOldResources(current FrameID, horizon uint32, ctx C) {
	for key, v := range c.resources {
		if c.lastAccess[key]+FrameID(horizon) >= current {
			continue
		}
		v.Free(ctx)
		delete(c.resources, key)
		delete(c.lastAccess, key)
	}
}

// ClearMatching frees and removes every entry whose key matches the
// predicate. Used for resource-group teardown such as document unload.
func (c *Cache[K, V, C]) ClearMatching(pred func(K) bool, ctx C) {
	for key, v := range c.resources {
		if !pred(key) {
			continue
		}
		v.Free(ctx)
		delete(c.resources, key)
		delete(c.lastAccess, key)
	}
}

// Clear frees and removes all entries.
func (c *Cache[K, V, C]) Clear(ctx C) {
	c.ClearMatching(func(K) bool { return true }, ctx)
}

// Len returns the number of live entries.
func (c *Cache[K, V, C]) Len() int {
	return len(c.resources)
}

// IsEmpty reports whether the cache holds no entries.
func (c *Cache[K, V, C]) IsEmpty() bool {
	return len(c.resources) == 0
}

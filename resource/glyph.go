package resource

import (
	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/framecore/api"
)

// GlyphKey identifies one rasterized glyph within a font instance: the
// glyph index plus the subpixel offset it was rasterized at. The font
// size lives on the FontInstanceKey grouping level.
type GlyphKey struct {
	Index          font.GID
	SubpixelOffset fixed.Int26_6
}

// CachedGlyph is the cache entry for one rasterized glyph: the atlas
// texture holding its bitmap, if rasterization produced one. The
// rasterizer itself is an external collaborator; the cache only stores
// results and is never consulted on the eviction path.
type CachedGlyph struct {
	Texture TextureID
}

// Free releases the glyph's GPU storage.
func (c *CachedGlyph) Free(tc *TextureCache) {
	if c.Texture != 0 {
		tc.Free(c.Texture)
		c.Texture = 0
	}
}

// GlyphKeyCache caches the glyphs of a single font instance.
type GlyphKeyCache = Cache[GlyphKey, *CachedGlyph, *TextureCache]

// GlyphCache groups glyph caches by font instance, so that a whole
// font's glyphs can be torn down together and per-font caches can be
// reclaimed once emptied by eviction.
type GlyphCache struct {
	caches map[api.FontInstanceKey]*GlyphKeyCache
}

// NewGlyphCache creates an empty glyph cache.
func NewGlyphCache() *GlyphCache {
	return &GlyphCache{caches: make(map[api.FontInstanceKey]*GlyphKeyCache)}
}

// FontCacheFor returns the glyph cache for a font instance, creating it
// lazily on first request. Repeated calls for the same key return the
// same cache.
func (g *GlyphCache) FontCacheFor(key api.FontInstanceKey) *GlyphKeyCache {
	c, ok := g.caches[key]
	if !ok {
		c = NewCache[GlyphKey, *CachedGlyph, *TextureCache]()
		g.caches[key] = c
	}
	return c
}

// FontCount returns the number of font-level caches currently alive.
func (g *GlyphCache) FontCount() int {
	return len(g.caches)
}

// ExpireOldResources delegates the eviction sweep to every font-level
// cache, then deletes any cache left empty. No empty font-level cache
// survives a pass.
func (g *GlyphCache) ExpireOldResources(current FrameID, horizon uint32, tc *TextureCache) {
	for key, c := range g.caches {
		c.ExpireOldResources(current, horizon, tc)
		if c.IsEmpty() {
			delete(g.caches, key)
		}
	}
}

// ClearFonts frees and removes every font-level cache whose font
// instance matches the predicate, including all glyphs inside.
func (g *GlyphCache) ClearFonts(pred func(api.FontInstanceKey) bool, tc *TextureCache) {
	for key, c := range g.caches {
		if !pred(key) {
			continue
		}
		c.Clear(tc)
		delete(g.caches, key)
	}
}

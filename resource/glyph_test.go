package resource

import (
	"testing"

	"golang.org/x/image/math/fixed"

	"github.com/gogpu/framecore/api"
)

func fontInstance(font, size uint32) api.FontInstanceKey {
	return api.FontInstanceKey{
		Font: api.FontKey{Namespace: 1, ID: font},
		Size: fixed.I(int(size)),
	}
}

func TestFontCacheForIsIdempotent(t *testing.T) {
	g := NewGlyphCache()
	key := fontInstance(1, 12)

	first := g.FontCacheFor(key)
	second := g.FontCacheFor(key)
	if first != second {
		t.Fatal("FontCacheFor returned distinct caches for the same font instance")
	}
	if g.FontCount() != 1 {
		t.Fatalf("FontCount = %d, want 1", g.FontCount())
	}

	other := g.FontCacheFor(fontInstance(1, 14))
	if other == first {
		t.Fatal("different sizes share a font-level cache")
	}
	if g.FontCount() != 2 {
		t.Fatalf("FontCount = %d, want 2", g.FontCount())
	}
}

func TestGlyphEvictionRemovesEmptyFontCaches(t *testing.T) {
	tc := NewTextureCache()
	g := NewGlyphCache()

	stale := fontInstance(1, 12)
	live := fontInstance(2, 12)

	staleTex := &fakeTexture{}
	g.FontCacheFor(stale).GetOrCreate(GlyphKey{Index: 10}, func() *CachedGlyph {
		return &CachedGlyph{Texture: tc.Insert(staleTex)}
	})

	liveCache := g.FontCacheFor(live)
	liveCache.GetOrCreate(GlyphKey{Index: 20}, func() *CachedGlyph {
		return &CachedGlyph{Texture: tc.Insert(&fakeTexture{})}
	})
	liveCache.MarkAccessed(GlyphKey{Index: 20}, 10)

	g.ExpireOldResources(10, 2, tc)

	if g.FontCount() != 1 {
		t.Fatalf("FontCount = %d after eviction, want 1", g.FontCount())
	}
	if staleTex.destroyed != 1 {
		t.Fatalf("stale glyph texture destroyed %d times, want 1", staleTex.destroyed)
	}
	if _, ok := liveCache.Get(GlyphKey{Index: 20}); !ok {
		t.Fatal("recently used glyph was evicted")
	}
}

func TestClearFonts(t *testing.T) {
	tc := NewTextureCache()
	g := NewGlyphCache()

	doomedFont := api.FontKey{Namespace: 1, ID: 7}
	var doomed []*fakeTexture
	for _, size := range []uint32{12, 14} {
		key := api.FontInstanceKey{Font: doomedFont, Size: fixed.I(int(size))}
		tex := &fakeTexture{}
		doomed = append(doomed, tex)
		g.FontCacheFor(key).GetOrCreate(GlyphKey{Index: 1}, func() *CachedGlyph {
			return &CachedGlyph{Texture: tc.Insert(tex)}
		})
	}
	survivor := fontInstance(2, 12)
	g.FontCacheFor(survivor).GetOrCreate(GlyphKey{Index: 1}, func() *CachedGlyph {
		return &CachedGlyph{Texture: tc.Insert(&fakeTexture{})}
	})

	g.ClearFonts(func(k api.FontInstanceKey) bool { return k.Font == doomedFont }, tc)

	if g.FontCount() != 1 {
		t.Fatalf("FontCount = %d after ClearFonts, want 1", g.FontCount())
	}
	for i, tex := range doomed {
		if tex.destroyed != 1 {
			t.Errorf("doomed glyph %d destroyed %d times, want 1", i, tex.destroyed)
		}
	}
}

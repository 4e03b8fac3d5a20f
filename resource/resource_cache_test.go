package resource

import (
	"errors"
	"testing"

	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/framecore/api"
)

func TestImageLifecycle(t *testing.T) {
	rc := NewResourceCache(CacheConfig{ExpiryHorizon: 3}, nil)
	key := imageKey(7)
	desc := api.ImageDescriptor{Width: 2, Height: 2, Format: gputypes.TextureFormatRGBA8Unorm}
	pixels := make([]byte, 16)
	for i := range pixels {
		pixels[i] = byte(i)
	}

	rc.AddImage(key, desc, pixels)

	entry := rc.UseImage(key, 0)
	if entry == nil {
		t.Fatal("UseImage returned nil")
	}
	if last, ok := rc.Images().LastAccess(key); !ok || last != 0 {
		t.Fatalf("fresh entry last access = %d (%v), want 0", last, ok)
	}
	entry.Texture = rc.Textures().Insert(&fakeTexture{})

	rc.ExpireOldResources(5)

	if _, ok := rc.Images().Get(key); ok {
		t.Fatal("entry last used at frame 0 survived expiry at frame 5 with horizon 3")
	}
	if got := rc.Textures().FreeCount(); got != 1 {
		t.Fatalf("FreeCount = %d, want exactly 1", got)
	}
	// The template stays; only the cached upload is reclaimed.
	if _, ok := rc.ImageTemplates().Get(key); !ok {
		t.Fatal("image template was dropped by expiry")
	}
}

func TestUpdateImageInvalidatesUpload(t *testing.T) {
	rc := NewResourceCache(DefaultCacheConfig(), nil)
	key := imageKey(1)
	desc := api.ImageDescriptor{Width: 2, Height: 2, Format: gputypes.TextureFormatRGBA8Unorm}
	rc.AddImage(key, desc, make([]byte, 16))

	tex := &fakeTexture{}
	entry := rc.UseImage(key, 1)
	entry.Texture = rc.Textures().Insert(tex)

	if err := rc.UpdateImage(key, make([]byte, 16)); err != nil {
		t.Fatalf("UpdateImage: %v", err)
	}
	if tex.destroyed != 1 {
		t.Fatalf("stale upload destroyed %d times, want 1", tex.destroyed)
	}
	if _, ok := rc.Images().Get(key); ok {
		t.Fatal("cached upload survived an update")
	}
}

func TestUpdateImageRejectsResize(t *testing.T) {
	rc := NewResourceCache(DefaultCacheConfig(), nil)
	key := imageKey(1)
	desc := api.ImageDescriptor{Width: 2, Height: 2, Format: gputypes.TextureFormatRGBA8Unorm}
	rc.AddImage(key, desc, make([]byte, 16))

	err := rc.UpdateImage(key, make([]byte, 36))
	if !errors.Is(err, api.ErrImageDimensionsImmutable) {
		t.Fatalf("UpdateImage with resized data = %v, want ErrImageDimensionsImmutable", err)
	}

	if err := rc.UpdateImage(api.ImageKey{Namespace: 1, ID: 99}, nil); err == nil {
		t.Fatal("UpdateImage for unknown key succeeded")
	}
}

func TestDeleteFontTemplateClearsGlyphs(t *testing.T) {
	rc := NewResourceCache(DefaultCacheConfig(), nil)
	fontKey := api.FontKey{Namespace: 1, ID: 3}
	rc.AddFontTemplate(fontKey, []byte{0, 1, 0, 0})

	instance := api.FontInstanceKey{Font: fontKey, Size: fixed.I(12)}
	tex := &fakeTexture{}
	glyph := rc.UseGlyph(instance, GlyphKey{Index: 42}, 1)
	glyph.Texture = rc.Textures().Insert(tex)

	otherInstance := api.FontInstanceKey{Font: api.FontKey{Namespace: 1, ID: 4}, Size: fixed.I(12)}
	rc.UseGlyph(otherInstance, GlyphKey{Index: 7}, 1)

	rc.DeleteFontTemplate(fontKey)

	if _, ok := rc.Fonts().Get(fontKey); ok {
		t.Fatal("font template survived deletion")
	}
	if tex.destroyed != 1 {
		t.Fatalf("glyph texture destroyed %d times, want 1", tex.destroyed)
	}
	if rc.Glyphs().FontCount() != 1 {
		t.Fatalf("FontCount = %d after deleting one font, want 1", rc.Glyphs().FontCount())
	}
}

func TestClearNamespace(t *testing.T) {
	rc := NewResourceCache(DefaultCacheConfig(), nil)
	desc := api.ImageDescriptor{Width: 1, Height: 1, Format: gputypes.TextureFormatRGBA8Unorm}

	for ns := api.IDNamespace(1); ns <= 2; ns++ {
		imgKey := api.ImageKey{Namespace: ns, ID: 1}
		rc.AddImage(imgKey, desc, make([]byte, 4))
		rc.UseImage(imgKey, 1).Texture = rc.Textures().Insert(&fakeTexture{})

		fKey := api.FontKey{Namespace: ns, ID: 1}
		rc.AddFontTemplate(fKey, []byte{1})
		rc.UseGlyph(api.FontInstanceKey{Font: fKey, Size: fixed.I(10)}, GlyphKey{Index: 1}, 1)
	}

	rc.ClearNamespace(1)

	if _, ok := rc.ImageTemplates().Get(api.ImageKey{Namespace: 1, ID: 1}); ok {
		t.Error("namespace 1 image template survived")
	}
	if _, ok := rc.Images().Get(api.ImageKey{Namespace: 1, ID: 1}); ok {
		t.Error("namespace 1 cached image survived")
	}
	if _, ok := rc.Fonts().Get(api.FontKey{Namespace: 1, ID: 1}); ok {
		t.Error("namespace 1 font template survived")
	}
	if _, ok := rc.ImageTemplates().Get(api.ImageKey{Namespace: 2, ID: 1}); !ok {
		t.Error("namespace 2 image template was dropped")
	}
	if rc.Glyphs().FontCount() != 1 {
		t.Errorf("FontCount = %d after clearing one namespace, want 1", rc.Glyphs().FontCount())
	}
}

func TestUseGlyphStampsAccess(t *testing.T) {
	rc := NewResourceCache(CacheConfig{ExpiryHorizon: 2}, nil)
	instance := fontInstance(1, 12)
	key := GlyphKey{Index: 5, SubpixelOffset: fixed.Int26_6(16)}

	rc.UseGlyph(instance, key, 4)

	rc.ExpireOldResources(6)
	if _, ok := rc.Glyphs().FontCacheFor(instance).Get(key); !ok {
		t.Fatal("glyph used at frame 4 evicted at frame 6 with horizon 2")
	}
	rc.ExpireOldResources(7)
	if rc.Glyphs().FontCount() != 0 {
		t.Fatal("glyph used at frame 4 survived expiry at frame 7 with horizon 2")
	}
}

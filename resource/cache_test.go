package resource

import (
	"testing"

	"github.com/gogpu/framecore/api"
)

// fakeTexture counts destroy calls so tests can verify the
// free-exactly-once invariant.
type fakeTexture struct {
	destroyed int
}

func (f *fakeTexture) Destroy() { f.destroyed++ }

func newTestEntry(tc *TextureCache) (*CachedImage, *fakeTexture) {
	tex := &fakeTexture{}
	return &CachedImage{Texture: tc.Insert(tex)}, tex
}

func imageKey(id uint32) api.ImageKey {
	return api.ImageKey{Namespace: 1, ID: id}
}

func TestGetOrCreate(t *testing.T) {
	c := NewImageCache()
	key := imageKey(1)

	created := 0
	entry := c.GetOrCreate(key, func() *CachedImage {
		created++
		return &CachedImage{}
	})
	again := c.GetOrCreate(key, func() *CachedImage {
		created++
		return &CachedImage{}
	})
	if created != 1 {
		t.Fatalf("create called %d times, want 1", created)
	}
	if entry != again {
		t.Fatal("GetOrCreate returned a different entry for the same key")
	}
	if last, ok := c.LastAccess(key); !ok || last != 0 {
		t.Errorf("fresh entry last access = %d (%v), want 0", last, ok)
	}
}

func TestEvictionHorizon(t *testing.T) {
	tests := []struct {
		name     string
		access   FrameID
		current  FrameID
		horizon  uint32
		survives bool
	}{
		{"just inside", 6, 8, 3, true},
		{"exactly at horizon", 5, 8, 3, true},
		{"one past", 4, 8, 3, false},
		{"never accessed", 0, 5, 3, false},
		{"accessed this frame", 8, 8, 3, true},
		{"zero horizon keeps current", 8, 8, 0, true},
		{"zero horizon drops previous", 7, 8, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tc := NewTextureCache()
			c := NewImageCache()
			key := imageKey(1)
			entry, tex := newTestEntry(tc)
			c.GetOrCreate(key, func() *CachedImage { return entry })
			if tt.access > 0 {
				c.MarkAccessed(key, tt.access)
			}

			c.ExpireOldResources(tt.current, tt.horizon, tc)

			_, present := c.Get(key)
			if present != tt.survives {
				t.Errorf("present = %v, want %v", present, tt.survives)
			}
			wantDestroyed := 0
			if !tt.survives {
				wantDestroyed = 1
			}
			if tex.destroyed != wantDestroyed {
				t.Errorf("texture destroyed %d times, want %d", tex.destroyed, wantDestroyed)
			}
		})
	}
}

func TestFreeExactlyOnce(t *testing.T) {
	tc := NewTextureCache()
	c := NewImageCache()
	key := imageKey(1)
	entry, tex := newTestEntry(tc)
	c.GetOrCreate(key, func() *CachedImage { return entry })

	// Expire it, then sweep again and remove again: still one free.
	c.ExpireOldResources(10, 1, tc)
	c.ExpireOldResources(20, 1, tc)
	c.Remove(key, tc)

	if tex.destroyed != 1 {
		t.Fatalf("texture destroyed %d times, want exactly 1", tex.destroyed)
	}
	if got := tc.FreeCount(); got != 1 {
		t.Fatalf("FreeCount = %d, want 1", got)
	}
}

func TestRemovedKeyAbsentUntilRecreated(t *testing.T) {
	tc := NewTextureCache()
	c := NewImageCache()
	key := imageKey(2)
	entry, _ := newTestEntry(tc)
	c.GetOrCreate(key, func() *CachedImage { return entry })
	c.Remove(key, tc)

	if _, ok := c.Get(key); ok {
		t.Fatal("removed key still present")
	}
	fresh := c.GetOrCreate(key, func() *CachedImage { return &CachedImage{} })
	if fresh == entry {
		t.Fatal("recreation returned the removed entry")
	}
}

func TestClearMatching(t *testing.T) {
	tc := NewTextureCache()
	c := NewImageCache()
	var texes []*fakeTexture
	for i := uint32(1); i <= 4; i++ {
		entry, tex := newTestEntry(tc)
		texes = append(texes, tex)
		key := api.ImageKey{Namespace: api.IDNamespace(i % 2), ID: i}
		c.GetOrCreate(key, func() *CachedImage { return entry })
	}

	c.ClearMatching(func(k api.ImageKey) bool { return k.Namespace == 0 }, tc)

	if c.Len() != 2 {
		t.Fatalf("Len = %d after clearing half, want 2", c.Len())
	}
	freed := 0
	for _, tex := range texes {
		freed += tex.destroyed
	}
	if freed != 2 {
		t.Fatalf("freed %d textures, want 2", freed)
	}
}

func TestMarkAccessedIgnoresAbsentKeys(t *testing.T) {
	c := NewImageCache()
	c.MarkAccessed(imageKey(99), 5)
	if _, ok := c.LastAccess(imageKey(99)); ok {
		t.Fatal("MarkAccessed created bookkeeping for an absent key")
	}
}

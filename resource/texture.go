package resource

import (
	"github.com/gogpu/framecore"
)

// TextureID is a handle into the TextureCache. The zero id means "no
// GPU storage".
type TextureID uint64

// textureDestroyer matches GPU texture handles that can release their
// storage. Destruction goes through this narrow interface so tests can
// substitute fakes for real device textures.
type textureDestroyer interface {
	Destroy()
}

// TextureCache owns the GPU texture handles backing cached resources.
// It is the free-hook context for every resource cache: eviction and
// removal paths call Free, which destroys the underlying handle exactly
// once. Double frees are impossible by construction since a freed id is
// forgotten.
type TextureCache struct {
	nextID   TextureID
	textures map[TextureID]any
	freed    uint64
}

// NewTextureCache creates an empty texture store.
func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[TextureID]any)}
}

// Insert registers a GPU texture handle and returns its id. The handle
// is opaque; destruction type-asserts for a Destroy method.
func (tc *TextureCache) Insert(tex any) TextureID {
	tc.nextID++
	tc.textures[tc.nextID] = tex
	return tc.nextID
}

// Get returns the handle for id, or nil if id is zero or already freed.
func (tc *TextureCache) Get(id TextureID) any {
	return tc.textures[id]
}

// Free destroys the texture behind id and forgets the id. Freeing the
// zero id or an already-freed id is a no-op.
func (tc *TextureCache) Free(id TextureID) {
	tex, ok := tc.textures[id]
	if !ok {
		return
	}
	delete(tc.textures, id)
	tc.freed++
	if d, ok := tex.(textureDestroyer); ok {
		d.Destroy()
	} else {
		framecore.Logger().Warn("resource: texture handle cannot be destroyed",
			"id", uint64(id))
	}
}

// FreeCount returns how many textures have been destroyed. Useful for
// verifying the free-exactly-once invariant in tests.
func (tc *TextureCache) FreeCount() uint64 {
	return tc.freed
}

// Len returns the number of live texture handles.
func (tc *TextureCache) Len() int {
	return len(tc.textures)
}

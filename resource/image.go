package resource

import (
	"fmt"

	"github.com/gogpu/framecore/api"
)

// ImageTemplate is the CPU-side registration of an image resource: its
// descriptor and raw pixel bytes as supplied by AddImage.
type ImageTemplate struct {
	Descriptor api.ImageDescriptor
	Bytes      []byte
}

// ImageTemplates holds the registered image data per key. Templates are
// replaced wholesale by updates; the derived GPU texture lives in the
// image cache, not here.
type ImageTemplates struct {
	images map[api.ImageKey]ImageTemplate
}

// NewImageTemplates creates an empty template registry.
func NewImageTemplates() *ImageTemplates {
	return &ImageTemplates{images: make(map[api.ImageKey]ImageTemplate)}
}

// Add registers or replaces the template for key.
func (t *ImageTemplates) Add(key api.ImageKey, desc api.ImageDescriptor, bytes []byte) {
	t.images[key] = ImageTemplate{Descriptor: desc, Bytes: bytes}
}

// Update replaces the pixel bytes of an existing template. The new data
// must match the registered descriptor's byte size: dimension and
// format changes through updates are unsupported and rejected loudly.
func (t *ImageTemplates) Update(key api.ImageKey, bytes []byte) error {
	tpl, ok := t.images[key]
	if !ok {
		return fmt.Errorf("resource: update for unknown image %v", key)
	}
	if want := tpl.Descriptor.ByteSize(); want != 0 && want != len(bytes) {
		return fmt.Errorf("%w: image %v wants %d bytes, got %d",
			api.ErrImageDimensionsImmutable, key, want, len(bytes))
	}
	tpl.Bytes = bytes
	t.images[key] = tpl
	return nil
}

// Get returns the template for key.
func (t *ImageTemplates) Get(key api.ImageKey) (ImageTemplate, bool) {
	tpl, ok := t.images[key]
	return tpl, ok
}

// Delete forgets the template for key.
func (t *ImageTemplates) Delete(key api.ImageKey) {
	delete(t.images, key)
}

// CachedImage is the GPU-side cache entry derived from an image
// template: the uploaded texture, if any.
type CachedImage struct {
	Texture TextureID
}

// Free releases the entry's GPU storage. Called exactly once by the
// cache's removal and eviction paths.
func (c *CachedImage) Free(tc *TextureCache) {
	if c.Texture != 0 {
		tc.Free(c.Texture)
		c.Texture = 0
	}
}

// ImageCache maps image keys to their uploaded textures with
// frame-epoch eviction.
type ImageCache = Cache[api.ImageKey, *CachedImage, *TextureCache]

// NewImageCache creates an empty image cache.
func NewImageCache() *ImageCache {
	return NewCache[api.ImageKey, *CachedImage, *TextureCache]()
}

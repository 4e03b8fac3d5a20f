package resource

import (
	"github.com/gogpu/framecore/api"
	"github.com/gogpu/framecore/vector"
)

// CacheConfig holds configuration for the resource caches.
type CacheConfig struct {
	// ExpiryHorizon is the number of frames an entry can go unused
	// before an eviction sweep reclaims it.
	// Default: 64
	ExpiryHorizon uint32
}

// DefaultCacheConfig returns the default cache configuration.
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{ExpiryHorizon: 64}
}

// ResourceCache ties the per-class caches together behind the handful
// of operations the render backend needs: template registration, entry
// lookup with access stamping, and the per-frame eviction sweep.
//
// ResourceCache is owned by the consumer goroutine and is not safe for
// concurrent use.
type ResourceCache struct {
	config CacheConfig

	textures       *TextureCache
	fonts          *FontTemplates
	imageTemplates *ImageTemplates
	images         *ImageCache
	glyphs         *GlyphCache
	vectors        *vector.Resolver
}

// NewResourceCache creates a resource cache. The vector renderer may be
// nil when the embedder supplies no vector content.
func NewResourceCache(config CacheConfig, vectorRenderer vector.Renderer) *ResourceCache {
	if config.ExpiryHorizon == 0 {
		config.ExpiryHorizon = DefaultCacheConfig().ExpiryHorizon
	}
	rc := &ResourceCache{
		config:         config,
		textures:       NewTextureCache(),
		fonts:          NewFontTemplates(),
		imageTemplates: NewImageTemplates(),
		images:         NewImageCache(),
		glyphs:         NewGlyphCache(),
	}
	if vectorRenderer != nil {
		rc.vectors = vector.NewResolver(vectorRenderer, rc.fonts)
	}
	return rc
}

// Textures returns the GPU texture handle store.
func (rc *ResourceCache) Textures() *TextureCache { return rc.textures }

// Fonts returns the font template registry.
func (rc *ResourceCache) Fonts() *FontTemplates { return rc.fonts }

// ImageTemplates returns the image template registry.
func (rc *ResourceCache) ImageTemplates() *ImageTemplates { return rc.imageTemplates }

// Images returns the image cache.
func (rc *ResourceCache) Images() *ImageCache { return rc.images }

// Glyphs returns the glyph cache.
func (rc *ResourceCache) Glyphs() *GlyphCache { return rc.glyphs }

// Vectors returns the vector-content resolver, or nil when no renderer
// was configured.
func (rc *ResourceCache) Vectors() *vector.Resolver { return rc.vectors }

// AddFontTemplate registers raw font bytes.
func (rc *ResourceCache) AddFontTemplate(key api.FontKey, bytes []byte) {
	rc.fonts.Add(key, bytes)
}

// DeleteFontTemplate drops the font bytes and tears down every glyph
// cache rasterized from that font.
func (rc *ResourceCache) DeleteFontTemplate(key api.FontKey) {
	rc.fonts.Delete(key)
	rc.glyphs.ClearFonts(func(fi api.FontInstanceKey) bool {
		return fi.Font == key
	}, rc.textures)
}

// AddImage registers an image template.
func (rc *ResourceCache) AddImage(key api.ImageKey, desc api.ImageDescriptor, bytes []byte) {
	rc.imageTemplates.Add(key, desc, bytes)
}

// UpdateImage replaces an image template's pixel data and invalidates
// the cached upload so the next frame re-uploads. Dimension or format
// changes are rejected with api.ErrImageDimensionsImmutable.
func (rc *ResourceCache) UpdateImage(key api.ImageKey, bytes []byte) error {
	if err := rc.imageTemplates.Update(key, bytes); err != nil {
		return err
	}
	rc.images.Remove(key, rc.textures)
	return nil
}

// DeleteImage drops an image template and frees its cached upload.
func (rc *ResourceCache) DeleteImage(key api.ImageKey) {
	rc.imageTemplates.Delete(key)
	rc.images.Remove(key, rc.textures)
}

// UseImage returns the cache entry for an image used by the frame being
// built, creating it on first use and stamping its last access.
func (rc *ResourceCache) UseImage(key api.ImageKey, frame FrameID) *CachedImage {
	entry := rc.images.GetOrCreate(key, func() *CachedImage { return &CachedImage{} })
	rc.images.MarkAccessed(key, frame)
	return entry
}

// UseGlyph returns the cache entry for a glyph used by the frame being
// built, creating its font-level cache and entry on first use and
// stamping its last access.
func (rc *ResourceCache) UseGlyph(font api.FontInstanceKey, key GlyphKey, frame FrameID) *CachedGlyph {
	cache := rc.glyphs.FontCacheFor(font)
	entry := cache.GetOrCreate(key, func() *CachedGlyph { return &CachedGlyph{} })
	cache.MarkAccessed(key, frame)
	return entry
}

// ExpireOldResources sweeps every cache once against the given frame,
// freeing entries unused for longer than the configured horizon.
func (rc *ResourceCache) ExpireOldResources(frame FrameID) {
	rc.images.ExpireOldResources(frame, rc.config.ExpiryHorizon, rc.textures)
	rc.glyphs.ExpireOldResources(frame, rc.config.ExpiryHorizon, rc.textures)
}

// ClearNamespace tears down every resource minted by one producer
// namespace: font and image templates, cached uploads, and glyph
// caches. Used when a document unloads.
func (rc *ResourceCache) ClearNamespace(ns api.IDNamespace) {
	rc.images.ClearMatching(func(k api.ImageKey) bool {
		return k.Namespace == ns
	}, rc.textures)
	rc.glyphs.ClearFonts(func(fi api.FontInstanceKey) bool {
		return fi.Font.Namespace == ns
	}, rc.textures)
	for key := range rc.imageTemplates.images {
		if key.Namespace == ns {
			delete(rc.imageTemplates.images, key)
		}
	}
	for key := range rc.fonts.fonts {
		if key.Namespace == ns {
			delete(rc.fonts.fonts, key)
		}
	}
}

package resource

import "github.com/gogpu/framecore/api"

// FontTemplates holds the raw font-file bytes registered through
// AddRawFont. Shaping and rasterization happen outside the core; this
// registry only keeps the template data the rasterizer works from.
type FontTemplates struct {
	fonts map[api.FontKey][]byte
}

// NewFontTemplates creates an empty font registry.
func NewFontTemplates() *FontTemplates {
	return &FontTemplates{fonts: make(map[api.FontKey][]byte)}
}

// Add registers or replaces the font bytes for key.
func (t *FontTemplates) Add(key api.FontKey, bytes []byte) {
	t.fonts[key] = bytes
}

// Get returns the font bytes for key.
func (t *FontTemplates) Get(key api.FontKey) ([]byte, bool) {
	b, ok := t.fonts[key]
	return b, ok
}

// Delete forgets the font bytes for key.
func (t *FontTemplates) Delete(key api.FontKey) {
	delete(t.fonts, key)
}

// Len returns the number of registered fonts.
func (t *FontTemplates) Len() int {
	return len(t.fonts)
}

// Font implements the vector-content Services contract, letting the
// vector renderer look up font templates referenced by command streams.
func (t *FontTemplates) Font(key api.FontKey) ([]byte, bool) {
	return t.Get(key)
}

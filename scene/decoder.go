package scene

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/go-text/typesetting/font"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/api"
)

// ErrCorruptDisplayList is returned when a display-list byte stream is
// truncated or carries an unknown item tag. A corrupt list indicates a
// producer bug, never a recoverable condition.
var ErrCorruptDisplayList = errors.New("scene: corrupt display list")

// BuiltDisplayList is a finalized, immutable display list as shipped
// over the api channel.
type BuiltDisplayList struct {
	data []byte
}

// NewBuiltDisplayList wraps raw encoded bytes. The bytes are not
// validated here; decoding surfaces corruption.
func NewBuiltDisplayList(data []byte) BuiltDisplayList {
	return BuiltDisplayList{data: data}
}

// Data returns the encoded bytes.
func (l BuiltDisplayList) Data() []byte {
	return l.data
}

// IsEmpty returns true if the list contains no items.
func (l BuiltDisplayList) IsEmpty() bool {
	return len(l.data) == 0
}

// Decoder walks a display-list byte stream item by item.
//
// Usage:
//
//	dec := NewDecoder(list)
//	for dec.Next() {
//	    switch dec.Tag() {
//	    case TagRect:
//	        bounds, color := dec.Rect()
//	        // draw rect
//	    case TagImage:
//	        key, bounds := dec.Image()
//	        // draw image
//	    }
//	}
//	if err := dec.Err(); err != nil {
//	    // stream was corrupt
//	}
//
// Each tag's read method must be called exactly once after Next
// returns that tag; the decoder advances through the stream as fields
// are consumed.
type Decoder struct {
	data []byte
	pos  int

	currentTag ItemTag
	err        error
}

// NewDecoder creates a decoder over the list's bytes.
func NewDecoder(list BuiltDisplayList) *Decoder {
	return &Decoder{data: list.data}
}

// Next advances to the next item. It returns false at the end of the
// stream or on the first error; check Err after the loop.
func (d *Decoder) Next() bool {
	if d.err != nil || d.pos >= len(d.data) {
		return false
	}

	tag := ItemTag(d.data[d.pos])
	switch tag {
	case TagRect, TagImage, TagText, TagPushStackingContext,
		TagPopStackingContext, TagIFrame:
	default:
		d.fail("unknown tag 0x%02x at offset %d", byte(tag), d.pos)
		return false
	}
	d.currentTag = tag
	d.pos++
	return true
}

// Tag returns the current item's tag.
func (d *Decoder) Tag() ItemTag {
	return d.currentTag
}

// Err returns the first decoding error, wrapped around
// ErrCorruptDisplayList, or nil.
func (d *Decoder) Err() error {
	return d.err
}

// Rect reads the current rectangle item.
// Only valid when Tag() == TagRect.
func (d *Decoder) Rect() (bounds framecore.Rect, color framecore.Color) {
	bounds = d.readRect()
	color = d.readColor()
	return bounds, color
}

// Image reads the current image item.
// Only valid when Tag() == TagImage.
func (d *Decoder) Image() (key api.ImageKey, bounds framecore.Rect) {
	key.Namespace = api.IDNamespace(d.readU32())
	key.ID = d.readU32()
	bounds = d.readRect()
	return key, bounds
}

// Text reads the current text item.
// Only valid when Tag() == TagText.
func (d *Decoder) Text() (fontKey api.FontInstanceKey, color framecore.Color, glyphs []GlyphInstance) {
	fontKey.Font.Namespace = api.IDNamespace(d.readU32())
	fontKey.Font.ID = d.readU32()
	fontKey.Size = fixed.Int26_6(d.readI32())
	color = d.readColor()

	count := d.readU32()
	const glyphSize = 12
	if d.err == nil && int(count) > (len(d.data)-d.pos)/glyphSize {
		d.fail("glyph count %d exceeds remaining stream", count)
		return fontKey, color, nil
	}
	glyphs = make([]GlyphInstance, 0, count)
	for i := uint32(0); i < count && d.err == nil; i++ {
		glyphs = append(glyphs, GlyphInstance{
			Index:    font.GID(d.readU32()),
			Position: framecore.Pt(d.readF32(), d.readF32()),
		})
	}
	return fontKey, color, glyphs
}

// StackingContext reads the current push-stacking-context item.
// Only valid when Tag() == TagPushStackingContext.
func (d *Decoder) StackingContext() api.StackingContext {
	var sc api.StackingContext
	sc.Bounds = d.readRect()
	sc.Overflow = d.readRect()
	sc.ZIndex = d.readI32()
	for i := range sc.Transform {
		sc.Transform[i] = d.readF32()
	}
	for i := range sc.Perspective {
		sc.Perspective[i] = d.readF32()
	}
	sc.ScrollLayer = api.ScrollLayerID(d.readI32())
	sc.ScrollPolicy = api.ScrollPolicy(d.readByte())
	sc.MixBlendMode = api.MixBlendMode(d.readByte())
	sc.HasStackingContexts = d.readByte() != 0

	filterCount := d.readU32()
	const filterSize = 5
	if d.err == nil && int(filterCount) > (len(d.data)-d.pos)/filterSize {
		d.fail("filter count %d exceeds remaining stream", filterCount)
		return sc
	}
	if filterCount > 0 && d.err == nil {
		sc.Filters = make([]api.FilterOp, 0, filterCount)
		for i := uint32(0); i < filterCount && d.err == nil; i++ {
			sc.Filters = append(sc.Filters, api.FilterOp{
				Kind:   api.FilterKind(d.readByte()),
				Amount: d.readF32(),
			})
		}
	}
	return sc
}

// IFrame reads the current iframe item.
// Only valid when Tag() == TagIFrame.
func (d *Decoder) IFrame() (pipeline api.PipelineID, bounds framecore.Rect) {
	pipeline.Namespace = api.IDNamespace(d.readU32())
	pipeline.ID = d.readU32()
	bounds = d.readRect()
	return pipeline, bounds
}

func (d *Decoder) fail(format string, args ...any) {
	if d.err == nil {
		d.err = fmt.Errorf("%w: %s", ErrCorruptDisplayList, fmt.Sprintf(format, args...))
	}
}

func (d *Decoder) readByte() byte {
	if d.err != nil {
		return 0
	}
	if d.pos+1 > len(d.data) {
		d.fail("truncated at offset %d", d.pos)
		return 0
	}
	v := d.data[d.pos]
	d.pos++
	return v
}

func (d *Decoder) readU32() uint32 {
	if d.err != nil {
		return 0
	}
	if d.pos+4 > len(d.data) {
		d.fail("truncated at offset %d", d.pos)
		return 0
	}
	v := binary.LittleEndian.Uint32(d.data[d.pos:])
	d.pos += 4
	return v
}

func (d *Decoder) readI32() int32 {
	return int32(d.readU32())
}

func (d *Decoder) readF32() float32 {
	return math.Float32frombits(d.readU32())
}

func (d *Decoder) readRect() framecore.Rect {
	return framecore.NewRect(d.readF32(), d.readF32(), d.readF32(), d.readF32())
}

func (d *Decoder) readColor() framecore.Color {
	return framecore.Color{R: d.readF32(), G: d.readF32(), B: d.readF32(), A: d.readF32()}
}

package scene

import (
	"encoding/binary"
	"errors"
	"math"

	"github.com/go-text/typesetting/font"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/api"
)

// ErrUnbalancedContexts is returned by Finalize when pushes and pops of
// stacking contexts do not pair up.
var ErrUnbalancedContexts = errors.New("scene: unbalanced stacking contexts")

// GlyphInstance is one positioned glyph in a text item.
type GlyphInstance struct {
	Index    font.GID
	Position framecore.Point
}

// DisplayListBuilder encodes display items for one pipeline into the
// wire byte stream. Items are appended in paint order; the encoded
// bytes travel inside a payload and are decoded on the consumer side.
//
// The builder is single-use: build the list, call Finalize, ship the
// result.
type DisplayListBuilder struct {
	pipeline api.PipelineID
	data     []byte

	// Offsets of the HasStackingContexts byte of every open context,
	// innermost last. A nested push patches all of them.
	flagOffsets []int

	unbalanced bool
}

// NewDisplayListBuilder creates a builder for the given pipeline.
func NewDisplayListBuilder(pipeline api.PipelineID) *DisplayListBuilder {
	return &DisplayListBuilder{
		pipeline: pipeline,
		data:     make([]byte, 0, 256),
	}
}

// Pipeline returns the pipeline this list is being built for.
func (b *DisplayListBuilder) Pipeline() api.PipelineID {
	return b.pipeline
}

// PushRect appends a solid color rectangle.
func (b *DisplayListBuilder) PushRect(bounds framecore.Rect, color framecore.Color) {
	b.data = append(b.data, byte(TagRect))
	b.appendRect(bounds)
	b.appendColor(color)
}

// PushImage appends an image item referencing a registered image key.
func (b *DisplayListBuilder) PushImage(key api.ImageKey, bounds framecore.Rect) {
	b.data = append(b.data, byte(TagImage))
	b.appendU32(uint32(key.Namespace))
	b.appendU32(key.ID)
	b.appendRect(bounds)
}

// PushText appends a run of positioned glyphs in a single font
// instance and color.
func (b *DisplayListBuilder) PushText(fontKey api.FontInstanceKey, color framecore.Color, glyphs []GlyphInstance) {
	b.data = append(b.data, byte(TagText))
	b.appendU32(uint32(fontKey.Font.Namespace))
	b.appendU32(fontKey.Font.ID)
	b.appendI32(int32(fontKey.Size))
	b.appendColor(color)
	b.appendU32(uint32(len(glyphs)))
	for _, g := range glyphs {
		b.appendU32(uint32(g.Index))
		b.appendF32(g.Position.X)
		b.appendF32(g.Position.Y)
	}
}

// PushStackingContext opens a grouping node. Every open ancestor is
// marked as containing nested contexts; the context's own flag starts
// false and is patched if a descendant push follows.
func (b *DisplayListBuilder) PushStackingContext(sc api.StackingContext) {
	for _, off := range b.flagOffsets {
		b.data[off] = 1
	}

	b.data = append(b.data, byte(TagPushStackingContext))
	b.appendRect(sc.Bounds)
	b.appendRect(sc.Overflow)
	b.appendI32(sc.ZIndex)
	for i := range sc.Transform {
		b.appendF32(sc.Transform[i])
	}
	for i := range sc.Perspective {
		b.appendF32(sc.Perspective[i])
	}
	b.appendI32(int32(sc.ScrollLayer))
	b.data = append(b.data, byte(sc.ScrollPolicy), byte(sc.MixBlendMode))

	flagOff := len(b.data)
	b.data = append(b.data, 0)
	b.flagOffsets = append(b.flagOffsets, flagOff)

	b.appendU32(uint32(len(sc.Filters)))
	for _, f := range sc.Filters {
		b.data = append(b.data, byte(f.Kind))
		b.appendF32(f.Amount)
	}
}

// PopStackingContext closes the innermost open context.
func (b *DisplayListBuilder) PopStackingContext() {
	if len(b.flagOffsets) == 0 {
		b.unbalanced = true
		return
	}
	b.flagOffsets = b.flagOffsets[:len(b.flagOffsets)-1]
	b.data = append(b.data, byte(TagPopStackingContext))
}

// PushIFrame embeds another pipeline's display list at bounds.
func (b *DisplayListBuilder) PushIFrame(pipeline api.PipelineID, bounds framecore.Rect) {
	b.data = append(b.data, byte(TagIFrame))
	b.appendU32(uint32(pipeline.Namespace))
	b.appendU32(pipeline.ID)
	b.appendRect(bounds)
}

// Len returns the current encoded size in bytes.
func (b *DisplayListBuilder) Len() int {
	return len(b.data)
}

// Finalize returns the built display list. It fails if any stacking
// context is left open or was popped without a matching push.
func (b *DisplayListBuilder) Finalize() (BuiltDisplayList, error) {
	if b.unbalanced || len(b.flagOffsets) != 0 {
		return BuiltDisplayList{}, ErrUnbalancedContexts
	}
	return NewBuiltDisplayList(b.data), nil
}

func (b *DisplayListBuilder) appendU32(v uint32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, v)
}

func (b *DisplayListBuilder) appendI32(v int32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, uint32(v))
}

func (b *DisplayListBuilder) appendF32(v float32) {
	b.data = binary.LittleEndian.AppendUint32(b.data, math.Float32bits(v))
}

func (b *DisplayListBuilder) appendRect(r framecore.Rect) {
	b.appendF32(r.Origin.X)
	b.appendF32(r.Origin.Y)
	b.appendF32(r.Size.Width)
	b.appendF32(r.Size.Height)
}

func (b *DisplayListBuilder) appendColor(c framecore.Color) {
	b.appendF32(c.R)
	b.appendF32(c.G)
	b.appendF32(c.B)
	b.appendF32(c.A)
}

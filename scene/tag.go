// Package scene holds the retained scene model of the frame producer:
// per-pipeline display lists, build epochs, and the display-list byte
// codec used to ship lists across the api channel.
//
// Display lists are encoded as a flat tagged byte stream:
//   - A single-byte item tag
//   - Fixed-width little-endian fields per item type
//
// The stream is self-delimiting and decoded sequentially; nothing in it
// requires random access, which keeps the producer-side builder a plain
// append loop.
package scene

// ItemTag identifies one display item in the encoded stream. Tags are
// grouped by their high nibble:
//
//	0x0X: leaf draw items
//	0x1X: stacking-context structure
//	0x2X: pipeline composition
type ItemTag byte

const (
	// TagRect is a solid color rectangle.
	// Data: 4 float32 bounds, 4 float32 color
	TagRect ItemTag = 0x01

	// TagImage draws a registered image into a rectangle.
	// Data: 2 uint32 image key, 4 float32 bounds
	TagImage ItemTag = 0x02

	// TagText draws a run of positioned glyphs.
	// Data: font instance key, 4 float32 color, uint32 glyph count,
	// then per glyph: uint32 index, 2 float32 position
	TagText ItemTag = 0x03

	// TagPushStackingContext opens a grouping node. All items until the
	// matching pop belong to it.
	// Data: serialized StackingContext
	TagPushStackingContext ItemTag = 0x10

	// TagPopStackingContext closes the innermost open context.
	// Data: none
	TagPopStackingContext ItemTag = 0x11

	// TagIFrame embeds another pipeline's display list at a rectangle.
	// Data: 2 uint32 pipeline id, 4 float32 bounds
	TagIFrame ItemTag = 0x20
)

// String returns a human-readable name for the tag.
func (t ItemTag) String() string {
	switch t {
	case TagRect:
		return "Rect"
	case TagImage:
		return "Image"
	case TagText:
		return "Text"
	case TagPushStackingContext:
		return "PushStackingContext"
	case TagPopStackingContext:
		return "PopStackingContext"
	case TagIFrame:
		return "IFrame"
	default:
		return "Unknown"
	}
}

// IsStructural returns true if the tag opens or closes a stacking
// context rather than drawing content.
func (t ItemTag) IsStructural() bool {
	return t == TagPushStackingContext || t == TagPopStackingContext
}

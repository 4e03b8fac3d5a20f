package api

import (
	"fmt"

	"github.com/gogpu/framecore"
	"github.com/gogpu/gputypes"
	"golang.org/x/image/math/fixed"
)

// IDNamespace partitions resource keys between independent producers.
// Each RenderAPI handle owns one namespace; keys minted by different
// handles can never collide.
type IDNamespace uint32

// PipelineID identifies an independently-updatable sub-scene, such as a
// nested document. Pipelines are owned by the scene model; display-list
// items reference child pipelines by id, never by ownership.
type PipelineID struct {
	Namespace IDNamespace
	ID        uint32
}

// String returns "namespace:id" for debug output.
func (p PipelineID) String() string {
	return fmt.Sprintf("%d:%d", p.Namespace, p.ID)
}

// FontKey identifies a registered font template.
type FontKey struct {
	Namespace IDNamespace
	ID        uint32
}

// ImageKey identifies a registered image resource.
type ImageKey struct {
	Namespace IDNamespace
	ID        uint32
}

// DisplayListID identifies one display-list submission for bookkeeping
// and capture naming. It carries no scene semantics.
type DisplayListID struct {
	Namespace IDNamespace
	ID        uint32
}

// FontInstanceKey identifies a font at a concrete pixel size. Glyph
// caches are grouped by font instance, so evicting a font instance
// releases every glyph rasterized for it.
type FontInstanceKey struct {
	Font FontKey
	Size fixed.Int26_6
}

// ImageDescriptor describes the dimensions and pixel format of an image
// resource. The format is a WebGPU texture format; only formats with a
// fixed bytes-per-pixel are meaningful here.
type ImageDescriptor struct {
	Width  uint32
	Height uint32
	Format gputypes.TextureFormat
}

// ByteSize returns the expected length of the raw pixel data for this
// descriptor, or 0 for formats without a known bytes-per-pixel.
func (d ImageDescriptor) ByteSize() int {
	bpp := 0
	switch d.Format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		bpp = 4
	case gputypes.TextureFormatR8Unorm:
		bpp = 1
	}
	return int(d.Width) * int(d.Height) * bpp
}

// Epoch re-exports the root epoch counter for convenience, since nearly
// every command carries one.
type Epoch = framecore.Epoch

package api

import (
	"cogentcore.org/core/math32"
	"github.com/gogpu/framecore"
)

// ScrollPolicy controls how a stacking context reacts to scrolling.
type ScrollPolicy uint8

const (
	// ScrollPolicyScrollable moves with the scroll offset of its layer.
	ScrollPolicyScrollable ScrollPolicy = iota
	// ScrollPolicyFixed stays put regardless of scrolling.
	ScrollPolicyFixed
)

// String returns a human-readable name for the scroll policy.
func (p ScrollPolicy) String() string {
	switch p {
	case ScrollPolicyScrollable:
		return "Scrollable"
	case ScrollPolicyFixed:
		return "Fixed"
	default:
		return "Unknown"
	}
}

// MixBlendMode selects how a stacking context composites with its
// backdrop.
type MixBlendMode uint8

const (
	MixBlendNormal MixBlendMode = iota
	MixBlendMultiply
	MixBlendScreen
	MixBlendOverlay
	MixBlendDarken
	MixBlendLighten
	MixBlendDifference
	MixBlendExclusion
)

// String returns a human-readable name for the blend mode.
func (m MixBlendMode) String() string {
	switch m {
	case MixBlendNormal:
		return "Normal"
	case MixBlendMultiply:
		return "Multiply"
	case MixBlendScreen:
		return "Screen"
	case MixBlendOverlay:
		return "Overlay"
	case MixBlendDarken:
		return "Darken"
	case MixBlendLighten:
		return "Lighten"
	case MixBlendDifference:
		return "Difference"
	case MixBlendExclusion:
		return "Exclusion"
	default:
		return "Unknown"
	}
}

// FilterKind identifies a backdrop filter operation.
type FilterKind uint8

const (
	FilterBlur FilterKind = iota
	FilterBrightness
	FilterContrast
	FilterGrayscale
	FilterInvert
	FilterOpacity
	FilterSaturate
	FilterSepia
)

// FilterOp is one filter in a stacking context's filter chain.
type FilterOp struct {
	Kind   FilterKind
	Amount float32
}

// ScrollLayerID associates a stacking context with a scroll layer.
type ScrollLayerID int32

// NoScrollLayer marks a stacking context with no scroll-layer
// association.
const NoScrollLayer ScrollLayerID = -1

// StackingContext is a drawing-order grouping node. It establishes
// transform, blend, and clip scope for a subtree of display items.
// Z-index ties between siblings are broken by insertion order.
type StackingContext struct {
	// Bounds is the context rectangle in its parent's coordinate space.
	Bounds framecore.Rect

	// Overflow clips descendant content that escapes Bounds.
	Overflow framecore.Rect

	// ZIndex orders this context among its siblings.
	ZIndex int32

	// Transform applies to the context subtree. Identity when untouched.
	Transform math32.Matrix4

	// Perspective applies 3D perspective to child transforms.
	Perspective math32.Matrix4

	// ScrollLayer names the scroll layer this context moves with, or
	// NoScrollLayer.
	ScrollLayer ScrollLayerID

	// ScrollPolicy controls fixed-position behavior.
	ScrollPolicy ScrollPolicy

	// MixBlendMode composites the context against its backdrop.
	MixBlendMode MixBlendMode

	// Filters apply in order before compositing.
	Filters []FilterOp

	// HasStackingContexts records whether any nested stacking context
	// exists below this one. Frame build skips z-sorting entirely for
	// subtrees where it is false.
	HasStackingContexts bool
}

// NewStackingContext creates a stacking context with identity transform
// and perspective and no scroll-layer association.
func NewStackingContext(bounds, overflow framecore.Rect) StackingContext {
	return StackingContext{
		Bounds:      bounds,
		Overflow:    overflow,
		Transform:   *math32.Identity4(),
		Perspective: *math32.Identity4(),
		ScrollLayer: NoScrollLayer,
	}
}

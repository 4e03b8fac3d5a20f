// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/api"
	"github.com/gogpu/framecore/resource"
	"github.com/gogpu/framecore/scene"
	"github.com/gogpu/framecore/telemetry"
)

// ItemKind identifies a flattened frame item.
type ItemKind uint8

const (
	// KindRect is a solid color rectangle.
	KindRect ItemKind = iota
	// KindImage is a textured rectangle.
	KindImage
	// KindText is a run of positioned glyphs.
	KindText
)

func (k ItemKind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindImage:
		return "image"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("ItemKind(%d)", uint8(k))
	}
}

// Item is one draw in the flattened frame, in final paint order.
// Bounds are in frame space: pipeline and stacking-context origins and
// the scroll offset are already applied.
type Item struct {
	Kind   ItemKind
	Bounds framecore.Rect

	// Color paints rect and text items.
	Color framecore.Color

	// Image and Texture reference the content of image items. Texture
	// is zero when no upload exists.
	Image   api.ImageKey
	Texture resource.TextureID

	// Font and Glyphs carry text item content.
	Font   api.FontInstanceKey
	Glyphs []scene.GlyphInstance
}

// Frame is one flattened, paint-ordered assembly of the scene. The
// epoch pins the root pipeline generation the frame was built from.
type Frame struct {
	ID           resource.FrameID
	Epoch        framecore.Epoch
	Pipeline     api.PipelineID
	Background   *framecore.Color
	ViewportSize framecore.Size
	Items        []Item
}

// IsEmpty reports whether the frame draws nothing.
func (f *Frame) IsEmpty() bool {
	return len(f.Items) == 0 && f.Background == nil
}

// BuildFrame flattens the scene into the next frame. When the root
// pipeline is not ready the result is an empty frame and neither the
// frame clock nor the caches move. A corrupt display list aborts the
// build with no partial frame installed.
func (b *Backend) BuildFrame() (*Frame, error) {
	timer := b.telemetry.StartTimer(telemetry.PhaseFrameBuild)
	defer timer.Stop()

	root, ok := b.scene.RootPipeline()
	if !ok || !b.scene.Ready(root) {
		return &Frame{ID: b.frame}, nil
	}

	meta, _ := b.scene.Pipeline(root)
	frame := &Frame{
		ID:           b.frame,
		Epoch:        meta.Epoch,
		Pipeline:     root,
		Background:   meta.Background,
		ViewportSize: meta.ViewportSize,
	}

	fl := &flattener{backend: b, frame: b.frame, onStack: make(map[api.PipelineID]bool)}
	if err := fl.flattenPipeline(root, framecore.Pt(0, 0), true); err != nil {
		return nil, err
	}
	frame.Items = fl.items

	if fl.uploaded {
		if poller, ok := b.device.Device().(devicePoller); ok {
			poller.Poll(false)
		}
	}

	b.lastFrame = frame
	b.frame++

	sweep := b.telemetry.StartTimer(telemetry.PhaseCacheUpdate)
	b.resources.ExpireOldResources(frame.ID)
	sweep.Stop()

	return frame, nil
}

// entry is one node of a parsed display list: either a leaf item or a
// stacking-context subtree awaiting z-sorting.
type entry struct {
	leaf    *leafItem
	context *api.StackingContext
	// children of a context subtree, in stream order.
	children []entry
}

type leafItem struct {
	kind     ItemKind
	bounds   framecore.Rect
	color    framecore.Color
	image    api.ImageKey
	font     api.FontInstanceKey
	glyphs   []scene.GlyphInstance
	iframe   api.PipelineID
	isIFrame bool
}

func (e entry) zIndex() int32 {
	if e.context != nil {
		return e.context.ZIndex
	}
	return 0
}

type flattener struct {
	backend *Backend
	frame   resource.FrameID
	items   []Item

	// onStack guards against pipeline embedding cycles. Re-embedding a
	// pipeline that is not currently being flattened is legal.
	onStack map[api.PipelineID]bool

	// uploaded records whether any texture was created this build, so
	// the device is polled once to drive pending transfers.
	uploaded bool
}

func (fl *flattener) flattenPipeline(id api.PipelineID, origin framecore.Point, scrolled bool) error {
	if fl.onStack[id] {
		return fmt.Errorf("render: pipeline %v embeds itself", id)
	}
	list, ok := fl.backend.scene.DisplayList(id)
	if !ok {
		return nil
	}

	fl.onStack[id] = true
	defer delete(fl.onStack, id)

	dec := scene.NewDecoder(list)
	entries, err := parseEntries(dec, 0)
	if err != nil {
		return err
	}
	return fl.emit(entries, origin, scrolled, hasContexts(entries))
}

func hasContexts(entries []entry) bool {
	for _, e := range entries {
		if e.context != nil {
			return true
		}
	}
	return false
}

// parseEntries reads items until the stream ends (depth 0) or the
// enclosing context pops (depth > 0).
func parseEntries(dec *scene.Decoder, depth int) ([]entry, error) {
	var entries []entry
	for dec.Next() {
		switch dec.Tag() {
		case scene.TagRect:
			bounds, color := dec.Rect()
			entries = append(entries, entry{leaf: &leafItem{kind: KindRect, bounds: bounds, color: color}})

		case scene.TagImage:
			key, bounds := dec.Image()
			entries = append(entries, entry{leaf: &leafItem{kind: KindImage, bounds: bounds, image: key}})

		case scene.TagText:
			font, color, glyphs := dec.Text()
			entries = append(entries, entry{leaf: &leafItem{kind: KindText, color: color, font: font, glyphs: glyphs}})

		case scene.TagIFrame:
			pipeline, bounds := dec.IFrame()
			entries = append(entries, entry{leaf: &leafItem{bounds: bounds, iframe: pipeline, isIFrame: true}})

		case scene.TagPushStackingContext:
			sc := dec.StackingContext()
			children, err := parseEntries(dec, depth+1)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry{context: &sc, children: children})

		case scene.TagPopStackingContext:
			if depth == 0 {
				return nil, fmt.Errorf("%w: pop without matching push", scene.ErrCorruptDisplayList)
			}
			return entries, nil
		}
	}
	if err := dec.Err(); err != nil {
		return nil, err
	}
	if depth > 0 {
		return nil, fmt.Errorf("%w: unclosed stacking context", scene.ErrCorruptDisplayList)
	}
	return entries, nil
}

// emit walks entries in paint order, resolving resources against the
// frame being built. Sibling subtrees order by z-index with insertion
// order breaking ties; when the enclosing context recorded no nested
// contexts the sort is skipped entirely.
func (fl *flattener) emit(entries []entry, origin framecore.Point, scrolled, sortNeeded bool) error {
	if sortNeeded {
		entries = stableByZIndex(entries)
	}
	for _, e := range entries {
		if e.context != nil {
			sc := e.context
			childOrigin := origin.Add(sc.Bounds.Origin)
			childScrolled := scrolled && sc.ScrollPolicy != api.ScrollPolicyFixed
			if err := fl.emit(e.children, childOrigin, childScrolled, sc.HasStackingContexts); err != nil {
				return err
			}
			continue
		}

		leaf := e.leaf
		bounds := leaf.bounds.Translate(origin)
		if scrolled {
			scroll := fl.backend.scroll
			bounds = bounds.Translate(framecore.Pt(-scroll.X, -scroll.Y))
		}

		switch {
		case leaf.isIFrame:
			if !fl.backend.scene.Ready(leaf.iframe) {
				continue
			}
			if err := fl.flattenPipeline(leaf.iframe, bounds.Origin, scrolled); err != nil {
				return err
			}

		case leaf.kind == KindImage:
			cached := fl.backend.resources.UseImage(leaf.image, fl.frame)
			fl.uploadIfNeeded(leaf.image, cached)
			fl.items = append(fl.items, Item{
				Kind:    KindImage,
				Bounds:  bounds,
				Image:   leaf.image,
				Texture: cached.Texture,
			})

		case leaf.kind == KindText:
			for _, g := range leaf.glyphs {
				fl.backend.resources.UseGlyph(leaf.font, resource.GlyphKey{Index: g.Index}, fl.frame)
			}
			fl.items = append(fl.items, Item{
				Kind:   KindText,
				Bounds: bounds,
				Color:  leaf.color,
				Font:   leaf.font,
				Glyphs: leaf.glyphs,
			})

		default:
			fl.items = append(fl.items, Item{Kind: KindRect, Bounds: bounds, Color: leaf.color})
		}
	}
	return nil
}

// uploadIfNeeded creates the GPU texture for an image entry that has
// none yet. Upload failures are logged and leave the entry textureless
// so the next frame retries.
func (fl *flattener) uploadIfNeeded(key api.ImageKey, cached *resource.CachedImage) {
	if cached.Texture != 0 || fl.backend.uploader == nil {
		return
	}
	tpl, ok := fl.backend.resources.ImageTemplates().Get(key)
	if !ok {
		return
	}
	tex, err := fl.backend.uploader.Upload(tpl.Descriptor, tpl.Bytes)
	if err != nil {
		framecore.Logger().Warn("image upload failed", "key", key, "err", err)
		return
	}
	cached.Texture = fl.backend.resources.Textures().Insert(tex)
	fl.uploaded = true
}

// stableByZIndex returns entries ordered by z-index, preserving
// insertion order among equals. The input slice is not modified.
func stableByZIndex(entries []entry) []entry {
	sorted := make([]entry, len(entries))
	copy(sorted, entries)
	// Insertion sort keeps the common small sibling counts cheap and
	// is naturally stable.
	for i := 1; i < len(sorted); i++ {
		for j := i; j > 0 && sorted[j].zIndex() < sorted[j-1].zIndex(); j-- {
			sorted[j], sorted[j-1] = sorted[j-1], sorted[j]
		}
	}
	return sorted
}

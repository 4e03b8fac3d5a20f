package api

import (
	"cogentcore.org/core/math32"
	"github.com/gogpu/framecore"
)

// Command is a message from a producer to the render backend. Commands
// are applied strictly in the order a single sender issued them.
//
// Commands that carry bulk bytes keep only small control data here; the
// bytes travel out of band as a payload block (see AddDisplayList and
// SetRootStackingContext).
type Command interface {
	isCommand()
}

// AddRawFont registers a font template from raw font-file bytes.
type AddRawFont struct {
	Key   FontKey
	Bytes []byte
}

// AddImage registers an image resource with its pixel data.
type AddImage struct {
	Key        ImageKey
	Descriptor ImageDescriptor
	Bytes      []byte
}

// UpdateImage replaces the pixel data of a registered image. Dimension
// and format changes are unsupported: the backend rejects updates whose
// byte length does not match the registered descriptor.
type UpdateImage struct {
	Key   ImageKey
	Bytes []byte
}

// AddDisplayList announces a display-list submission. The display-list
// bytes and auxiliary bytes follow as a payload block whose epoch must
// match Epoch.
type AddDisplayList struct {
	ID       DisplayListID
	Pipeline PipelineID
	Epoch    framecore.Epoch
}

// SetRootStackingContext installs a new root stacking context for a
// pipeline and makes that pipeline the root. The root display list
// follows as a payload block.
type SetRootStackingContext struct {
	Context    StackingContext
	Background framecore.Color
	Epoch      framecore.Epoch
	Pipeline   PipelineID
}

// SetRootPipeline selects which pipeline is the root of the scene.
type SetRootPipeline struct {
	Pipeline PipelineID
}

// Scroll offsets the scrollable content by a delta in layout pixels.
type Scroll struct {
	Delta math32.Vector2
}

// Shutdown asks the backend to stop its receive loop.
type Shutdown struct{}

func (AddRawFont) isCommand()             {}
func (AddImage) isCommand()               {}
func (UpdateImage) isCommand()            {}
func (AddDisplayList) isCommand()         {}
func (SetRootStackingContext) isCommand() {}
func (SetRootPipeline) isCommand()        {}
func (Scroll) isCommand()                 {}
func (Shutdown) isCommand()               {}

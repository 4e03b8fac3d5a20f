package api

import (
	"fmt"
	"sync/atomic"

	"cogentcore.org/core/math32"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/payload"
)

// RenderAPI is the producer-side handle for driving the render backend.
// It allocates namespaced resource keys and issues commands over the
// channel pair. Bulk commands are split into a small control message
// plus an out-of-band payload block.
//
// A RenderAPI is safe for concurrent use; commands from a single
// goroutine are applied in issue order.
type RenderAPI struct {
	msgTx     MsgSender
	payloadTx PayloadSender
	namespace IDNamespace
	nextID    atomic.Uint32
}

// New creates a RenderAPI over the given channel halves, using
// namespace 1. Use NewWithNamespace when several producers share one
// backend.
func New(msgTx MsgSender, payloadTx PayloadSender) *RenderAPI {
	return NewWithNamespace(msgTx, payloadTx, 1)
}

// NewWithNamespace creates a RenderAPI that mints keys in the given
// namespace. Namespaces must be unique per producer.
func NewWithNamespace(msgTx MsgSender, payloadTx PayloadSender, ns IDNamespace) *RenderAPI {
	return &RenderAPI{msgTx: msgTx, payloadTx: payloadTx, namespace: ns}
}

// Namespace returns the key namespace owned by this handle.
func (r *RenderAPI) Namespace() IDNamespace {
	return r.namespace
}

func (r *RenderAPI) nextUniqueID() uint32 {
	return r.nextID.Add(1)
}

// AddRawFont registers a font template from raw font-file bytes and
// returns its key.
func (r *RenderAPI) AddRawFont(bytes []byte) (FontKey, error) {
	key := FontKey{Namespace: r.namespace, ID: r.nextUniqueID()}
	if err := r.msgTx.Send(AddRawFont{Key: key, Bytes: bytes}); err != nil {
		return FontKey{}, err
	}
	return key, nil
}

// AddImage registers an image resource and returns its key. The byte
// length must match the descriptor.
func (r *RenderAPI) AddImage(desc ImageDescriptor, bytes []byte) (ImageKey, error) {
	if want := desc.ByteSize(); want != 0 && want != len(bytes) {
		return ImageKey{}, fmt.Errorf("%w: descriptor wants %d bytes, got %d",
			ErrImageDimensionsImmutable, want, len(bytes))
	}
	key := ImageKey{Namespace: r.namespace, ID: r.nextUniqueID()}
	if err := r.msgTx.Send(AddImage{Key: key, Descriptor: desc, Bytes: bytes}); err != nil {
		return ImageKey{}, err
	}
	return key, nil
}

// UpdateImage replaces the pixel data of a registered image. Dimension
// and format changes are unsupported; the backend rejects updates whose
// byte length differs from the registered descriptor with
// ErrImageDimensionsImmutable.
func (r *RenderAPI) UpdateImage(key ImageKey, bytes []byte) error {
	return r.msgTx.Send(UpdateImage{Key: key, Bytes: bytes})
}

// AddDisplayList submits a built display list for a pipeline at the
// given epoch. The control message travels on the command channel and
// the bytes on the payload channel; the backend re-associates them by
// epoch.
func (r *RenderAPI) AddDisplayList(pipeline PipelineID, epoch framecore.Epoch, displayList, aux []byte) (DisplayListID, error) {
	if len(displayList) == 0 {
		return DisplayListID{}, ErrEmptyDisplayList
	}
	id := DisplayListID{Namespace: r.namespace, ID: r.nextUniqueID()}
	if err := r.msgTx.Send(AddDisplayList{ID: id, Pipeline: pipeline, Epoch: epoch}); err != nil {
		return DisplayListID{}, err
	}
	err := r.payloadTx.SendPayload(payload.Payload{
		Epoch:              epoch,
		DisplayListData:    displayList,
		AuxiliaryListsData: aux,
	})
	if err != nil {
		return DisplayListID{}, err
	}
	return id, nil
}

// SetRootStackingContext installs the root stacking context and root
// display list for a pipeline, makes it the root pipeline, and sets the
// scene background color.
func (r *RenderAPI) SetRootStackingContext(sc StackingContext, background framecore.Color, epoch framecore.Epoch, pipeline PipelineID, displayList, aux []byte) error {
	msg := SetRootStackingContext{
		Context:    sc,
		Background: background,
		Epoch:      epoch,
		Pipeline:   pipeline,
	}
	if err := r.msgTx.Send(msg); err != nil {
		return err
	}
	return r.payloadTx.SendPayload(payload.Payload{
		Epoch:              epoch,
		DisplayListData:    displayList,
		AuxiliaryListsData: aux,
	})
}

// SetRootPipeline selects the root pipeline of the scene.
func (r *RenderAPI) SetRootPipeline(pipeline PipelineID) error {
	return r.msgTx.Send(SetRootPipeline{Pipeline: pipeline})
}

// Scroll offsets scrollable content by a delta in layout pixels.
func (r *RenderAPI) Scroll(delta math32.Vector2) error {
	return r.msgTx.Send(Scroll{Delta: delta})
}

// Shutdown asks the backend to stop and closes both channel halves.
// Commands sent before Shutdown are still delivered.
func (r *RenderAPI) Shutdown() error {
	if err := r.msgTx.Send(Shutdown{}); err != nil {
		return err
	}
	if err := r.msgTx.Close(); err != nil {
		return err
	}
	return r.payloadTx.Close()
}

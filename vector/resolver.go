package vector

import (
	"errors"
	"fmt"

	"github.com/gogpu/framecore/api"
)

// ErrNoPendingRequest is returned by Resolve when no request is pending
// for the key. This is a programming-contract violation on the caller's
// side, surfaced immediately and never retried.
var ErrNoPendingRequest = errors.New("vector: resolve without pending request")

// ImageKey uniquely identifies one vector-content resource across its
// producer and consumer.
type ImageKey struct {
	Namespace api.IDNamespace
	ID        uint32
}

// String returns "namespace:id" for debug output.
func (k ImageKey) String() string {
	return fmt.Sprintf("%d:%d", k.Namespace, k.ID)
}

// Descriptor carries the rasterization parameters for one request.
type Descriptor struct {
	Width  uint32
	Height uint32
	// Scale is the device-pixel ratio to rasterize at.
	Scale float32
}

// Rasterized is the output of the renderer for one resolved key.
type Rasterized struct {
	Descriptor Descriptor
	Data       []byte
}

// Services exposes the cached resources a renderer may need while
// rasterizing, such as font templates referenced by the command stream.
type Services interface {
	Font(key api.FontKey) ([]byte, bool)
}

// Renderer is the pluggable vector-content renderer. The resolver
// forwards registration and lifecycle calls and tracks per-key request
// state; the renderer does the actual rasterization, possibly on its
// own workers.
type Renderer interface {
	// Update registers a key's command stream or replaces it.
	Update(key ImageKey, data []byte)

	// Delete drops all renderer state for a key.
	Delete(key ImageKey)

	// Request asks for rasterization of a key at the given parameters.
	Request(services Services, key ImageKey, desc Descriptor)

	// Resolve collects the rasterization result for a requested key.
	Resolve(key ImageKey) (Rasterized, error)
}

// keyState is the explicit per-key request state.
type keyState uint8

const (
	stateUnrequested keyState = iota
	stateRequested
	stateResolved
)

// String returns a human-readable name for the state.
func (s keyState) String() string {
	switch s {
	case stateUnrequested:
		return "unrequested"
	case stateRequested:
		return "requested"
	case stateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

type entry struct {
	state keyState
	desc  Descriptor
}

// Resolver enforces the unrequested → requested → resolved state
// machine per key on top of a Renderer. It is owned by the consumer
// goroutine and never blocks: asynchrony lives inside the renderer.
type Resolver struct {
	renderer Renderer
	services Services
	entries  map[ImageKey]*entry
}

// NewResolver creates a resolver delegating to the given renderer. The
// services handle is passed through on every request.
func NewResolver(renderer Renderer, services Services) *Resolver {
	return &Resolver{
		renderer: renderer,
		services: services,
		entries:  make(map[ImageKey]*entry),
	}
}

// Update registers or replaces a key's command stream. An update
// arriving after the key resolved invalidates the result: the key moves
// back to requested and is re-rendered with its previous descriptor.
func (r *Resolver) Update(key ImageKey, data []byte) {
	r.renderer.Update(key, data)
	e, ok := r.entries[key]
	if !ok {
		r.entries[key] = &entry{state: stateUnrequested}
		return
	}
	if e.state == stateResolved {
		e.state = stateRequested
		r.renderer.Request(r.services, key, e.desc)
	}
}

// Delete drops the key. Terminal: the key is absent from subsequent
// request/resolve pairs until a fresh cycle re-registers it.
func (r *Resolver) Delete(key ImageKey) {
	r.renderer.Delete(key)
	delete(r.entries, key)
}

// Request asks for rasterization of the key. From unrequested or
// resolved this issues a renderer request; if a request is already
// pending the call is idempotent and the renderer is not re-asked.
func (r *Resolver) Request(key ImageKey, desc Descriptor) {
	e, ok := r.entries[key]
	if !ok {
		e = &entry{}
		r.entries[key] = e
	}
	if e.state == stateRequested {
		return
	}
	e.state = stateRequested
	e.desc = desc
	r.renderer.Request(r.services, key, desc)
}

// Resolve collects the result for a requested key and marks it
// resolved. Calling Resolve with no pending request returns a wrapped
// ErrNoPendingRequest.
func (r *Resolver) Resolve(key ImageKey) (Rasterized, error) {
	e, ok := r.entries[key]
	if !ok || e.state != stateRequested {
		state := "absent"
		if ok {
			state = e.state.String()
		}
		return Rasterized{}, fmt.Errorf("%w: key %v is %s", ErrNoPendingRequest, key, state)
	}
	result, err := r.renderer.Resolve(key)
	if err != nil {
		return Rasterized{}, err
	}
	e.state = stateResolved
	return result, nil
}

// Len returns the number of tracked keys.
func (r *Resolver) Len() int {
	return len(r.entries)
}

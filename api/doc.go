// Package api defines the protocol between scene producers and the
// render backend: resource keys, epochs, the typed command set, and the
// channel contract that carries commands from the producer goroutine to
// the consumer goroutine.
//
// Two channel backends are provided behind the same contract: an
// in-process unbounded queue for single-process embedding, and a
// websocket transport for sandboxed cross-process embedding. Their
// behavior is observably identical apart from the serialization
// boundary.
//
// The RenderAPI type is the producer-side handle. It allocates
// namespaced resource keys and splits bulk commands (fonts, images,
// display lists) into a small control message plus an out-of-band
// payload block encoded by the payload package.
package api

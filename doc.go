// Package framecore is the frame-production core of a retained-mode GPU
// rendering engine.
//
// # Overview
//
// framecore accepts scene descriptions (display lists of drawing
// primitives grouped into stacking contexts and pipelines), maintains
// GPU-backed caches for derived resources (rasterized glyphs, decoded
// images, vector-graphics content), and turns scene state plus cache
// state into a renderable frame. A producer goroutine authors scenes
// and a consumer goroutine owns all caches and GPU resources; the two
// are decoupled by an asynchronous message channel.
//
// # Architecture
//
// The module is organized into:
//   - api: keys, epochs, the typed command set, the producer-side
//     RenderAPI handle, and the channel contract with in-process and
//     websocket backends
//   - payload: the binary framing for bulk display-list bytes
//   - resource: the generic epoch-evicted resource cache and its
//     image, glyph, and texture specializations
//   - scene: pipelines, stacking contexts, and the display-list codec
//   - vector: the asynchronous vector-content resolver
//   - capture: deterministic on-disk snapshots for debugging and
//     regression testing
//   - telemetry: phase-timing instrumentation hooks
//   - render: the consumer backend that applies commands and builds
//     frames
//
// # Quick Start
//
//	msgTx, msgRx := api.NewMsgChannel()
//	payloadTx, payloadRx := api.NewPayloadChannel()
//
//	renderAPI := api.New(msgTx, payloadTx)
//	backend := render.NewBackend(msgRx, payloadRx, render.DefaultConfig())
//	go backend.Run()
//
//	builder := scene.NewDisplayListBuilder(pipeline)
//	builder.PushRect(bounds, framecore.ColorWhite)
//	renderAPI.AddDisplayList(pipeline, epoch, builder)
//
// GPU command submission, font rasterization, image decoding, and
// windowing are external collaborators reached through narrow
// interfaces; framecore only schedules, caches, and assembles.
package framecore

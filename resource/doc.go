// Package resource implements the GPU-backed resource caches of the
// render backend: a generic keyed cache with frame-epoch eviction, its
// image and glyph specializations, the texture handle store they free
// into, and the font/image template registries that back them.
//
// All caches are owned by the consumer goroutine. No cache operation
// blocks or fails: absence of a key is represented by creation, never
// by an error, and the only external effect of eviction is the
// texture-store free hook, which releases each GPU handle exactly once.
package resource

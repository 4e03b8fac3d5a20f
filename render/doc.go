// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render is the consumer side of the engine: it drains producer
// commands from the api channel, maintains the retained scene and the
// resource caches, and flattens the scene into frames.
//
// A Backend runs on a single goroutine. All scene and cache mutation
// happens there; the only cross-goroutine edges are the api channels it
// receives on.
package render

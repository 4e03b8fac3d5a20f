// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/framecore/api"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host implements gpucontext.DeviceProvider and passes it in; the
// backend never creates a device of its own. DeviceHandle is an alias
// so hosts already integrated with the gpucontext ecosystem plug in
// without adapters.
type DeviceHandle = gpucontext.DeviceProvider

// TextureUploader turns registered image bytes into GPU textures. The
// host supplies one when it wants image and glyph content resident on
// the GPU; without it the backend tracks resources but uploads
// nothing.
type TextureUploader interface {
	// Upload creates a texture from raw pixel data matching the
	// descriptor. The returned handle is owned by the resource caches
	// and destroyed when the entry is evicted.
	Upload(desc api.ImageDescriptor, data []byte) (any, error)
}

// devicePoller is the optional polling surface of a device handle.
// gpucontext.Device is deliberately opaque; backends whose devices
// support polling are driven through this seam after uploads.
type devicePoller interface {
	Poll(wait bool)
}

// NullDeviceHandle is a DeviceHandle with nil implementations, for
// headless operation where no GPU is available.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// AdapterInfo returns empty info for the null device.
func (NullDeviceHandle) AdapterInfo() gpucontext.AdapterInfo {
	var info gpucontext.AdapterInfo
	return info
}

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}

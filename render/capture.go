// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"

	"github.com/gogpu/framecore/capture"
	"github.com/gogpu/framecore/scene"
)

// ErrCaptureDisabled is returned when capture operations run without a
// configured capture root.
var ErrCaptureDisabled = errors.New("render: capture not configured")

const (
	captureScene = "scene"
	captureFrame = "frame"
)

// Capture writes the current engine state under the configured capture
// root. The scene is always included; the last built frame only when
// BitsFrame is set.
func (b *Backend) Capture() error {
	if b.capture.Root == "" {
		return ErrCaptureDisabled
	}
	if err := b.capture.Serialize(b.scene.Snapshot(), captureScene); err != nil {
		return err
	}
	if b.capture.Bits.Has(capture.BitsFrame) && b.lastFrame != nil {
		if err := b.capture.Serialize(b.lastFrame, captureFrame); err != nil {
			return err
		}
	}
	return nil
}

// LoadCapture replaces the scene with the one captured under root. A
// capture without a scene snapshot leaves the backend untouched; a
// corrupt snapshot surfaces capture.ErrSnapshotCorrupt.
func (b *Backend) LoadCapture(root string) error {
	snap, ok, err := capture.Deserialize[scene.Snapshot](root, captureScene)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	b.scene.Restore(snap)

	frame, ok, err := capture.Deserialize[Frame](root, captureFrame)
	if err != nil {
		return err
	}
	if ok {
		b.lastFrame = &frame
	}
	return nil
}

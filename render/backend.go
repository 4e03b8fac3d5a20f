// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"cogentcore.org/core/math32"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/api"
	"github.com/gogpu/framecore/capture"
	"github.com/gogpu/framecore/resource"
	"github.com/gogpu/framecore/scene"
	"github.com/gogpu/framecore/telemetry"
	"github.com/gogpu/framecore/vector"
)

// ErrEpochMismatch is returned when a payload arrives carrying a
// different epoch than its control message announced. The pair is
// produced atomically, so a mismatch means the channel streams have
// diverged.
var ErrEpochMismatch = errors.New("render: payload epoch does not match control message")

// Config holds backend configuration. The zero value is usable: nop
// telemetry, no capture, null device, no uploads.
type Config struct {
	// Cache configures resource cache eviction.
	Cache resource.CacheConfig

	// Capture enables state captures when Root is non-empty.
	Capture capture.Config

	// Telemetry receives phase timings. Nil means none.
	Telemetry telemetry.Sink

	// Device is the host GPU device access, or nil for headless.
	Device DeviceHandle

	// Uploader creates GPU textures for image content. Nil disables
	// uploads; cache bookkeeping still runs.
	Uploader TextureUploader

	// VectorRenderer rasterizes vector image content. Nil when the
	// host supplies none.
	VectorRenderer vector.Renderer
}

// DefaultConfig returns the default backend configuration.
func DefaultConfig() Config {
	return Config{Cache: resource.DefaultCacheConfig()}
}

// Backend drains producer commands and builds frames. It owns the
// scene, the resource caches, and the scroll state, all confined to
// the goroutine calling Run or ProcessOne.
type Backend struct {
	msgRx     api.MsgReceiver
	payloadRx api.PayloadReceiver

	scene     *scene.Scene
	resources *resource.ResourceCache

	scroll      math32.Vector2
	rootContext *api.StackingContext

	capture   capture.Config
	telemetry telemetry.Sink
	device    DeviceHandle
	uploader  TextureUploader

	frame     resource.FrameID
	lastFrame *Frame
}

// NewBackend creates a backend reading from the given channel halves.
func NewBackend(msgRx api.MsgReceiver, payloadRx api.PayloadReceiver, cfg Config) *Backend {
	sink := cfg.Telemetry
	if sink == nil {
		sink = telemetry.Nop()
	}
	device := cfg.Device
	if device == nil {
		device = NullDeviceHandle{}
	}
	return &Backend{
		msgRx:     msgRx,
		payloadRx: payloadRx,
		scene:     scene.NewScene(),
		resources: resource.NewResourceCache(cfg.Cache, cfg.VectorRenderer),
		capture:   cfg.Capture,
		telemetry: sink,
		device:    device,
		uploader:  cfg.Uploader,
	}
}

// Scene returns the retained scene.
func (b *Backend) Scene() *scene.Scene { return b.scene }

// Resources returns the resource caches.
func (b *Backend) Resources() *resource.ResourceCache { return b.resources }

// ScrollOffset returns the accumulated scroll offset.
func (b *Backend) ScrollOffset() math32.Vector2 { return b.scroll }

// LastFrame returns the most recently built frame, or nil.
func (b *Backend) LastFrame() *Frame { return b.lastFrame }

// Run processes commands until the producer shuts down or the channel
// closes. Command application errors are logged and do not stop the
// loop; only channel teardown does.
func (b *Backend) Run() error {
	for {
		done, err := b.ProcessOne()
		if done {
			return nil
		}
		if errors.Is(err, api.ErrChannelClosed) {
			return err
		}
		if err != nil {
			framecore.Logger().Error("command application failed", "err", err)
		}
	}
}

// ProcessOne receives and applies a single command. It returns done
// when the producer sent Shutdown, and the application error if the
// command failed.
func (b *Backend) ProcessOne() (done bool, err error) {
	cmd, err := b.msgRx.Recv()
	if err != nil {
		return false, err
	}
	if _, ok := cmd.(api.Shutdown); ok {
		return true, nil
	}

	timer := b.telemetry.StartTimer(telemetry.PhaseSceneBuild)
	err = b.apply(cmd)
	timer.Stop()
	return false, err
}

func (b *Backend) apply(cmd api.Command) error {
	switch c := cmd.(type) {
	case api.AddRawFont:
		b.resources.AddFontTemplate(c.Key, c.Bytes)
		return nil

	case api.AddImage:
		b.resources.AddImage(c.Key, c.Descriptor, c.Bytes)
		return nil

	case api.UpdateImage:
		return b.resources.UpdateImage(c.Key, c.Bytes)

	case api.AddDisplayList:
		payload, err := b.payloadRx.RecvPayload()
		if err != nil {
			return err
		}
		if payload.Epoch != c.Epoch {
			return fmt.Errorf("%w: pipeline %v control %d payload %d",
				ErrEpochMismatch, c.Pipeline, c.Epoch, payload.Epoch)
		}
		return b.installDisplayList(c.Pipeline, c.Epoch, payload.DisplayListData)

	case api.SetRootStackingContext:
		payload, err := b.payloadRx.RecvPayload()
		if err != nil {
			return err
		}
		if payload.Epoch != c.Epoch {
			return fmt.Errorf("%w: pipeline %v control %d payload %d",
				ErrEpochMismatch, c.Pipeline, c.Epoch, payload.Epoch)
		}
		background := c.Background
		b.scene.BeginDisplayList(c.Pipeline, c.Epoch, &background, c.Context.Bounds.Size)
		if err := b.scene.FinishDisplayList(c.Pipeline, scene.NewBuiltDisplayList(payload.DisplayListData)); err != nil {
			return err
		}
		root := c.Context
		b.rootContext = &root
		b.scene.SetRootPipeline(c.Pipeline)
		return nil

	case api.SetRootPipeline:
		b.scene.SetRootPipeline(c.Pipeline)
		return nil

	case api.Scroll:
		b.scroll = b.scroll.Add(c.Delta)
		return nil

	default:
		return fmt.Errorf("render: unhandled command %T", cmd)
	}
}

// installDisplayList updates a pipeline's epoch and installs its new
// list, preserving previously established background and viewport.
func (b *Backend) installDisplayList(id api.PipelineID, epoch framecore.Epoch, data []byte) error {
	var background *framecore.Color
	var viewport framecore.Size
	if p, ok := b.scene.Pipeline(id); ok {
		background = p.Background
		viewport = p.ViewportSize
	}
	b.scene.BeginDisplayList(id, epoch, background, viewport)
	return b.scene.FinishDisplayList(id, scene.NewBuiltDisplayList(data))
}

// Command framecoredemo drives a render backend through a small scene
// and prints the resulting frame.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"cogentcore.org/core/math32"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/api"
	"github.com/gogpu/framecore/capture"
	"github.com/gogpu/framecore/render"
	"github.com/gogpu/framecore/scene"
	"github.com/gogpu/framecore/telemetry"
)

func main() {
	var (
		width      = flag.Int("width", 800, "viewport width")
		height     = flag.Int("height", 600, "viewport height")
		captureDir = flag.String("capture", "", "directory for scene and frame snapshots")
		verbose    = flag.Bool("v", false, "log backend activity")
	)
	flag.Parse()

	if *verbose {
		framecore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	}

	msgTx, msgRx := api.NewMsgChannel()
	payloadTx, payloadRx := api.NewPayloadChannel()
	producer := api.New(msgTx, payloadTx)

	sink := telemetry.NewLogSink(time.Second)
	cfg := render.DefaultConfig()
	cfg.Telemetry = sink
	if *captureDir != "" {
		cfg.Capture = capture.New(*captureDir, capture.BitsAll)
	}
	backend := render.NewBackend(msgRx, payloadRx, cfg)

	root := api.PipelineID{Namespace: producer.Namespace(), ID: 1}
	child := api.PipelineID{Namespace: producer.Namespace(), ID: 2}

	if err := produce(producer, root, child, float32(*width), float32(*height)); err != nil {
		log.Fatalf("Failed to produce scene: %v", err)
	}
	if err := backend.Run(); err != nil {
		log.Fatalf("Backend failed: %v", err)
	}

	frame, err := backend.BuildFrame()
	if err != nil {
		log.Fatalf("Failed to build frame: %v", err)
	}

	if *captureDir != "" {
		if err := backend.Capture(); err != nil {
			log.Fatalf("Failed to capture: %v", err)
		}
		log.Printf("Snapshots written to %s", *captureDir)
	}

	if *verbose {
		sink.Flush()
	}

	log.Printf("Frame %d epoch %d: %d items in a %gx%g viewport",
		frame.ID, frame.Epoch, len(frame.Items),
		frame.ViewportSize.Width, frame.ViewportSize.Height)
	for i, item := range frame.Items {
		log.Printf("  %2d: %v at (%g,%g) %gx%g", i, item.Kind,
			item.Bounds.Origin.X, item.Bounds.Origin.Y,
			item.Bounds.Size.Width, item.Bounds.Size.Height)
	}
}

// produce sends a two-pipeline scene: the root draws a background and a
// pair of overlapping z-ordered cards, and embeds the child pipeline.
func produce(producer *api.RenderAPI, root, child api.PipelineID, w, h float32) error {
	childList, err := buildChildList(child)
	if err != nil {
		return err
	}
	if _, err := producer.AddDisplayList(child, 1, childList, nil); err != nil {
		return err
	}

	rootList, err := buildRootList(root, child, w, h)
	if err != nil {
		return err
	}
	bounds := framecore.NewRect(0, 0, w, h)
	sc := api.NewStackingContext(bounds, bounds)
	background := framecore.RGB(0.1, 0.1, 0.15)
	if err := producer.SetRootStackingContext(sc, background, 1, root, rootList, nil); err != nil {
		return err
	}

	if err := producer.Scroll(math32.Vec2(0, 40)); err != nil {
		return err
	}
	return producer.Shutdown()
}

func buildRootList(root, child api.PipelineID, w, h float32) ([]byte, error) {
	b := scene.NewDisplayListBuilder(root)

	b.PushRect(framecore.NewRect(0, 0, w, h), framecore.RGB(0.15, 0.18, 0.25))

	// Two cards that overlap; the lower z-index paints first.
	back := api.NewStackingContext(
		framecore.NewRect(120, 120, 260, 180),
		framecore.NewRect(0, 0, 260, 180))
	back.ZIndex = -1
	b.PushStackingContext(back)
	b.PushRect(framecore.NewRect(0, 0, 260, 180), framecore.RGB(0.3, 0.5, 0.8))
	b.PopStackingContext()

	front := api.NewStackingContext(
		framecore.NewRect(200, 180, 260, 180),
		framecore.NewRect(0, 0, 260, 180))
	front.ZIndex = 1
	b.PushStackingContext(front)
	b.PushRect(framecore.NewRect(0, 0, 260, 180), framecore.RGB(0.9, 0.6, 0.2))
	b.PopStackingContext()

	// A fixed header that ignores scrolling.
	header := api.NewStackingContext(
		framecore.NewRect(0, 0, w, 48),
		framecore.NewRect(0, 0, w, 48))
	header.ScrollPolicy = api.ScrollPolicyFixed
	b.PushStackingContext(header)
	b.PushRect(framecore.NewRect(0, 0, w, 48), framecore.RGB(0.2, 0.2, 0.2))
	b.PopStackingContext()

	b.PushIFrame(child, framecore.NewRect(500, 120, 240, 320))

	list, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	return list.Data(), nil
}

func buildChildList(child api.PipelineID) ([]byte, error) {
	b := scene.NewDisplayListBuilder(child)
	b.PushRect(framecore.NewRect(0, 0, 240, 320), framecore.RGB(0.95, 0.95, 0.9))
	b.PushRect(framecore.NewRect(20, 20, 200, 60), framecore.RGB(0.8, 0.3, 0.3))
	list, err := b.Finalize()
	if err != nil {
		return nil, err
	}
	return list.Data(), nil
}

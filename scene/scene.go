package scene

import (
	"errors"
	"sort"

	"github.com/gogpu/framecore"
	"github.com/gogpu/framecore/api"
)

// ErrUnknownPipeline is returned when a display list is finished for a
// pipeline that was never begun.
var ErrUnknownPipeline = errors.New("scene: unknown pipeline")

// Pipeline is the per-pipeline metadata established by the producer
// when it begins a display list. It is replaced wholesale on every
// begin; the last writer wins.
type Pipeline struct {
	// Epoch identifies the producer-side generation of the content.
	Epoch framecore.Epoch

	// ViewportSize is the layout viewport the list was built against.
	ViewportSize framecore.Size

	// Background fills the pipeline area before items draw, or nil for
	// no fill.
	Background *framecore.Color
}

// Scene is the retained model the consumer builds frames from: the
// root pipeline designation plus, per pipeline, metadata and the most
// recently installed display list.
//
// A display list never exists without its pipeline metadata. Scene is
// owned by the consumer goroutine and is not safe for concurrent use.
type Scene struct {
	root         *api.PipelineID
	pipelines    map[api.PipelineID]Pipeline
	displayLists map[api.PipelineID]BuiltDisplayList
}

// NewScene creates an empty scene with no root pipeline.
func NewScene() *Scene {
	return &Scene{
		pipelines:    make(map[api.PipelineID]Pipeline),
		displayLists: make(map[api.PipelineID]BuiltDisplayList),
	}
}

// SetRootPipeline designates which pipeline frames composite from.
// The pipeline does not have to exist yet; frame build produces empty
// frames until it is ready.
func (s *Scene) SetRootPipeline(id api.PipelineID) {
	root := id
	s.root = &root
}

// RootPipeline returns the designated root pipeline, if any.
func (s *Scene) RootPipeline() (api.PipelineID, bool) {
	if s.root == nil {
		return api.PipelineID{}, false
	}
	return *s.root, true
}

// BeginDisplayList installs fresh metadata for a pipeline. Any display
// list previously installed for the pipeline stays visible until
// FinishDisplayList replaces it.
func (s *Scene) BeginDisplayList(id api.PipelineID, epoch framecore.Epoch, background *framecore.Color, viewport framecore.Size) {
	s.pipelines[id] = Pipeline{
		Epoch:        epoch,
		ViewportSize: viewport,
		Background:   background,
	}
}

// FinishDisplayList installs the built list for a pipeline, making it
// visible to the next frame build. The pipeline must have been begun.
func (s *Scene) FinishDisplayList(id api.PipelineID, list BuiltDisplayList) error {
	if _, ok := s.pipelines[id]; !ok {
		return ErrUnknownPipeline
	}
	s.displayLists[id] = list
	return nil
}

// Ready reports whether a pipeline has both metadata and an installed
// display list, so frame build can draw it.
func (s *Scene) Ready(id api.PipelineID) bool {
	if _, ok := s.pipelines[id]; !ok {
		return false
	}
	_, ok := s.displayLists[id]
	return ok
}

// Pipeline returns the metadata for a pipeline.
func (s *Scene) Pipeline(id api.PipelineID) (Pipeline, bool) {
	p, ok := s.pipelines[id]
	return p, ok
}

// DisplayList returns the installed list for a pipeline.
func (s *Scene) DisplayList(id api.PipelineID) (BuiltDisplayList, bool) {
	l, ok := s.displayLists[id]
	return l, ok
}

// RemovePipeline drops a pipeline's metadata and display list.
func (s *Scene) RemovePipeline(id api.PipelineID) {
	delete(s.pipelines, id)
	delete(s.displayLists, id)
}

// PipelineCount returns the number of pipelines with metadata.
func (s *Scene) PipelineCount() int {
	return len(s.pipelines)
}

// PipelineSnapshot is the serializable form of one pipeline's state.
type PipelineSnapshot struct {
	ID          api.PipelineID
	Pipeline    Pipeline
	DisplayList []byte `yaml:",omitempty"`
}

// Snapshot is the serializable form of a whole scene, with pipelines
// sorted by id so that identical scenes serialize identically.
type Snapshot struct {
	Root      *api.PipelineID `yaml:",omitempty"`
	Pipelines []PipelineSnapshot
}

// Snapshot captures the scene into its serializable form.
func (s *Scene) Snapshot() Snapshot {
	snap := Snapshot{}
	if s.root != nil {
		root := *s.root
		snap.Root = &root
	}
	for id, p := range s.pipelines {
		ps := PipelineSnapshot{ID: id, Pipeline: p}
		if l, ok := s.displayLists[id]; ok {
			ps.DisplayList = l.Data()
		}
		snap.Pipelines = append(snap.Pipelines, ps)
	}
	sort.Slice(snap.Pipelines, func(i, j int) bool {
		a, b := snap.Pipelines[i].ID, snap.Pipelines[j].ID
		if a.Namespace != b.Namespace {
			return a.Namespace < b.Namespace
		}
		return a.ID < b.ID
	})
	return snap
}

// Restore replaces the scene's state with a snapshot's.
func (s *Scene) Restore(snap Snapshot) {
	s.root = nil
	if snap.Root != nil {
		root := *snap.Root
		s.root = &root
	}
	s.pipelines = make(map[api.PipelineID]Pipeline, len(snap.Pipelines))
	s.displayLists = make(map[api.PipelineID]BuiltDisplayList, len(snap.Pipelines))
	for _, ps := range snap.Pipelines {
		s.pipelines[ps.ID] = ps.Pipeline
		if ps.DisplayList != nil {
			s.displayLists[ps.ID] = NewBuiltDisplayList(ps.DisplayList)
		}
	}
}

// Package telemetry provides timing hooks around the expensive phases
// of frame production. The render backend reports into a Sink; the nop
// sink keeps the hot path free when nobody is listening.
package telemetry

import "time"

// Phase names one timed stage of frame production.
type Phase uint8

const (
	// PhaseSceneBuild covers applying producer commands to the scene.
	PhaseSceneBuild Phase = iota
	// PhaseFrameBuild covers flattening the scene into a frame.
	PhaseFrameBuild
	// PhaseCacheUpdate covers the resource cache eviction sweep.
	PhaseCacheUpdate

	phaseCount
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseSceneBuild:
		return "SceneBuild"
	case PhaseFrameBuild:
		return "FrameBuild"
	case PhaseCacheUpdate:
		return "CacheUpdate"
	default:
		return "Unknown"
	}
}

// Timer measures one in-flight phase. Stop records the elapsed time
// into the sink that started it.
type Timer interface {
	Stop()
}

// Sink receives phase timings. Implementations must tolerate calls
// from the consumer goroutine only; no internal synchronization is
// required of them beyond that.
type Sink interface {
	// StartTimer begins timing a phase. The returned timer records the
	// duration when stopped.
	StartTimer(phase Phase) Timer

	// RecordDuration reports an already-measured phase duration.
	RecordDuration(phase Phase, d time.Duration)
}

type nopSink struct{}

type nopTimer struct{}

func (nopTimer) Stop() {}

func (nopSink) StartTimer(Phase) Timer              { return nopTimer{} }
func (nopSink) RecordDuration(Phase, time.Duration) {}

// Nop returns a sink that discards everything. Substituting it for any
// other sink changes no engine behavior.
func Nop() Sink {
	return nopSink{}
}

type sinkTimer struct {
	sink  Sink
	phase Phase
	start time.Time
}

func (t sinkTimer) Stop() {
	t.sink.RecordDuration(t.phase, time.Since(t.start))
}

// StartTimer implements the common pattern of building StartTimer from
// RecordDuration. Sinks that only aggregate durations can embed it.
func startTimer(s Sink, phase Phase) Timer {
	return sinkTimer{sink: s, phase: phase, start: time.Now()}
}

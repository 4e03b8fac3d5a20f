package telemetry

import (
	"time"

	"github.com/gogpu/framecore"
)

// LogSink aggregates phase durations and logs a summary line per phase
// at a configurable interval, keeping per-frame logging off the hot
// path. Zero-count phases are skipped.
type LogSink struct {
	interval time.Duration
	lastLog  time.Time

	count [phaseCount]int
	total [phaseCount]time.Duration
	max   [phaseCount]time.Duration
}

// NewLogSink creates a logging sink. A non-positive interval defaults
// to one second.
func NewLogSink(interval time.Duration) *LogSink {
	if interval <= 0 {
		interval = time.Second
	}
	return &LogSink{
		interval: interval,
		lastLog:  time.Now(),
	}
}

// StartTimer begins timing a phase.
func (s *LogSink) StartTimer(phase Phase) Timer {
	return startTimer(s, phase)
}

// RecordDuration accumulates a phase duration and emits the periodic
// summary when the interval has elapsed.
func (s *LogSink) RecordDuration(phase Phase, d time.Duration) {
	if phase >= phaseCount {
		return
	}
	s.count[phase]++
	s.total[phase] += d
	if d > s.max[phase] {
		s.max[phase] = d
	}

	if time.Since(s.lastLog) >= s.interval {
		s.flush()
	}
}

// Flush logs any pending aggregates immediately and resets them.
func (s *LogSink) Flush() {
	s.flush()
}

func (s *LogSink) flush() {
	logger := framecore.Logger()
	for p := Phase(0); p < phaseCount; p++ {
		if s.count[p] == 0 {
			continue
		}
		avg := s.total[p] / time.Duration(s.count[p])
		logger.Info("telemetry phase summary",
			"phase", p.String(),
			"samples", s.count[p],
			"avg", avg,
			"max", s.max[p],
		)
		s.count[p] = 0
		s.total[p] = 0
		s.max[p] = 0
	}
	s.lastLog = time.Now()
}

package sched

import "time"

// TimeSource supplies the scheduler's notion of time: a monotonic
// microsecond timestamp and a sleep primitive. The run loop calls it but
// never defines it, so tests and embedded targets can substitute their own.
type TimeSource interface {
	// Now returns a monotonic timestamp in microseconds.
	Now() uint64
	// Sleep blocks for the given duration in the given unit.
	Sleep(d uint64, unit Unit)
}

// DefaultSleepAccuracyUS is the largest microsecond request the sleep
// primitive is trusted to honor at microsecond granularity. Longer requests
// fall back to millisecond granularity, mirroring hardware delay timers
// that are only accurate up to this bound.
const DefaultSleepAccuracyUS = 16383

type systemTimeSource struct {
	base       time.Time
	accuracyUS uint64
}

// NewSystemTimeSource returns a TimeSource over the runtime clock. Requests
// in microseconds above accuracyUS are slept at millisecond granularity;
// accuracyUS values below 1 use DefaultSleepAccuracyUS.
func NewSystemTimeSource(accuracyUS uint64) TimeSource {
	if accuracyUS < 1 {
		accuracyUS = DefaultSleepAccuracyUS
	}
	return &systemTimeSource{base: time.Now(), accuracyUS: accuracyUS}
}

func (s *systemTimeSource) Now() uint64 {
	return uint64(time.Since(s.base).Microseconds())
}

func (s *systemTimeSource) Sleep(d uint64, unit Unit) {
	time.Sleep(sleepFor(d, unit, s.accuracyUS))
}

// sleepFor maps a request onto a real duration, applying the accuracy
// correction: microsecond requests above the threshold are truncated to
// whole milliseconds before sleeping.
func sleepFor(d uint64, unit Unit, accuracyUS uint64) time.Duration {
	if unit == Microseconds && d > accuracyUS {
		return time.Duration(d/1000) * time.Millisecond
	}
	if unit == Microseconds {
		return time.Duration(d) * time.Microsecond
	}
	return time.Duration(d) * time.Millisecond
}

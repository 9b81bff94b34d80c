// Package job provides ready-made runners for demos and tests.
package job

import "coopsched/internal/sched"

// Sequence returns a runner that requests the given delays in order, one per
// invocation, then reports done. An empty sequence finishes immediately.
func Sequence(delaysUS ...uint64) sched.HandleFunc {
	i := 0
	return func(step, id uint64) uint64 {
		if i >= len(delaysUS) {
			return 0
		}
		d := delaysUS[i]
		i++
		return d
	}
}

// NTimes returns a runner that asks for the same delay until it has been
// invoked n times, using the step counter the scheduler maintains.
func NTimes(delayUS uint64, n uint64) sched.HandleFunc {
	return func(step, id uint64) uint64 {
		if step >= n {
			return 0
		}
		return delayUS
	}
}

// Fixed returns a runner that always asks for the same delay. It never
// finishes, so a scheduler holding it never drains on its own; the owner
// has to remove it between runs.
func Fixed(delayUS uint64) sched.HandleFunc {
	return func(step, id uint64) uint64 {
		return delayUS
	}
}

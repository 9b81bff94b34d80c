package sched

import "reflect"

// Unit selects the time unit at the API boundary. Delays are always stored
// in microseconds internally; millisecond values are converted on the way
// in and out.
type Unit int

const (
	Microseconds Unit = iota
	Milliseconds
)

// Runner is the unit of work driven by the scheduler. Invoke receives the
// task's current step and id and returns the number of microseconds to wait
// before the next invocation; returning 0 marks the task as finished.
type Runner interface {
	Invoke(step, id uint64) uint64
}

// HandleFunc adapts an ordinary function to the Runner interface.
type HandleFunc func(step, id uint64) uint64

// Invoke calls the wrapped function.
func (f HandleFunc) Invoke(step, id uint64) uint64 { return f(step, id) }

// Task represents one schedulable task unit: a runner plus scheduling
// metadata. The zero Task is inert (nil runner) and is refused by the store.
type Task struct {
	runner  Runner
	delayUS uint64
	step    uint64 // number of successful invocations, starts at 1
	id      uint64 // caller-assigned, opaque to the scheduler
}

// NewTask creates a task around the given runner with step 1 and id 0.
func NewTask(r Runner) Task {
	return Task{runner: r, step: 1}
}

// NewTaskWithID creates a task with a caller-assigned identity. The scheduler
// never interprets the id, it only passes it through to the runner.
func NewTaskWithID(r Runner, id uint64) Task {
	return Task{runner: r, step: 1, id: id}
}

// Delay returns the remaining delay in the requested unit.
func (t *Task) Delay(unit Unit) uint64 {
	if unit == Milliseconds {
		return t.delayUS / 1000
	}
	return t.delayUS
}

// SetDelay stores the delay, converting milliseconds at the boundary.
func (t *Task) SetDelay(d uint64, unit Unit) {
	if unit == Milliseconds {
		t.delayUS = d * 1000
		return
	}
	t.delayUS = d
}

// Step returns the task's step counter.
func (t *Task) Step() uint64 { return t.step }

// SetStep overwrites the task's step counter.
func (t *Task) SetStep(step uint64) { t.step = step }

// ID returns the caller-assigned identity.
func (t *Task) ID() uint64 { return t.id }

// SetID overwrites the caller-assigned identity.
func (t *Task) SetID(id uint64) { t.id = id }

// Invoke calls the runner with the given step and id and returns its
// requested delay unmodified. Must not be called on an inert task.
func (t *Task) Invoke(step, id uint64) uint64 {
	return t.runner.Invoke(step, id)
}

// Equal reports whether two tasks agree on runner, delay, step and id.
func (t *Task) Equal(other *Task) bool {
	return sameRunner(t.runner, other.runner) &&
		t.delayUS == other.delayUS &&
		t.step == other.step &&
		t.id == other.id
}

// Swap exchanges all four fields with the other task.
func (t *Task) Swap(other *Task) {
	t.runner, other.runner = other.runner, t.runner
	t.delayUS, other.delayUS = other.delayUS, t.delayUS
	t.step, other.step = other.step, t.step
	t.id, other.id = other.id, t.id
}

// sameRunner compares runner identity. Function values are not comparable
// with ==, so HandleFunc (and any func-backed runner) is compared by code
// pointer instead.
func sameRunner(a, b Runner) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	va, vb := reflect.ValueOf(a), reflect.ValueOf(b)
	if va.Kind() != vb.Kind() {
		return false
	}
	if va.Kind() == reflect.Func {
		return va.Pointer() == vb.Pointer()
	}
	return a == b
}

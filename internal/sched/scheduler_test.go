package sched

import (
	"fmt"
	"testing"
)

// fakeTimeSource is a deterministic clock: time only advances when the
// scheduler sleeps, and every sleep is recorded.
type fakeTimeSource struct {
	nowUS  uint64
	sleeps []uint64
}

func (f *fakeTimeSource) Now() uint64 { return f.nowUS }

func (f *fakeTimeSource) Sleep(d uint64, unit Unit) {
	if unit == Milliseconds {
		d *= 1000
	}
	f.sleeps = append(f.sleeps, d)
	f.nowUS += d
}

// sequenceRunner yields the given delays one per invocation, then 0, and
// records each invocation as "<name><step>".
func sequenceRunner(name string, trace *[]string, delaysUS ...uint64) HandleFunc {
	i := 0
	return func(step, id uint64) uint64 {
		*trace = append(*trace, fmt.Sprintf("%s%d", name, step))
		if i >= len(delaysUS) {
			return 0
		}
		d := delaysUS[i]
		i++
		return d
	}
}

func TestScheduler_RunUntilComplete(t *testing.T) {
	clock := &fakeTimeSource{}
	s := NewWithClock(Config{MaxTasks: 32}, clock)

	var trace []string
	if err := s.Add(NewTaskWithID(sequenceRunner("A", &trace, 100000, 50000), 1)); err != nil {
		t.Fatal(err)
	}
	if err := s.Add(NewTaskWithID(sequenceRunner("B", &trace, 30000), 2)); err != nil {
		t.Fatal(err)
	}

	s.RunUntilComplete()

	if s.Size() != 0 {
		t.Errorf("Size() = %d after run, want 0", s.Size())
	}

	// B's remaining delay is smaller at every decision point after the first
	// invocations, so its second step lands before A's second step.
	want := []string{"A1", "B1", "B2", "A2", "A3"}
	if len(trace) != len(want) {
		t.Fatalf("invocation trace = %v, want %v", trace, want)
	}
	for i := range want {
		if trace[i] != want[i] {
			t.Fatalf("invocation trace = %v, want %v", trace, want)
		}
	}

	wantSleeps := []uint64{30000, 70000, 50000}
	if len(clock.sleeps) != len(wantSleeps) {
		t.Fatalf("sleeps = %v, want %v", clock.sleeps, wantSleeps)
	}
	for i := range wantSleeps {
		if clock.sleeps[i] != wantSleeps[i] {
			t.Fatalf("sleeps = %v, want %v", clock.sleeps, wantSleeps)
		}
	}
}

func TestScheduler_EmptyStoreReturnsImmediately(t *testing.T) {
	clock := &fakeTimeSource{}
	s := NewWithClock(Config{MaxTasks: 32}, clock)

	s.RunUntilComplete()

	if len(clock.sleeps) != 0 {
		t.Errorf("sleep primitive called %d times on empty store, want 0", len(clock.sleeps))
	}
}

func TestScheduler_OverdueTaskSkipsSleep(t *testing.T) {
	clock := &fakeTimeSource{}
	s := NewWithClock(Config{MaxTasks: 32}, clock)

	// The first runner burns 5000us of clock while the second task only
	// asked for 1000us, so the loop must continue without sleeping and
	// charge the elapsed time to every pending task.
	var order []string
	slow := HandleFunc(func(step, id uint64) uint64 {
		order = append(order, "slow")
		clock.nowUS += 5000
		if step >= 2 {
			return 0
		}
		return 8000
	})
	quick := HandleFunc(func(step, id uint64) uint64 {
		order = append(order, "quick")
		return 0
	})

	s.Add(NewTaskWithID(slow, 1))
	q := NewTaskWithID(quick, 2)
	q.SetDelay(1000, Microseconds)
	s.Add(q)

	s.iterate() // invokes slow; quick is overdue afterwards, no sleep
	if len(clock.sleeps) != 0 {
		t.Fatalf("sleeps = %v, want none while a task is overdue", clock.sleeps)
	}
	head := s.Get(0)
	if head.ID() != 2 {
		t.Fatalf("head id = %d, want the overdue task (2)", head.ID())
	}
	// slow's 8000us request was charged the 5000us the invocation spent
	next := s.Get(1)
	if got := next.Delay(Microseconds); got != 3000 {
		t.Errorf("remaining delay = %d, want 3000", got)
	}

	s.iterate() // quick runs and finishes
	if len(order) != 2 || order[1] != "quick" {
		t.Fatalf("order = %v, want slow then quick", order)
	}
}

func TestScheduler_FixedDelayTaskIsNeverRemoved(t *testing.T) {
	clock := &fakeTimeSource{}
	s := NewWithClock(Config{MaxTasks: 32}, clock)

	forever := HandleFunc(func(step, id uint64) uint64 { return 42 })
	s.Add(NewTaskWithID(forever, 1))

	for i := 0; i < 50; i++ {
		s.iterate()
	}

	if s.Size() != 1 {
		t.Fatalf("Size() = %d, want 1: a runner that never returns 0 stays queued", s.Size())
	}
	remaining := s.Get(0)
	if got := remaining.Step(); got != 51 {
		t.Errorf("step = %d after 50 iterations, want 51", got)
	}
}

func TestScheduler_EventsReachObservers(t *testing.T) {
	clock := &fakeTimeSource{}
	s := NewWithClock(Config{MaxTasks: 32}, clock)

	var kinds []StatusKind
	var stamps []uint64
	s.AddObserver(observerFunc(func(ev StatusEvent) {
		kinds = append(kinds, ev.Kind)
		stamps = append(stamps, ev.NowUS)
	}))

	var trace []string
	s.Add(NewTaskWithID(sequenceRunner("X", &trace, 1000), 5))
	s.RunUntilComplete()

	want := []StatusKind{
		StatusInvoke, StatusRequeue, StatusSleep,
		StatusInvoke, StatusFinish,
		StatusIdle,
	}
	if len(kinds) != len(want) {
		t.Fatalf("event kinds = %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("event kinds = %v, want %v", kinds, want)
		}
	}

	// event timestamps come from the injected TimeSource, so the only
	// advance is the 1000us sleep before the third event
	wantStamps := []uint64{0, 0, 1000, 1000, 1000, 1000}
	for i := range wantStamps {
		if stamps[i] != wantStamps[i] {
			t.Fatalf("event NowUS stamps = %v, want %v", stamps, wantStamps)
		}
	}
}

// observerFunc adapts a function to the Observer interface for tests.
type observerFunc func(StatusEvent)

func (f observerFunc) Observe(ev StatusEvent) { f(ev) }

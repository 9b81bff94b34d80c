package sched

import "time"

// Scheduler drives a cooperative run loop over a single TaskStore: it always
// invokes the task with the smallest remaining delay, reorders the store,
// and offsets every pending delay by the wall time that passed. Execution is
// strictly single-threaded; the only suspension point is the sleep between
// invocations, never inside a task.
type Scheduler struct {
	store     *TaskStore
	clock     TimeSource
	observers []Observer
}

// New creates a scheduler backed by the system time source.
func New(cfg Config) *Scheduler {
	return NewWithClock(cfg, NewSystemTimeSource(cfg.SleepAccuracyUS))
}

// NewWithClock creates a scheduler with a caller-supplied time source.
func NewWithClock(cfg Config, clock TimeSource) *Scheduler {
	return &Scheduler{
		store: NewTaskStore(cfg.MaxTasks),
		clock: clock,
	}
}

// AddObserver registers an observer for status events. Observers are called
// synchronously from the run loop and must not mutate the scheduler.
func (s *Scheduler) AddObserver(o Observer) {
	s.observers = append(s.observers, o)
}

// Add enqueues a task. See TaskStore.Add for the error contract; callers
// that keep the original silent-drop behavior can ignore the result.
func (s *Scheduler) Add(t Task) error { return s.store.Add(t) }

// Remove drops the task at the given index between runs.
func (s *Scheduler) Remove(index int) error { return s.store.RemoveAt(index) }

// Get returns the task at the given index (see TaskStore.Get).
func (s *Scheduler) Get(index int) Task { return s.store.Get(index) }

// All returns a copy of the pending tasks in store order.
func (s *Scheduler) All() []Task { return s.store.All() }

// Size returns the number of pending tasks.
func (s *Scheduler) Size() int { return s.store.Size() }

// MaxSize returns the store's current allocated capacity.
func (s *Scheduler) MaxSize() int { return s.store.MaxSize() }

// RunUntilComplete drains the store: it repeatedly invokes the task with the
// smallest remaining delay until every task has reported done. A task whose
// runner never returns 0 keeps the loop alive forever; that discipline is
// the caller's contract, the scheduler cannot interrupt a running task.
// On an empty store it returns immediately without touching the time source.
func (s *Scheduler) RunUntilComplete() {
	for s.store.Size() > 0 {
		s.iterate()
	}
	s.emit(StatusEvent{Time: time.Now(), Kind: StatusIdle})
}

// iterate performs one scheduling step: invoke the head task, requeue or
// remove it, re-sort, then reconcile every pending delay with elapsed wall
// time, sleeping only when the next task is not already due.
func (s *Scheduler) iterate() {
	begin := s.clock.Now()

	head := s.store.at(0)
	step, id := head.Step(), head.ID()
	ret := head.Invoke(step, id)
	s.emit(StatusEvent{
		Time:    time.Now(),
		Kind:    StatusInvoke,
		TaskID:  id,
		Step:    step,
		DelayUS: ret,
		Pending: s.store.Size(),
	})

	if ret > 0 {
		head.SetDelay(ret, Microseconds)
		head.SetStep(step + 1)
		s.emit(StatusEvent{
			Time:    time.Now(),
			Kind:    StatusRequeue,
			TaskID:  id,
			Step:    step + 1,
			DelayUS: ret,
			Pending: s.store.Size(),
		})
	} else {
		s.store.RemoveAt(0)
		s.emit(StatusEvent{
			Time:    time.Now(),
			Kind:    StatusFinish,
			TaskID:  id,
			Step:    step,
			Pending: s.store.Size(),
		})
	}
	s.store.Sort()

	if s.store.Size() == 0 {
		return
	}

	elapsed := s.clock.Now() - begin
	next := s.store.at(0).Delay(Microseconds)
	if elapsed >= next {
		// The nearest task is already due or overdue; charge the elapsed
		// time to everyone and go straight to the next invocation.
		s.store.OffsetDelayBy(elapsed)
		s.emit(StatusEvent{
			Time:    time.Now(),
			Kind:    StatusOffset,
			TaskID:  s.store.at(0).ID(),
			DelayUS: elapsed,
			Pending: s.store.Size(),
		})
		return
	}

	wait := next - elapsed
	s.clock.Sleep(wait, Microseconds)
	s.store.OffsetDelayBy(wait)
	s.emit(StatusEvent{
		Time:    time.Now(),
		Kind:    StatusSleep,
		TaskID:  s.store.at(0).ID(),
		DelayUS: wait,
		Pending: s.store.Size(),
	})
}

func (s *Scheduler) emit(ev StatusEvent) {
	ev.NowUS = s.clock.Now()
	for _, o := range s.observers {
		o.Observe(ev)
	}
}

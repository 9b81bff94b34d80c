package sched

// TaskStore is an owning, contiguous collection of tasks ordered by
// remaining delay. Capacity starts at 1 and is managed manually: it doubles
// when an add would overflow it and halves (never below 1) when occupancy
// drops under half of capacity. A TaskStore is owned by exactly one
// Scheduler and must not be mutated while RunUntilComplete is running.
type TaskStore struct {
	tasks    []Task // len(tasks) is the current capacity
	count    int    // occupied prefix, tasks[0:count]
	maxTasks int    // hard ceiling, adds beyond it are refused
}

// NewTaskStore creates an empty store with the given hard ceiling.
// Ceilings below 1 are clamped to 1.
func NewTaskStore(maxTasks int) *TaskStore {
	if maxTasks < 1 {
		maxTasks = 1
	}
	return &TaskStore{
		tasks:    make([]Task, 1),
		count:    0,
		maxTasks: maxTasks,
	}
}

// Add appends the task at the end of the occupied prefix, growing capacity
// if needed. It returns ErrStoreFull once the hard ceiling is reached and
// ErrNilRunner for an inert task; in both cases the store is unchanged.
func (st *TaskStore) Add(t Task) error {
	if t.runner == nil {
		return ErrNilRunner
	}
	if st.count >= st.maxTasks {
		return ErrStoreFull
	}
	if st.count == len(st.tasks) {
		st.realloc(len(st.tasks) * 2)
	}
	st.tasks[st.count] = t
	st.count++
	return nil
}

// RemoveAt drops the task at index by exchanging it with the last occupied
// slot, clearing the dropped slot, and re-sorting. Capacity shrinks to half
// once occupancy falls under half of capacity. An index outside [0, count)
// returns ErrIndexOutOfRange and leaves the store unchanged.
func (st *TaskStore) RemoveAt(index int) error {
	if index < 0 || index >= st.count {
		return ErrIndexOutOfRange
	}
	last := st.count - 1
	st.tasks[index].Swap(&st.tasks[last])
	st.tasks[last] = Task{} // release the runner of the dropped slot
	st.count--
	st.Sort()

	if half := len(st.tasks) / 2; st.count < half {
		st.realloc(half)
	}
	return nil
}

// Get returns the task at index. Out-of-range indices degrade to the last
// occupied task rather than failing; on an empty store the zero Task is
// returned. This mirrors the documented behavior of the original design.
func (st *TaskStore) Get(index int) Task {
	if st.count == 0 {
		return Task{}
	}
	if index < 0 || index >= st.count {
		return st.tasks[st.count-1]
	}
	return st.tasks[index]
}

// All returns a copy of the occupied prefix.
func (st *TaskStore) All() []Task {
	out := make([]Task, st.count)
	copy(out, st.tasks[:st.count])
	return out
}

// Size returns the number of occupied slots.
func (st *TaskStore) Size() int { return st.count }

// MaxSize returns the current allocated capacity.
func (st *TaskStore) MaxSize() int { return len(st.tasks) }

// Sort orders the occupied prefix ascending by delay using selection sort.
// The comparison is strict less-than, so the first occurrence wins ties and
// equal-delay tasks keep their scan order. count is bounded by the hard
// ceiling, so the quadratic cost is small and deterministic.
func (st *TaskStore) Sort() {
	for cur := 0; cur < st.count-1; cur++ {
		smallest := cur
		for i := cur + 1; i < st.count; i++ {
			if st.tasks[i].delayUS < st.tasks[smallest].delayUS {
				smallest = i
			}
		}
		if smallest != cur {
			st.tasks[cur].Swap(&st.tasks[smallest])
		}
	}
}

// OffsetDelayBy subtracts the given microseconds from every occupied task's
// remaining delay, saturating at 0.
func (st *TaskStore) OffsetDelayBy(offsetUS uint64) {
	for i := 0; i < st.count; i++ {
		if st.tasks[i].delayUS >= offsetUS {
			st.tasks[i].delayUS -= offsetUS
		} else {
			st.tasks[i].delayUS = 0
		}
	}
}

// at exposes a slot for in-place mutation by the run loop.
func (st *TaskStore) at(index int) *Task { return &st.tasks[index] }

// realloc moves the occupied prefix into a fresh backing array of the given
// capacity, never below 1.
func (st *TaskStore) realloc(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	next := make([]Task, capacity)
	copy(next, st.tasks[:st.count])
	st.tasks = next
}

package sched

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
)

// TaskTotals is a per-task accounting snapshot.
type TaskTotals struct {
	TaskID      uint64
	Invocations int64 // number of times the runner was called
	Finished    bool  // runner has returned 0
}

// Recorder is an Observer that accumulates per-task invocation totals and
// optionally appends one CSV row per lifecycle event. Totals are kept in a
// red-black tree keyed by task id so snapshots come out in id order.
type Recorder struct {
	totals *redblacktree.Tree // uint64 task id -> *TaskTotals

	csvFile   *os.File
	csvWriter *csv.Writer
}

// NewRecorder creates a recorder with CSV logging disabled.
func NewRecorder() *Recorder {
	return &Recorder{
		totals: redblacktree.NewWith(cmpTaskID),
	}
}

// EnableCSVLogging opens the given file path for CSV logging of events.
// Must be called before the scheduler runs.
func (r *Recorder) EnableCSVLogging(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)

	// write header
	w.Write([]string{"timestamp", "event", "task_id", "step", "delay_us", "pending"})
	w.Flush()
	r.csvFile = f
	r.csvWriter = w
	return nil
}

// Observe implements Observer.
func (r *Recorder) Observe(ev StatusEvent) {
	switch ev.Kind {
	case StatusInvoke:
		r.lookup(ev.TaskID).Invocations++
	case StatusFinish:
		r.lookup(ev.TaskID).Finished = true
	case StatusSleep, StatusOffset:
		// time bookkeeping, not a task lifecycle change; keep the CSV small
		return
	}

	if r.csvWriter != nil {
		r.csvWriter.Write([]string{
			ev.Time.Format(time.RFC3339Nano),
			ev.Kind.String(),
			strconv.FormatUint(ev.TaskID, 10),
			strconv.FormatUint(ev.Step, 10),
			strconv.FormatUint(ev.DelayUS, 10),
			strconv.Itoa(ev.Pending),
		})
		r.csvWriter.Flush()
	}
}

// Totals returns a snapshot of per-task accounting, ordered by task id.
func (r *Recorder) Totals() []TaskTotals {
	out := make([]TaskTotals, 0, r.totals.Size())
	it := r.totals.Iterator()
	for it.Next() {
		out = append(out, *it.Value().(*TaskTotals))
	}
	return out
}

// Close flushes and closes the CSV log, if one was enabled.
func (r *Recorder) Close() error {
	if r.csvFile == nil {
		return nil
	}
	r.csvWriter.Flush()
	err := r.csvFile.Close()
	r.csvFile = nil
	r.csvWriter = nil
	return err
}

func (r *Recorder) lookup(id uint64) *TaskTotals {
	if v, ok := r.totals.Get(id); ok {
		return v.(*TaskTotals)
	}
	t := &TaskTotals{TaskID: id}
	r.totals.Put(id, t)
	return t
}

// cmpTaskID orders the totals tree by task id.
func cmpTaskID(a, b any) int {
	ka, kb := a.(uint64), b.(uint64)
	switch {
	case ka < kb:
		return -1
	case ka > kb:
		return 1
	default:
		return 0
	}
}

package sched

import "time"

// StatusKind represents the type of scheduler event.
type StatusKind int

const (
	StatusIdle StatusKind = iota
	StatusInvoke
	StatusRequeue
	StatusFinish
	StatusSleep
	StatusOffset
)

// StatusEvent is emitted by the run loop on every key action.
type StatusEvent struct {
	Time    time.Time  // wall clock, for logs only; scheduling never reads it
	NowUS   uint64     // the TimeSource reading when the event was emitted
	Kind    StatusKind
	TaskID  uint64
	Step    uint64
	DelayUS uint64     // requested delay, sleep length or offset, per Kind
	Pending int        // store occupancy after the action
}

// Observer receives status events synchronously from the run loop.
type Observer interface {
	Observe(ev StatusEvent)
}

func (sk StatusKind) String() string {
	switch sk {
	case StatusIdle:
		return "Idle"
	case StatusInvoke:
		return "Invoke"
	case StatusRequeue:
		return "Requeue"
	case StatusFinish:
		return "Finish"
	case StatusSleep:
		return "Sleep"
	case StatusOffset:
		return "Offset"
	default:
		return "Unknown"
	}
}

package sched

import "errors"

// The original embedded contract had no error channel: a full store dropped
// the add and a bad index was ignored. These sentinels give richer hosts
// visibility; ignoring them reproduces the original behavior exactly.
var (
	// ErrStoreFull is returned by Add once the hard ceiling is reached.
	ErrStoreFull = errors.New("sched: task store full")

	// ErrNilRunner is returned by Add for an inert task (no runner).
	ErrNilRunner = errors.New("sched: task has no runner")

	// ErrIndexOutOfRange is returned by Remove for an index outside [0, size).
	ErrIndexOutOfRange = errors.New("sched: index out of range")
)

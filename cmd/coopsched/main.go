package main

import (
	"fmt"

	"coopsched/internal/job"
	"coopsched/internal/sched"
)

func main() {
	// Read the configuration
	cfg := sched.Load("config.yml")
	fmt.Printf("Loaded config: %+v\n", cfg)

	s := sched.New(cfg)

	rec := sched.NewRecorder()
	if cfg.TraceCSV != "" {
		if err := rec.EnableCSVLogging(cfg.TraceCSV); err != nil {
			fmt.Printf("CSV logging disabled: %v\n", err)
		}
	}
	defer rec.Close()
	s.AddObserver(rec)

	// A slow three-step job and a quick two-step job; the run loop always
	// picks whichever is nearest to its requested re-invocation time.
	s.Add(sched.NewTaskWithID(job.Sequence(100000, 50000, 0), 1))
	s.Add(sched.NewTaskWithID(job.Sequence(30000, 0), 2))
	s.Add(sched.NewTaskWithID(job.NTimes(20000, 4), 3))

	s.RunUntilComplete()

	for _, t := range rec.Totals() {
		fmt.Printf("task %d: %d invocations, finished=%v\n", t.TaskID, t.Invocations, t.Finished)
	}
}

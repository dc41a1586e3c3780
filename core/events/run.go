package events

import "time"

// RunEvent is published when the partition search terminates. Status is one
// of "matched", "infeasible" or "attempt_limit". PartitionIndex is the
// winning partition, or -1 when none was valid.
type RunEvent struct {
	RunID          string
	Participants   int
	Status         string
	PartitionIndex int
	Total          int
	Pairs          int
	Unmatched      []int
	Duration       time.Duration
}

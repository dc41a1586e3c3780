package metrics

import "time"

// RunRecord summarises one matching run. PartitionIndex is -1 when no
// partition produced a valid matching.
type RunRecord struct {
	RunID          string
	Participants   int
	Status         string
	PartitionIndex int
	Total          int
	Pairs          int
	Unmatched      int
	Duration       time.Duration
	Time           time.Time
}

// MetricsSink records matching runs for observability purposes.
type MetricsSink interface {
	RecordRun(rec RunRecord) error
}

// AttemptRecord describes the evaluation of one role partition.
type AttemptRecord struct {
	RunID    string
	Index    int
	Valid    bool
	Reason   string
	Duration time.Duration
	Time     time.Time
}

// AttemptRecorder is implemented by sinks able to record partition attempts.
type AttemptRecorder interface {
	RecordAttempt(rec AttemptRecord) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordRun(RunRecord) error         { return nil }
func (NopSink) RecordAttempt(AttemptRecord) error { return nil }

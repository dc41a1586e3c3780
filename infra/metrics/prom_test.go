package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/inakineitor/algo-comp-2023/core/metrics"
)

func TestPromSink_RecordRun(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("new sink: %v", err)
	}
	_ = sink.RecordRun(coremetrics.RunRecord{Status: "matched", Participants: 6, Pairs: 3, PartitionIndex: 4, Duration: time.Millisecond})
	if got := testutil.ToFloat64(sink.partition); got != 4 {
		t.Fatalf("partition gauge = %v", got)
	}
	_ = sink.RecordRun(coremetrics.RunRecord{Status: "infeasible", Participants: 4, PartitionIndex: -1})
	_ = sink.RecordAttempt(coremetrics.AttemptRecord{Valid: false})
	_ = sink.RecordAttempt(coremetrics.AttemptRecord{Valid: true})
	_ = sink.RecordAttempt(coremetrics.AttemptRecord{Valid: false})

	if got := testutil.ToFloat64(sink.runs.WithLabelValues("matched")); got != 1 {
		t.Fatalf("matched runs = %v", got)
	}
	if got := testutil.ToFloat64(sink.attempts.WithLabelValues("false")); got != 2 {
		t.Fatalf("invalid attempts = %v", got)
	}
	if got := testutil.ToFloat64(sink.participants); got != 4 {
		t.Fatalf("participants gauge = %v", got)
	}
	if got := testutil.ToFloat64(sink.partition); got != -1 {
		t.Fatalf("partition gauge after infeasible run = %v", got)
	}
	expected := `
# HELP matching_last_run_pairs Number of pairs produced by the last run
# TYPE matching_last_run_pairs gauge
matching_last_run_pairs 0
`
	if err := testutil.GatherAndCompare(reg, strings.NewReader(expected), "matching_last_run_pairs"); err != nil {
		t.Fatalf("gather: %v", err)
	}
}

func TestPromSink_ReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	a, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("first: %v", err)
	}
	b, err := NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("second: %v", err)
	}
	_ = a.RecordRun(coremetrics.RunRecord{Status: "matched"})
	_ = b.RecordRun(coremetrics.RunRecord{Status: "matched"})
	if got := testutil.ToFloat64(b.runs.WithLabelValues("matched")); got != 2 {
		t.Fatalf("expected shared counter, got %v", got)
	}
}

package metrics

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/inakineitor/algo-comp-2023/core/events"
	coremetrics "github.com/inakineitor/algo-comp-2023/core/metrics"
	"github.com/inakineitor/algo-comp-2023/internal/eventbus"
)

type memorySink struct {
	mu       sync.Mutex
	runs     []coremetrics.RunRecord
	attempts []coremetrics.AttemptRecord
}

func (m *memorySink) RecordRun(r coremetrics.RunRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs = append(m.runs, r)
	return nil
}

func (m *memorySink) RecordAttempt(r coremetrics.AttemptRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.attempts = append(m.attempts, r)
	return nil
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.New()
	sink := &memorySink{}
	done := StartEventCollector(context.Background(), bus, sink)

	bus.Publish(events.AttemptEvent{RunID: "r", Index: 0, Valid: false, Reason: "x"})
	if err := bus.PublishWait(context.Background(), events.RunEvent{RunID: "r", Status: "matched", PartitionIndex: 3, Pairs: 2, Unmatched: []int{5}}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	bus.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("collector did not stop")
	}
	if len(sink.runs) != 1 || sink.runs[0].Unmatched != 1 || sink.runs[0].Pairs != 2 || sink.runs[0].PartitionIndex != 3 {
		t.Fatalf("unexpected runs %+v", sink.runs)
	}
	if len(sink.attempts) != 1 || sink.attempts[0].Reason != "x" {
		t.Fatalf("unexpected attempts %+v", sink.attempts)
	}
}

func TestStartEventCollector_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := StartEventCollector(ctx, eventbus.New(), coremetrics.NopSink{})
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("collector did not stop")
	}
	select {
	case <-StartEventCollector(ctx, nil, nil):
	default:
		t.Fatalf("nil bus should return a closed channel")
	}
}

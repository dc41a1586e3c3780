package metrics

import (
	"context"
	"time"

	"github.com/inakineitor/algo-comp-2023/core/events"
	coremetrics "github.com/inakineitor/algo-comp-2023/core/metrics"
	"github.com/inakineitor/algo-comp-2023/infra/logger"
	"github.com/inakineitor/algo-comp-2023/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// matching events. It stops when the context is canceled or the bus is
// closed; the returned channel is closed once it has stopped.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || sink == nil {
		close(done)
		return done
	}
	log := logger.New("metrics-collector")
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := collect(ev, sink); err != nil {
					log.Errorf("record %T: %v", ev, err)
				}
			}
		}
	}()
	return done
}

func collect(ev eventbus.Event, sink coremetrics.MetricsSink) error {
	switch e := ev.(type) {
	case events.AttemptEvent:
		if r, ok := sink.(coremetrics.AttemptRecorder); ok {
			return r.RecordAttempt(coremetrics.AttemptRecord{
				RunID:    e.RunID,
				Index:    e.Index,
				Valid:    e.Valid,
				Reason:   e.Reason,
				Duration: e.Duration,
				Time:     time.Now(),
			})
		}
	case events.RunEvent:
		return sink.RecordRun(coremetrics.RunRecord{
			RunID:          e.RunID,
			Participants:   e.Participants,
			Status:         e.Status,
			PartitionIndex: e.PartitionIndex,
			Total:          e.Total,
			Pairs:          e.Pairs,
			Unmatched:      len(e.Unmatched),
			Duration:       e.Duration,
			Time:           time.Now(),
		})
	}
	return nil
}

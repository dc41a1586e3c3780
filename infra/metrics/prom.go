package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/inakineitor/algo-comp-2023/core/metrics"
)

// PromSink records matching runs in Prometheus metrics.
type PromSink struct {
	runs         *prometheus.CounterVec
	attempts     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	pairs        prometheus.Gauge
	participants prometheus.Gauge
	partition    prometheus.Gauge
}

// NewPromSink registers matching metrics on the default Prometheus registerer.
// The /metrics endpoint is served separately by StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matching_runs_total",
		Help: "Total number of matching runs by outcome",
	}, []string{"status"})
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "matching_attempts_total",
		Help: "Total number of role partitions evaluated",
	}, []string{"valid"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "matching_run_duration_seconds",
		Help:    "Wall time of a matching run",
		Buckets: prometheus.DefBuckets,
	}, []string{"status"})
	pairs := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "matching_last_run_pairs",
		Help: "Number of pairs produced by the last run",
	})
	participants := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "matching_last_run_participants",
		Help: "Population size of the last run",
	})
	partition := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "matching_last_run_partition_index",
		Help: "Winning partition index of the last run, -1 when none was valid",
	})

	var err error
	if runs, err = register(reg, runs); err != nil {
		return nil, err
	}
	if attempts, err = register(reg, attempts); err != nil {
		return nil, err
	}
	if duration, err = register(reg, duration); err != nil {
		return nil, err
	}
	if pairs, err = register(reg, pairs); err != nil {
		return nil, err
	}
	if participants, err = register(reg, participants); err != nil {
		return nil, err
	}
	if partition, err = register(reg, partition); err != nil {
		return nil, err
	}
	return &PromSink{
		runs:         runs,
		attempts:     attempts,
		duration:     duration,
		pairs:        pairs,
		participants: participants,
		partition:    partition,
	}, nil
}

// register returns the already registered collector when c was registered before.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// RecordRun updates the run counters, duration histogram and gauges.
func (s *PromSink) RecordRun(rec coremetrics.RunRecord) error {
	s.runs.WithLabelValues(rec.Status).Inc()
	s.duration.WithLabelValues(rec.Status).Observe(rec.Duration.Seconds())
	s.pairs.Set(float64(rec.Pairs))
	s.participants.Set(float64(rec.Participants))
	s.partition.Set(float64(rec.PartitionIndex))
	return nil
}

// RecordAttempt counts an evaluated partition.
func (s *PromSink) RecordAttempt(rec coremetrics.AttemptRecord) error {
	s.attempts.WithLabelValues(strconv.FormatBool(rec.Valid)).Inc()
	return nil
}

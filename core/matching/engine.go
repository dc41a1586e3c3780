package matching

import (
	"context"
	"fmt"
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"

	"github.com/inakineitor/algo-comp-2023/core/events"
	"github.com/inakineitor/algo-comp-2023/core/logger"
	"github.com/inakineitor/algo-comp-2023/core/metrics"
	"github.com/inakineitor/algo-comp-2023/core/model"
	"github.com/inakineitor/algo-comp-2023/internal/eventbus"
)

// Engine searches role partitions for a valid stable matching. It holds no
// per-run state and is safe for concurrent use.
type Engine struct {
	cfg     Config
	rules   model.CompatibilityRules
	log     logger.Logger
	bus     eventbus.EventBus
	metrics metrics.MetricsSink
	now     func() time.Time
}

// Option customises an Engine.
type Option func(*Engine)

// WithLogger sets the logger used for run progress.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithEventBus publishes AttemptEvent and RunEvent values on bus.
func WithEventBus(bus eventbus.EventBus) Option {
	return func(e *Engine) { e.bus = bus }
}

// WithMetrics records runs, and attempts when supported, on sink.
func WithMetrics(sink metrics.MetricsSink) Option {
	return func(e *Engine) {
		if sink != nil {
			e.metrics = sink
		}
	}
}

// WithClock overrides the time source used for durations.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine validates cfg and returns an Engine.
func NewEngine(cfg Config, opts ...Option) (*Engine, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("matching: %w", err)
	}
	e := &Engine{
		cfg:     cfg,
		rules:   model.RulesFromStrings(cfg.Rules),
		log:     logger.Nop{},
		metrics: metrics.NopSink{},
		now:     time.Now,
	}
	for _, o := range opts {
		o(e)
	}
	return e, nil
}

// Rules returns the compatibility rule table of the engine.
func (e *Engine) Rules() model.CompatibilityRules { return e.rules }

// attempt is the outcome of one partition.
type attempt struct {
	partition Partition
	sanitized Sanitized
	match     Match
	valid     bool
	reason    string
}

type searchOutcome struct {
	winner   *attempt
	attempts int
	capped   bool
}

// Match runs the partition search. Invalid input is reported as an error
// before any partition is tried. A search that finds nothing is not an
// error: the returned Result carries StatusInfeasible or StatusAttemptLimit.
func (e *Engine) Match(ctx context.Context, in Input) (Result, error) {
	start := e.now()
	if err := in.validate(e.cfg.MaxParticipants); err != nil {
		return Result{}, err
	}
	compat, err := GenderCompatibility(in.Identities, in.Preferences, e.rules)
	if err != nil {
		return Result{}, err
	}
	n := in.Size()
	res := Result{RunID: uuid.NewString(), PartitionIndex: -1, Total: PartitionCount(n)}
	e.log.Infof("run %s: searching %d partitions of %d participants", res.RunID, res.Total, n)

	var out searchOutcome
	if e.cfg.Workers > 1 {
		out, err = e.searchParallel(ctx, res.RunID, in.Scores, compat, n)
	} else {
		out, err = e.searchSequential(ctx, res.RunID, in.Scores, compat, n)
	}
	if err != nil {
		return Result{}, err
	}

	res.Attempts = out.attempts
	switch {
	case out.winner != nil:
		fillResult(&res, out.winner)
	case out.capped:
		res.Status = StatusAttemptLimit
	default:
		res.Status = StatusInfeasible
	}
	res.Duration = e.now().Sub(start)
	e.finish(ctx, res, n)
	return res, nil
}

func (e *Engine) searchSequential(ctx context.Context, runID string, raw *mat.Dense, compat Mask, n int) (searchOutcome, error) {
	var out searchOutcome
	for idx, p := range Partitions(n) {
		if e.cfg.MaxAttempts > 0 && idx >= e.cfg.MaxAttempts {
			out.capped = true
			break
		}
		if err := ctx.Err(); err != nil {
			return out, err
		}
		a, err := e.run(runID, raw, compat, p)
		if err != nil {
			return out, err
		}
		out.attempts++
		if a.valid {
			out.winner = &a
			break
		}
	}
	return out, nil
}

// searchParallel feeds partitions in enumeration order to a worker pool.
// Once partition k is valid no partition above k is started, while every
// partition below k is still evaluated, so the lowest valid index wins
// exactly as in the sequential search.
func (e *Engine) searchParallel(ctx context.Context, runID string, raw *mat.Dense, compat Mask, n int) (searchOutcome, error) {
	var (
		out      searchOutcome
		best     atomic.Int64
		attempts atomic.Int64
		mu       sync.Mutex
	)
	best.Store(math.MaxInt64)
	jobs := make(chan Partition)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		defer close(jobs)
		for idx, p := range Partitions(n) {
			if e.cfg.MaxAttempts > 0 && idx >= e.cfg.MaxAttempts {
				out.capped = true
				return nil
			}
			if int64(idx) > best.Load() {
				return nil
			}
			select {
			case jobs <- p:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	for w := 0; w < e.cfg.Workers; w++ {
		g.Go(func() error {
			for p := range jobs {
				if err := gctx.Err(); err != nil {
					return err
				}
				if int64(p.Index) > best.Load() {
					continue
				}
				a, err := e.run(runID, raw, compat, p)
				if err != nil {
					return err
				}
				attempts.Add(1)
				if !a.valid {
					continue
				}
				mu.Lock()
				if out.winner == nil || a.partition.Index < out.winner.partition.Index {
					out.winner = &a
					best.Store(int64(a.partition.Index))
				}
				mu.Unlock()
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return searchOutcome{}, err
	}
	out.attempts = int(attempts.Load())
	if out.winner != nil {
		out.capped = false
	}
	return out, nil
}

// run evaluates one partition and reports it to observers.
func (e *Engine) run(runID string, raw *mat.Dense, compat Mask, p Partition) (attempt, error) {
	start := e.now()
	a, err := e.evaluate(raw, compat, p)
	if err != nil {
		return a, fmt.Errorf("partition %d: %w", p.Index, err)
	}
	e.observe(runID, a, e.now().Sub(start))
	return a, nil
}

// evaluate runs Sanitize, Rank, GaleShapley and validation for p.
func (e *Engine) evaluate(raw *mat.Dense, compat Mask, p Partition) (attempt, error) {
	s := Sanitize(raw, compat, p)
	pr := Rank(p.Proposers, p.Receivers, s)
	rr := Rank(p.Receivers, p.Proposers, s)
	m, err := GaleShapley(p.Proposers, p.Receivers, pr, rr)
	if err != nil {
		return attempt{}, err
	}
	a := attempt{partition: p, sanitized: s, match: m}
	a.reason = e.reject(p, m, s)
	a.valid = a.reason == ""
	if a.valid && e.cfg.VerifyStability {
		if err := VerifyStable(m, pr, rr); err != nil {
			return attempt{}, err
		}
	}
	return a, nil
}

// reject returns why m cannot be accepted, or "" when every matched pair is
// allowed and, unless zero scores are allowed, has a nonzero score.
func (e *Engine) reject(p Partition, m Match, s Sanitized) string {
	for _, prop := range p.Proposers {
		r := m[prop]
		if !s.Allowed(prop, r) {
			return fmt.Sprintf("pair (%d,%d) is forbidden", prop, r)
		}
		if !e.cfg.AllowZeroScores && s.Score(prop, r) == 0 {
			return fmt.Sprintf("pair (%d,%d) has zero score", prop, r)
		}
	}
	return ""
}

func (e *Engine) observe(runID string, a attempt, d time.Duration) {
	e.log.Debugw("partition evaluated", map[string]any{
		"run_id":    runID,
		"index":     a.partition.Index,
		"proposers": a.partition.Proposers,
		"valid":     a.valid,
		"reason":    a.reason,
	})
	if e.bus != nil {
		e.bus.Publish(events.AttemptEvent{
			RunID:     runID,
			Index:     a.partition.Index,
			Proposers: a.partition.Proposers,
			Valid:     a.valid,
			Reason:    a.reason,
			Duration:  d,
		})
	}
	if ar, ok := e.metrics.(metrics.AttemptRecorder); ok {
		if err := ar.RecordAttempt(metrics.AttemptRecord{
			RunID:    runID,
			Index:    a.partition.Index,
			Valid:    a.valid,
			Reason:   a.reason,
			Duration: d,
			Time:     e.now(),
		}); err != nil {
			e.log.Errorf("attempt metrics error: %v", err)
		}
	}
}

func (e *Engine) finish(ctx context.Context, res Result, n int) {
	switch res.Status {
	case StatusMatched:
		e.log.Infof("run %s: matched %d pairs at partition %d (%s)",
			res.RunID, len(res.Pairs), res.PartitionIndex, res.Duration)
		e.log.Debugf("run %s: %d of %d partitions evaluated", res.RunID, res.Attempts, res.Total)
	default:
		e.log.Warnf("run %s: %s after %d of %d partitions", res.RunID, res.Status, res.Attempts, res.Total)
	}
	if e.bus != nil {
		err := e.bus.PublishWait(ctx, events.RunEvent{
			RunID:          res.RunID,
			Participants:   n,
			Status:         res.Status.String(),
			PartitionIndex: res.PartitionIndex,
			Total:          res.Total,
			Pairs:          len(res.Pairs),
			Unmatched:      res.Unmatched,
			Duration:       res.Duration,
		})
		if err != nil {
			e.log.Warnf("run %s: run event not delivered: %v", res.RunID, err)
		}
	}
	if err := e.metrics.RecordRun(metrics.RunRecord{
		RunID:          res.RunID,
		Participants:   n,
		Status:         res.Status.String(),
		PartitionIndex: res.PartitionIndex,
		Total:          res.Total,
		Pairs:          len(res.Pairs),
		Unmatched:      len(res.Unmatched),
		Duration:       res.Duration,
		Time:           e.now(),
	}); err != nil {
		e.log.Errorf("run metrics error: %v", err)
	}
}

func fillResult(res *Result, a *attempt) {
	p := a.partition
	res.Status = StatusMatched
	res.PartitionIndex = p.Index
	res.Proposers = slices.Clone(p.Proposers)
	res.Receivers = slices.Clone(p.Receivers)
	res.Pairs = make([]Pair, 0, len(p.Proposers))
	taken := make(map[int]bool, len(p.Proposers))
	for _, prop := range p.Proposers {
		r := a.match[prop]
		taken[r] = true
		res.Pairs = append(res.Pairs, Pair{Proposer: prop, Receiver: r, Score: a.sanitized.Score(prop, r)})
	}
	res.Unmatched = []int{}
	for _, r := range p.Receivers {
		if !taken[r] {
			res.Unmatched = append(res.Unmatched, r)
		}
	}
}

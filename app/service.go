package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gonum.org/v1/gonum/mat"

	matchapi "github.com/inakineitor/algo-comp-2023/api/match"
	runsapi "github.com/inakineitor/algo-comp-2023/api/runs"
	"github.com/inakineitor/algo-comp-2023/config"
	"github.com/inakineitor/algo-comp-2023/core/dataset"
	"github.com/inakineitor/algo-comp-2023/core/matching"
	runlog "github.com/inakineitor/algo-comp-2023/core/matching/logging"
	coremetrics "github.com/inakineitor/algo-comp-2023/core/metrics"
	"github.com/inakineitor/algo-comp-2023/core/model"
	coremqtt "github.com/inakineitor/algo-comp-2023/core/mqtt"
	"github.com/inakineitor/algo-comp-2023/core/scoring"
	"github.com/inakineitor/algo-comp-2023/infra/logger"
	"github.com/inakineitor/algo-comp-2023/infra/metrics"
	"github.com/inakineitor/algo-comp-2023/infra/mqtt"
	"github.com/inakineitor/algo-comp-2023/internal/eventbus"
)

// busBuffer holds attempt events while the collector catches up.
const busBuffer = 1024

// Service wires the matching engine to scoring, metrics, the run log and
// the result publisher.
type Service struct {
	Engine *matching.Engine
	Scorer *scoring.Scorer

	store     runlog.RunStore
	publisher coremqtt.ResultPublisher
	sink      coremetrics.MetricsSink
	bus       *eventbus.Bus
	collected <-chan struct{}
	stop      context.CancelFunc
	log       logger.Logger
	now       func() time.Time

	promEnabled bool
	promAddr    string
	apiAddr     string
	apiToken    string
}

// Option customises a Service.
type Option func(*Service)

// WithStore replaces the configured run log.
func WithStore(s runlog.RunStore) Option { return func(svc *Service) { svc.store = s } }

// WithPublisher replaces the configured MQTT publisher.
func WithPublisher(p coremqtt.ResultPublisher) Option {
	return func(svc *Service) { svc.publisher = p }
}

// WithSink replaces the configured metrics sinks.
func WithSink(s coremetrics.MetricsSink) Option { return func(svc *Service) { svc.sink = s } }

// New creates a Service from the configuration.
func New(cfg *config.Config, opts ...Option) (*Service, error) {
	if err := logger.Configure(cfg.Logging.Logger()); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	svc := &Service{
		log:         logger.New("service"),
		now:         time.Now,
		promEnabled: cfg.Metrics.HasSink("prometheus"),
		promAddr:    cfg.Metrics.PrometheusAddr,
		apiAddr:     cfg.API.Addr,
		apiToken:    cfg.API.Token,
	}
	for _, o := range opts {
		o(svc)
	}

	if svc.sink == nil {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sink: %w", err)
		}
		svc.sink = sink
	}
	if svc.store == nil && cfg.Logging.RunLogEnabled() {
		store, err := runlog.Open(cfg.Logging.RunLog())
		if err != nil {
			return nil, fmt.Errorf("run log: %w", err)
		}
		svc.store = store
	}
	if svc.publisher == nil && cfg.MQTTEnabled() {
		pub, err := mqtt.NewPahoPublisher(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt publisher: %w", err)
		}
		svc.publisher = pub
	}

	svc.bus = eventbus.NewWithBuffer(busBuffer)
	engine, err := matching.NewEngine(cfg.Matching,
		matching.WithLogger(logger.New("engine")),
		matching.WithEventBus(svc.bus),
	)
	if err != nil {
		return nil, err
	}
	svc.Engine = engine
	scorer, err := scoring.NewScorer(cfg.Scoring, engine.Rules())
	if err != nil {
		return nil, fmt.Errorf("scoring: %w", err)
	}
	svc.Scorer = scorer

	ctx, cancel := context.WithCancel(context.Background())
	svc.stop = cancel
	svc.collected = metrics.StartEventCollector(ctx, svc.bus, svc.sink)
	return svc, nil
}

// Scores returns the document's precomputed matrix, or computes one.
func (s *Service) Scores(doc dataset.Document) (*mat.Dense, error) {
	if doc.Scores != nil {
		return matching.DenseFromRows(doc.Scores)
	}
	return s.Scorer.Matrix(doc.Participants)
}

// Match scores and matches the population, then records and publishes the
// result. Persistence and publishing failures are logged, not returned.
func (s *Service) Match(ctx context.Context, doc dataset.Document) (matching.Result, error) {
	scores, err := s.Scores(doc)
	if err != nil {
		return matching.Result{}, fmt.Errorf("scores: %w", err)
	}
	in := matching.Input{
		Scores:      scores,
		Identities:  model.Identities(doc.Participants),
		Preferences: model.Preferences(doc.Participants),
	}
	res, err := s.Engine.Match(ctx, in)
	if err != nil {
		return matching.Result{}, err
	}
	now := s.now()
	names := doc.Names()
	if s.store != nil {
		if err := s.store.Append(ctx, runlog.NewRunRecord(res, len(doc.Participants), names, now)); err != nil {
			s.log.Errorf("run log append: %v", err)
		}
	}
	if s.publisher != nil {
		if err := s.publisher.PublishResult(ctx, coremqtt.NewResultMessage(res, names, now)); err != nil {
			s.log.Errorf("publish run %s: %v", res.RunID, err)
		}
	}
	return res, nil
}

// Runs queries the run log.
func (s *Service) Runs(ctx context.Context, q runlog.RunQuery) ([]runlog.RunRecord, error) {
	if s.store == nil {
		return nil, fmt.Errorf("run log disabled")
	}
	return s.store.Query(ctx, q)
}

// ServeMetrics exposes /metrics until ctx is canceled. It returns at once
// when no prometheus sink is configured.
func (s *Service) ServeMetrics(ctx context.Context) error {
	if !s.promEnabled {
		return nil
	}
	return metrics.StartPromServer(ctx, s.promAddr)
}

// Handler returns the HTTP API: POST /api/match, GET /api/runs when the run
// log is enabled, and /metrics when a prometheus sink is configured.
func (s *Service) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/match", matchapi.NewHandler(s, s.apiToken))
	if s.store != nil {
		mux.Handle("/api/runs", runsapi.NewHandler(s.store, s.apiToken))
	}
	if s.promEnabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	return mux
}

// Serve runs the HTTP API on the configured address until ctx is canceled.
func (s *Service) Serve(ctx context.Context) error {
	srv := &http.Server{Addr: s.apiAddr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.log.Errorf("api server shutdown: %v", err)
		}
	}()
	s.log.Infof("serving api on %s", s.apiAddr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Close flushes pending events and releases resources held by the service.
func (s *Service) Close() error {
	s.bus.Close()
	select {
	case <-s.collected:
	case <-time.After(5 * time.Second):
		s.log.Warnf("metrics collector did not drain")
	}
	s.stop()
	if p, ok := s.publisher.(*mqtt.PahoPublisher); ok {
		p.Disconnect()
	}
	if s.store != nil {
		return s.store.Close()
	}
	return nil
}

package scenarios

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/inakineitor/algo-comp-2023/app"
	"github.com/inakineitor/algo-comp-2023/config"
	"github.com/inakineitor/algo-comp-2023/infra/metrics"
	"github.com/inakineitor/algo-comp-2023/infra/mqtt"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}
	pub := mqtt.NewMockPublisher()

	cfg := &config.Config{}
	cfg.Matching.Workers = sc.Engine.Workers
	cfg.Matching.MaxAttempts = sc.Engine.MaxAttempts
	cfg.Matching.AllowZeroScores = sc.Engine.AllowZeroScores
	cfg.Matching.VerifyStability = true
	cfg.Matching.Rules = sc.Engine.Rules
	cfg.Logging.Level = "error"
	cfg.Logging.Backend = "none"
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("config: %v", err)
	}

	svc, err := app.New(cfg, app.WithSink(sink), app.WithPublisher(pub))
	if err != nil {
		t.Fatalf("service: %v", err)
	}
	doc := sc.Document()
	res, err := svc.Match(context.Background(), doc)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	if err := svc.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	exp := sc.Expected
	if got := res.Status.String(); got != exp.Status {
		t.Errorf("scenario %s expected status %s, got %s", sc.Name, exp.Status, got)
	}
	if len(res.Pairs) != exp.Pairs {
		t.Errorf("scenario %s expected %d pairs, got %d", sc.Name, exp.Pairs, len(res.Pairs))
	}
	if exp.PartitionIndex != nil && res.PartitionIndex != *exp.PartitionIndex {
		t.Errorf("scenario %s expected partition %d, got %d", sc.Name, *exp.PartitionIndex, res.PartitionIndex)
	}
	if exp.Attempts > 0 && res.Attempts != exp.Attempts {
		t.Errorf("scenario %s expected %d attempts, got %d", sc.Name, exp.Attempts, res.Attempts)
	}

	names := doc.Names()
	index := make(map[string]int, len(names))
	for i, n := range names {
		index[n] = i
	}
	unmatched := make([]string, len(res.Unmatched))
	for i, id := range res.Unmatched {
		unmatched[i] = names[id]
	}
	if strings.Join(unmatched, ",") != strings.Join(exp.Unmatched, ",") {
		t.Errorf("scenario %s expected unmatched %v, got %v", sc.Name, exp.Unmatched, unmatched)
	}
	for a, b := range exp.Partners {
		p, ok := res.PartnerOf(index[a])
		if !ok || names[p] != b {
			t.Errorf("scenario %s expected %s paired with %s", sc.Name, a, b)
		}
	}

	if got := len(pub.Published()); got != 1 {
		t.Errorf("scenario %s expected 1 published result, got %d", sc.Name, got)
	}
	want := fmt.Sprintf(`
# HELP matching_runs_total Total number of matching runs by outcome
# TYPE matching_runs_total counter
matching_runs_total{status=%q} 1
`, exp.Status)
	if err := testutil.GatherAndCompare(reg, strings.NewReader(want), "matching_runs_total"); err != nil {
		t.Errorf("scenario %s metrics: %v", sc.Name, err)
	}
}

package app

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inakineitor/algo-comp-2023/config"
	"github.com/inakineitor/algo-comp-2023/core/dataset"
	"github.com/inakineitor/algo-comp-2023/core/matching"
	runlog "github.com/inakineitor/algo-comp-2023/core/matching/logging"
	coremetrics "github.com/inakineitor/algo-comp-2023/core/metrics"
	"github.com/inakineitor/algo-comp-2023/core/model"
	"github.com/inakineitor/algo-comp-2023/infra/mqtt"
)

type runSink struct {
	mu   sync.Mutex
	runs []coremetrics.RunRecord
}

func (r *runSink) RecordRun(rec coremetrics.RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.runs = append(r.runs, rec)
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := &config.Config{}
	cfg.Logging.Backend = "jsonl"
	cfg.Logging.Path = filepath.Join(t.TempDir(), "runs.jsonl")
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	return cfg
}

func couples() dataset.Document {
	ps := []model.Participant{
		{Name: "ana", Gender: model.GenderMale, Preference: model.PreferenceWomen, GradYear: 2024, Responses: []int{1, 2, 3}},
		{Name: "bea", Gender: model.GenderFemale, Preference: model.PreferenceMen, GradYear: 2024, Responses: []int{1, 2, 3}},
		{Name: "cai", Gender: model.GenderMale, Preference: model.PreferenceWomen, GradYear: 2025, Responses: []int{2, 1, 1}},
		{Name: "dee", Gender: model.GenderFemale, Preference: model.PreferenceMen, GradYear: 2025, Responses: []int{2, 1, 1}},
	}
	for i := range ps {
		ps[i].ID = i
	}
	return dataset.Document{Participants: ps}
}

func TestService_MatchRecordsAndPublishes(t *testing.T) {
	pub := mqtt.NewMockPublisher()
	sink := &runSink{}
	svc, err := New(testConfig(t), WithPublisher(pub), WithSink(sink))
	require.NoError(t, err)

	res, err := svc.Match(context.Background(), couples())
	require.NoError(t, err)
	require.Equal(t, matching.StatusMatched, res.Status)
	require.Len(t, res.Pairs, 2)
	for _, p := range res.Pairs {
		assert.Greater(t, p.Score, 0.0)
	}

	runs, err := svc.Runs(context.Background(), runlog.RunQuery{Status: "matched"})
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, res.RunID, runs[0].RunID)
	assert.Equal(t, []string{"ana", "bea", "cai", "dee"}, runs[0].Names)

	msgs := pub.Published()
	require.Len(t, msgs, 1)
	assert.Equal(t, res.RunID, msgs[0].RunID)
	assert.NotEmpty(t, msgs[0].Pairs[0].ProposerName)

	require.NoError(t, svc.Close())
	sink.mu.Lock()
	defer sink.mu.Unlock()
	require.Len(t, sink.runs, 1)
	assert.Equal(t, "matched", sink.runs[0].Status)
}

func TestService_PrecomputedScores(t *testing.T) {
	cfg := testConfig(t)
	svc, err := New(cfg, WithPublisher(mqtt.NewMockPublisher()))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	doc := couples()
	doc.Scores = [][]float64{
		{0, 0, 0, 9},
		{0, 0, 9, 0},
		{0, 9, 0, 0},
		{9, 0, 0, 0},
	}
	res, err := svc.Match(context.Background(), doc)
	require.NoError(t, err)
	require.True(t, res.Matched())
	p, ok := res.PartnerOf(0)
	assert.True(t, ok)
	assert.Equal(t, 3, p)
}

func TestService_InvalidPopulation(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	doc := couples()
	doc.Participants[2].Preference = "Pansexual"
	_, err = svc.Match(context.Background(), doc)
	assert.ErrorIs(t, err, model.ErrUnknownPreference)
}

func TestService_RunLogDisabled(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Backend = "none"
	cfg.SetDefaults()
	svc, err := New(cfg)
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	_, err = svc.Match(context.Background(), couples())
	require.NoError(t, err)
	_, err = svc.Runs(context.Background(), runlog.RunQuery{})
	assert.Error(t, err)
	assert.NoError(t, svc.ServeMetrics(context.Background()))
}

func TestService_Handler(t *testing.T) {
	cfg := testConfig(t)
	cfg.API.Token = "tok"
	svc, err := New(cfg, WithPublisher(mqtt.NewMockPublisher()))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()
	h := svc.Handler()

	body := `{"participants":[
		{"name":"ana","gender":"Male","preference":"Women"},
		{"name":"bea","gender":"Female","preference":"Men"}],
		"scores":[[0,2],[2,0]]}`
	req := httptest.NewRequest(http.MethodPost, "/api/match", strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer tok")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var res matching.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	require.Len(t, res.Pairs, 1)

	req = httptest.NewRequest(http.MethodGet, "/api/runs?participant=1", nil)
	req.Header.Set("Authorization", "Bearer tok")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var recs []runlog.RunRecord
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &recs))
	require.Len(t, recs, 1)
	assert.Equal(t, res.RunID, recs[0].RunID)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

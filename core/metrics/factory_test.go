package metrics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inakineitor/algo-comp-2023/core/factory"
	metrics "github.com/inakineitor/algo-comp-2023/core/metrics"
	_ "github.com/inakineitor/algo-comp-2023/infra/metrics"
)

type countingSink struct{ runs int }

func (c *countingSink) RecordRun(metrics.RunRecord) error {
	c.runs++
	return nil
}

func init() {
	_ = metrics.RegisterMetricsSink("counting", func(map[string]any) (metrics.MetricsSink, error) {
		return &countingSink{}, nil
	})
}

func TestMetricsFactory_Builtins(t *testing.T) {
	assert.Subset(t, metrics.SinkTypes(), []string{"nop", "prometheus", "influx"})

	_, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "nop"}, {Type: "missing"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sink 1 (missing)")

	assert.Error(t, metrics.RegisterMetricsSink("nop", func(map[string]any) (metrics.MetricsSink, error) {
		return metrics.NopSink{}, nil
	}))
}

func TestNewMetricsSink_Composition(t *testing.T) {
	cases := []struct {
		name string
		cfgs []factory.ModuleConfig
		want any
	}{
		{"none", nil, metrics.NopSink{}},
		{"only nop", []factory.ModuleConfig{{Type: "nop"}, {Type: "nop"}}, metrics.NopSink{}},
		{"nop dropped", []factory.ModuleConfig{{Type: "nop"}, {Type: "counting"}}, &countingSink{}},
		{"several", []factory.ModuleConfig{{Type: "counting"}, {Type: "nop"}, {Type: "counting"}}, &metrics.MultiSink{}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			s, err := metrics.NewMetricsSink(c.cfgs)
			require.NoError(t, err)
			assert.IsType(t, c.want, s)
		})
	}

	s, err := metrics.NewMetricsSink([]factory.ModuleConfig{{Type: "counting"}, {Type: "counting"}})
	require.NoError(t, err)
	ms := s.(*metrics.MultiSink)
	require.Len(t, ms.Sinks, 2)
	require.NoError(t, ms.RecordRun(metrics.RunRecord{}))
	for _, sub := range ms.Sinks {
		assert.Equal(t, 1, sub.(*countingSink).runs)
	}
}

package metrics_test

import (
	"encoding/json"
	"testing"

	"gopkg.in/yaml.v3"

	metrics "github.com/inakineitor/algo-comp-2023/core/metrics"
)

func TestMetricsConfigDecodeYAML(t *testing.T) {
	data := `sinks:
  - type: counting
  - type: influx
    conf:
      url: http://127.0.0.1:1
      bucket: runs
prometheus_addr: ":9200"
`
	var cfg metrics.Config
	if err := yaml.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("yaml unmarshal: %v", err)
	}
	if len(cfg.Sinks) != 2 || cfg.Sinks[1].Conf["bucket"] != "runs" {
		t.Fatalf("unexpected sinks %+v", cfg.Sinks)
	}
	if !cfg.HasSink("influx") || cfg.HasSink("prometheus") {
		t.Fatalf("HasSink mismatch")
	}
	if cfg.PrometheusAddr != ":9200" {
		t.Fatalf("prometheus addr = %q", cfg.PrometheusAddr)
	}
}

func TestMetricsConfigDecodeJSON_Invalid(t *testing.T) {
	data := `{"sinks":[{"type":"missing"}]}`
	var cfg metrics.Config
	if err := json.Unmarshal([]byte(data), &cfg); err != nil {
		t.Fatalf("json unmarshal: %v", err)
	}
	if _, err := metrics.NewMetricsSink(cfg.Sinks); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestMetricsConfigDefaults(t *testing.T) {
	var cfg metrics.Config
	cfg.SetDefaults()
	if cfg.PrometheusAddr != ":9100" {
		t.Fatalf("default addr = %q", cfg.PrometheusAddr)
	}
}

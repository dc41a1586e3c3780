package config

import (
	"os"
	"path/filepath"
	"testing"
)

//nolint:gocyclo
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `matching:
  workers: 4
  max_attempts: 100
  allow_zero_scores: true
  rules:
    Men: [Male]
    Women: [Female]
    Bisexual: [Male, Female, Nonbinary]
    Queer: [Nonbinary]
scoring:
  graduation_year_weight: 0.2
  survey_weight: 0.8
metrics:
  sinks:
    - type: "nop"
logging:
  level: debug
  backend: sqlite
  path: runs.db
mqtt:
  broker: "tcp://localhost:1883"
  client_id: "cli"
  topic: "dating/results"
  qos: 1
api:
  addr: ":9000"
  token: secret
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"workers", cfg.Matching.Workers, 4},
		{"max_attempts", cfg.Matching.MaxAttempts, 100},
		{"max_participants default", cfg.Matching.MaxParticipants, 40},
		{"allow_zero_scores", cfg.Matching.AllowZeroScores, true},
		{"rules", len(cfg.Matching.Rules["Queer"]), 1},
		{"survey_weight", cfg.Scoring.SurveyWeight, 0.8},
		{"metrics_sink", len(cfg.Metrics.Sinks) == 1 && cfg.Metrics.Sinks[0].Type == "nop", true},
		{"prometheus_addr default", cfg.Metrics.PrometheusAddr, ":9100"},
		{"level", cfg.Logging.Level, "debug"},
		{"backend", cfg.Logging.Backend, "sqlite"},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"topic", cfg.MQTT.Topic, "dating/results"},
		{"qos", cfg.MQTT.QoS, byte(1)},
		{"mqtt retries default", cfg.MQTT.MaxRetries, 3},
		{"mqtt enabled", cfg.MQTTEnabled(), true},
		{"api addr", cfg.API.Addr, ":9000"},
		{"api token", cfg.API.Token, "secret"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"matching":{"workers":2}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("K_MATCHING__WORKERS", "8")
	t.Setenv("K_LOGGING__BACKEND", "none")
	t.Setenv("K_API__TOKEN", "from-env")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Matching.Workers != 8 {
		t.Errorf("workers = %d, want 8", cfg.Matching.Workers)
	}
	if cfg.Logging.RunLogEnabled() {
		t.Errorf("run log should be disabled")
	}
	if cfg.MQTTEnabled() {
		t.Errorf("mqtt should be disabled without broker")
	}
	if cfg.API.Token != "from-env" {
		t.Errorf("api token = %q, want from-env", cfg.API.Token)
	}
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Matching.Workers != 1 || cfg.Scoring.GraduationYearWeight != 0.05 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.Logging.Backend != "jsonl" || cfg.Logging.Path != "runs.log" {
		t.Errorf("run log defaults not applied: %+v", cfg.Logging)
	}
	if cfg.API.Addr != ":8080" {
		t.Errorf("api addr = %q, want :8080", cfg.API.Addr)
	}
}

func TestLoad_Invalid(t *testing.T) {
	cases := map[string]string{
		"config.toml": ``,
		"bad.yaml":    "matching:\n  max_participants: 99\n",
		"level.yaml":  "logging:\n  level: loud\n",
		"store.yaml":  "logging:\n  backend: csv\n",
		"mqtt.yaml":   "mqtt:\n  broker: tcp://x:1883\n  qos: 5\n",
	}
	dir := t.TempDir()
	for name, body := range cases {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			t.Fatalf("write: %v", err)
		}
		if _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

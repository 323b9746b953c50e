package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, m *Metrics, outcome string) float64 {
	t.Helper()
	var out dto.Metric
	if err := m.RunsTotal.WithLabelValues(outcome).Write(&out); err != nil {
		t.Fatalf("write counter: %v", err)
	}
	return out.GetCounter().GetValue()
}

func TestMetrics_RecordRun(t *testing.T) {
	m := New()

	m.RecordRun(OutcomeSuccess, 200*time.Millisecond)
	m.RecordRun(OutcomeTimeout, 30*time.Second)
	m.RecordRun(OutcomeSuccess, time.Second)

	if got := counterValue(t, m, OutcomeSuccess); got != 2 {
		t.Errorf("success runs = %v, want 2", got)
	}
	if got := counterValue(t, m, OutcomeTimeout); got != 1 {
		t.Errorf("timeout runs = %v, want 1", got)
	}
	if got := counterValue(t, m, OutcomeHTTPError); got != 0 {
		t.Errorf("http_error runs = %v, want 0", got)
	}

	var hist dto.Metric
	if err := m.RequestDuration.Write(&hist); err != nil {
		t.Fatalf("write histogram: %v", err)
	}
	if got := hist.GetHistogram().GetSampleCount(); got != 3 {
		t.Errorf("duration samples = %d, want 3", got)
	}
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := New()
	b := New()

	a.RecordRun(OutcomeSuccess, time.Millisecond)

	if got := counterValue(t, b, OutcomeSuccess); got != 0 {
		t.Errorf("second registry success runs = %v, want 0", got)
	}
}

func TestMetrics_WriteTextfile(t *testing.T) {
	m := New()
	m.RecordRun(OutcomeInvalidJSON, 10*time.Millisecond)

	path := filepath.Join(t.TempDir(), "llama_probe.prom")
	if err := m.WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}

	content := string(data)
	for _, want := range []string{
		`llama_probe_runs_total{outcome="invalid_json"} 1`,
		"llama_probe_request_duration_seconds_count 1",
		"llama_probe_last_run_timestamp_seconds",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("textfile missing %q:\n%s", want, content)
		}
	}
}

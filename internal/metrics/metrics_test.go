package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestServeRegistersMetrics(t *testing.T) {
	srv, err := Serve("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}
	defer srv.Close()

	CyclesTotal.WithLabelValues("success").Inc()
	StageFailures.WithLabelValues("quote_unavailable").Inc()

	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	want := map[string]bool{"swap_cycles_total": false, "swap_stage_failures_total": false}
	for _, mf := range mfs {
		if _, ok := want[mf.GetName()]; ok {
			want[mf.GetName()] = true
		}
	}
	for _, mf := range mfs {
		if mf.GetName() != "swap_stage_failures_total" {
			continue
		}
		if label := mf.GetMetric()[0].GetLabel()[0].GetName(); label != "kind" {
			t.Fatalf("expected failures labelled by kind, got %s", label)
		}
	}
	for name, found := range want {
		if !found {
			t.Fatalf("%s metric not found", name)
		}
	}
}

func TestHealthz(t *testing.T) {
	srv, err := Serve("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}
	defer srv.Close()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response %d %q", rec.Code, rec.Body.String())
	}
}

func TestServeReportsBindError(t *testing.T) {
	first, err := Serve("127.0.0.1:0")
	if err != nil {
		t.Fatalf("Serve returned error: %v", err)
	}
	defer first.Close()

	if _, err := Serve(first.Addr); err == nil {
		t.Fatalf("expected a bind error for %s", first.Addr)
	}
}

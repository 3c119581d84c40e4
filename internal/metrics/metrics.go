package metrics

import (
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	CyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "swap_cycles_total", Help: "Swap cycles finished, by outcome"},
		[]string{"outcome"},
	)
	StageFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "swap_stage_failures_total", Help: "Failed cycles by error kind"},
		[]string{"kind"},
	)
	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{Name: "swap_stage_duration_seconds", Help: "Time spent per pipeline stage", Buckets: []float64{.1, .25, .5, 1, 2.5, 5, 10, 30, 60, 120, 300}},
		[]string{"stage"},
	)
	SubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "swap_submitted_total", Help: "Invoke transactions accepted by the node for inclusion"},
	)
)

func init() {
	prometheus.MustRegister(CyclesTotal, StageFailures, StageDuration, SubmittedTotal)
}

// Serve binds addr and serves /metrics and /healthz in the background. Bind errors are returned.
func Serve(addr string) (*http.Server, error) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	srv := &http.Server{Addr: ln.Addr().String(), Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	return srv, nil
}

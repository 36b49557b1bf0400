package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.science.ru.nl/log"
)

const namespace = "devsetup"

var (
	metricStepOk = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "step",
		Name:      "ok_total",
		Help:      "Bootstrap steps that completed.",
	}, []string{"step"})

	metricStepFail = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "step",
		Name:      "error_total",
		Help:      "Bootstrap steps that failed.",
	}, []string{"step"})
)

// serveMetrics exposes /metrics for the duration of the run, so CI can
// scrape what a bootstrap did. A listener error only costs us the metrics,
// not the run.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	go func() {
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.Warningf("metrics listener: %s", err)
		}
	}()
}

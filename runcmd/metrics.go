package runcmd

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricCmdFail = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "devsetup",
		Subsystem: "cmd",
		Name:      "error_total",
		Help:      "Total number of external commands that failed.",
	})

	metricCmdOps = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "devsetup",
		Subsystem: "cmd",
		Name:      "ops_total",
		Help:      "Total number of external commands run.",
	})
)

package compat

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	chopsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treefeller",
		Subsystem: "compat",
		Name:      "chops_total",
		Help:      "Blocks felled through the compat table.",
	}, []string{"method"})

	hookErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treefeller",
		Subsystem: "compat",
		Name:      "hook_errors_total",
		Help:      "Removal hooks that returned an error or panicked.",
	})

	breakerOpen = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "treefeller",
		Subsystem: "compat",
		Name:      "disabled",
		Help:      "1 once root block breaking was disabled after repeated hook failures.",
	})
)

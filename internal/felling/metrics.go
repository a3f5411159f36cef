package felling

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	methodLabel = "method"
	partLabel   = "part"
)

var (
	chopsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treefeller",
		Name:      "chops_total",
		Help:      "The total number of chop requests by how they were handled.",
	}, []string{methodLabel})

	blocksRemovedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "treefeller",
		Name:      "blocks_removed_total",
		Help:      "The total number of blocks removed by tree felling.",
	}, []string{partLabel})

	searchSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "treefeller",
		Name:      "search_steps",
		Help:      "Queue entries taken by the trunk search of one chop.",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 12),
	})

	truncatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "treefeller",
		Name:      "truncated_chops_total",
		Help:      "Chops that stopped removing blocks at the block limit.",
	})
)

func instrumentChop(method string) {
	chopsTotal.
		With(prometheus.Labels{methodLabel: method}).
		Inc()
}

func instrumentRemoved(part string, n int) {
	blocksRemovedTotal.
		With(prometheus.Labels{partLabel: part}).
		Add(float64(n))
}

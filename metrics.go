package graphnav

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	engineQuery     = "cte"
	engineTraversal = "dfs"
)

var (
	reachDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphnav_reachability_duration_seconds",
		Help:    "Time to compute a reachability result, store read included",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	}, []string{"engine"})

	reachSize = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "graphnav_reachability_result_size",
		Help:    "Number of reachable nodes per result",
		Buckets: []float64{0, 1, 10, 100, 1000, 10000},
	}, []string{"engine"})

	renderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "graphnav_render_duration_seconds",
		Help:    "Time to render the full graph, store read included",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1},
	})
)

package server

import "github.com/prometheus/client_golang/prometheus"

var (
	analysesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "roofline",
		Name:      "analyses_total",
		Help:      "Analyze requests served, labelled by outcome.",
	}, []string{"status"})

	analysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "roofline",
		Name:      "analysis_duration_seconds",
		Help:      "End-to-end analyze request duration, including upstream API calls.",
		Buckets:   prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(analysesTotal, analysisDuration)
}

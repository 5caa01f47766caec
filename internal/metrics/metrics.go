// Package metrics exposes Prometheus instrumentation for the feed pipeline.
// Collectors are registered on the default registry; serve them with
// Handler on /metrics.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Feed label values.
const (
	FeedMembers     = "members"
	FeedAnnotations = "annotations"
)

var (
	feedFetches = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_feed_fetch_total",
		Help: "Feed fetches by feed and result.",
	}, []string{"feed", "result"})

	feedFetchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_feed_fetch_duration_seconds",
		Help:    "Wall time of feed fetches.",
		Buckets: prometheus.DefBuckets,
	}, []string{"feed"})

	annotationSaves = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_annotation_save_total",
		Help: "Annotation save attempts by result.",
	}, []string{"result"})

	fallbacksServed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_fallback_served_total",
		Help: "Responses served from a fallback source instead of a live fetch.",
	}, []string{"source"})
)

// ObserveFeedFetch records one feed fetch attempt.
func ObserveFeedFetch(feed string, d time.Duration, err error) {
	feedFetches.WithLabelValues(feed, result(err)).Inc()
	feedFetchDuration.WithLabelValues(feed).Observe(d.Seconds())
}

// ObserveAnnotationSave records one save attempt.
func ObserveAnnotationSave(err error) {
	annotationSaves.WithLabelValues(result(err)).Inc()
}

// ObserveFallback records a response served from the named fallback source
// ("cache" or "sample").
func ObserveFallback(source string) {
	fallbacksServed.WithLabelValues(source).Inc()
}

// Handler returns the /metrics endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

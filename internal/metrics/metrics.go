package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HttpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookrec_http_requests_total",
		Help: "Total number of HTTP requests served",
	}, []string{"method", "path", "status"})

	HttpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "bookrec_http_request_duration_seconds",
		Help:    "Duration of HTTP requests in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"path"})

	UpstreamRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookrec_upstream_requests_total",
		Help: "Google Books page requests by outcome",
	}, []string{"outcome"})

	UpstreamRequestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookrec_upstream_request_duration_seconds",
		Help:    "Duration of a single Google Books page request",
		Buckets: prometheus.DefBuckets,
	})

	FetchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookrec_fetches_total",
		Help: "Genre fetches by final status",
	}, []string{"status"})

	FetchedBooks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "bookrec_fetched_books",
		Help:    "Number of books returned per genre fetch",
		Buckets: []float64{0, 10, 20, 40, 60, 80, 100},
	})

	CacheLookupsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bookrec_cache_lookups_total",
		Help: "Genre result cache lookups",
	}, []string{"result"})
)

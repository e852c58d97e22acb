package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storecore_http_requests_total",
			Help: "HTTP requests served, by method, route and status code",
		},
		[]string{"method", "path", "status"},
	)

	// Buckets sized for an in-process engine: most requests finish within
	// a few ms, the long tail is MySQL/Rabbit round trips.
	httpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "storecore_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by method and route",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"method", "path"},
	)
)

// MetricsMiddleware records a counter and a latency observation per request.
// The route template is used as the path label so ids do not explode
// cardinality; unmatched requests fall back to the raw path.
func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		status := strconv.Itoa(c.Writer.Status())

		httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		httpDuration.WithLabelValues(c.Request.Method, path).
			Observe(time.Since(start).Seconds())
	}
}

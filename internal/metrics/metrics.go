// Package metrics exposes Prometheus instrumentation for the storefront.
// Wire Middleware() onto the engine and serve Handler() at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "pizzashop",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	RequestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "pizzashop",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	OrdersSubmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pizzashop",
		Subsystem: "orders",
		Name:      "submitted_total",
		Help:      "Orders successfully handed to the delivery channel.",
	})

	OrdersFailed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "pizzashop",
		Subsystem: "orders",
		Name:      "failed_total",
		Help:      "Order submissions rejected by the delivery channel.",
	})
)

func init() {
	prometheus.MustRegister(RequestDuration, RequestTotal, OrdersSubmitted, OrdersFailed)
}

// Middleware records duration and count for every request, labeled by the
// route pattern rather than the raw URL so cardinality stays bounded.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())

		RequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		RequestTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}

// Handler serves the Prometheus scrape endpoint.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

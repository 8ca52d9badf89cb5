package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_requests_total",
		Help: "Requests seen by the gateway, by endpoint and status code.",
	}, []string{"endpoint", "status"})

	rejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gateway_rejections_total",
		Help: "Requests rejected before the business handler, by reason.",
	}, []string{"reason"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gateway_request_duration_seconds",
		Help:    "End-to-end request latency.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})
)

// Metrics records request counts, rejection reasons and latency
func Metrics() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		status := c.Writer.Status()

		requestsTotal.WithLabelValues(endpoint, strconv.Itoa(status)).Inc()
		requestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())

		switch status {
		case http.StatusUnauthorized:
			rejectionsTotal.WithLabelValues("missing_credential").Inc()
		case http.StatusForbidden:
			rejectionsTotal.WithLabelValues("invalid_credential").Inc()
		case http.StatusTooManyRequests:
			rejectionsTotal.WithLabelValues("rate_limited").Inc()
		}
	}
}

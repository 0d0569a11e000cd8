package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

var (
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadmarket",
		Name:      "settlement_operations_total",
		Help:      "Settlement operations by name and outcome.",
	}, []string{"operation", "outcome"})

	settledAmount = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "leadmarket",
		Name:      "settled_amount_total",
		Help:      "Money moved between balances, by operation.",
	}, []string{"operation"})

	httpDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "leadmarket",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})
)

func RecordOperation(operation string, err error) {
	outcome := OutcomeSuccess
	if err != nil {
		outcome = OutcomeError
	}
	operationsTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordAmount(operation string, amount float64) {
	if amount > 0 {
		settledAmount.WithLabelValues(operation).Add(amount)
	}
}

func Handler() http.Handler {
	return promhttp.Handler()
}

func GinMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		httpDuration.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

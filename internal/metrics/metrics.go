//nolint:gochecknoglobals
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "spycats"

var (
	httpRequestsDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "The latency of the HTTP requests.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route", "method", "code"})

	breedChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "breed_checks_total",
		Help:      "Breed validations against the breed service by result.",
	}, []string{"result"})

	completions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "completions_total",
		Help:      "Completion actions by entity.",
	}, []string{"entity"})
)

const (
	BreedValid       = "valid"
	BreedInvalid     = "invalid"
	BreedUnavailable = "unavailable"
)

func NewMetricHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpRequestsDuration.With(prometheus.Labels{
			"route":  route,
			"method": c.Request.Method,
			"code":   strconv.Itoa(c.Writer.Status()),
		}).Observe(time.Since(start).Seconds())
	}
}

func ObserveBreedCheck(result string) {
	breedChecks.WithLabelValues(result).Inc()
}

func ObserveCompletion(entity string) {
	completions.WithLabelValues(entity).Inc()
}

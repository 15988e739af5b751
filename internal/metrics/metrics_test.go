package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(NewMetricHandler())
	router.GET("/cats/:id/", func(c *gin.Context) { c.Status(http.StatusOK) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/cats/1/", nil))

	assert.Positive(t, testutil.CollectAndCount(httpRequestsDuration, "spycats_http_request_duration_seconds"))
}

func TestCounters(t *testing.T) {
	before := testutil.ToFloat64(breedChecks.WithLabelValues(BreedInvalid))
	ObserveBreedCheck(BreedInvalid)
	assert.Equal(t, before+1, testutil.ToFloat64(breedChecks.WithLabelValues(BreedInvalid)))

	before = testutil.ToFloat64(completions.WithLabelValues("mission"))
	ObserveCompletion("mission")
	assert.Equal(t, before+1, testutil.ToFloat64(completions.WithLabelValues("mission")))
}

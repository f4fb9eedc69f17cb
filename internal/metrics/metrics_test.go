package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveLoad(t *testing.T) {
	m := New()

	m.ObserveLoad(time.Second, 42, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("ok")))
	assert.Equal(t, 42.0, testutil.ToFloat64(m.DatasetRows))

	m.ObserveLoad(time.Millisecond, 0, errors.New("boom"))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Loads.WithLabelValues("error")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.DatasetRows))
}

func TestObserveSummary(t *testing.T) {
	m := New()
	m.ObserveSummary("allgender_20", 5)
	m.ObserveSummary("allgender_20", 0)
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Summaries.WithLabelValues("allgender_20")))
}

func TestMiddlewareAndHandler(t *testing.T) {
	m := New()
	e := echo.New()
	e.Use(m.Middleware())
	e.GET("/ping", func(c echo.Context) error { return c.String(http.StatusOK, "pong") })
	e.GET("/metrics", m.Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/ping", "200")))

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `footfall_http_requests_total{code="200",method="GET",route="/ping"} 1`)
}

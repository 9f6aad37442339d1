package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddlewareLabelsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()
	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/albums/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for _, id := range []string{"a", "b", "c"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/albums/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, float64(3), testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/albums/:id", "404")))
	count, err := testutil.GatherAndCount(m.Registry, "portfolio_http_requests_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
	assert.Equal(t, float64(0), testutil.ToFloat64(m.httpInFlight))
}

func TestObserveAlbumOpNilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveAlbumOp("get", "ok") })

	m = New()
	m.ObserveAlbumOp("create", "ok")
	m.ObserveAlbumOp("create", "ok")
	assert.Equal(t, float64(2), testutil.ToFloat64(m.albumOps.WithLabelValues("create", "ok")))
}

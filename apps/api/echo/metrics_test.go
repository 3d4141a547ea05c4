package echoapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/orientation/core/analysis"
)

func TestNewMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewMetrics("test", reg)
	require.NoError(t, err)

	// collectors are registered once per registry
	_, err = NewMetrics("test", reg)
	assert.Error(t, err)
}

func TestMetrics_middleware(t *testing.T) {
	m, err := NewMetrics("test", prometheus.NewRegistry())
	require.NoError(t, err)

	app := echo.New()
	app.Use(m.middleware())
	app.GET("/ok/:id", func(ctx echo.Context) error { return ctx.NoContent(http.StatusNoContent) })
	app.GET("/forbidden", func(ctx echo.Context) error { return errHttpForbidden })

	for _, path := range []string{"/ok/1", "/ok/2", "/forbidden", "/nope"} {
		app.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/ok/:id", "204")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/forbidden", "403")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.duration.WithLabelValues(http.MethodGet, "/ok/:id").(prometheus.Histogram)))
}

func TestMetrics_observeAnalysis(t *testing.T) {
	var nilMetrics *Metrics
	assert.NotPanics(t, func() { nilMetrics.observeAnalysis(nil) })

	m, err := NewMetrics("test", prometheus.NewRegistry())
	require.NoError(t, err)

	m.observeAnalysis(nil)
	m.observeAnalysis(nil)
	m.observeAnalysis(errors.WithStack(&analysis.FetchError{Source: analysis.SourceProfile, Err: errors.New("boom")}))
	m.observeAnalysis(errors.New("mail"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.analyses.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("fetch_error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.analyses.WithLabelValues("error")))
}

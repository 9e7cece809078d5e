package observability_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aretw0/figspec/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := observability.NewMetrics()

	m.ObserveApply(3, 1)
	m.ObserveApply(2, 0)
	m.ObserveTool("next", nil)
	m.ObserveTool("facts", errors.New("unknown node id"))

	assert.Equal(t, 5.0, testutil.ToFloat64(m.DecisionsApplied))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PatchItemsSkip))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("next", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ToolCalls.WithLabelValues("facts", "error")))
}

func TestMetrics_NilIsNoop(t *testing.T) {
	var m *observability.Metrics
	assert.NotPanics(t, func() {
		m.ObserveApply(1, 1)
		m.ObserveTool("x", nil)
	})
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a, b := observability.NewMetrics(), observability.NewMetrics()
	a.ObserveApply(1, 0)
	assert.Equal(t, 0.0, testutil.ToFloat64(b.DecisionsApplied))
}

func TestMetrics_Handler(t *testing.T) {
	m := observability.NewMetrics()
	m.ObserveApply(1, 0)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "figspec_decisions_applied_total 1")
}

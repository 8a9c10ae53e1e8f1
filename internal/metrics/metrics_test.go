package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCalculationCounters(t *testing.T) {
	m := New()
	m.Calculation("imperfect", true, 5.09)
	m.Calculation("imperfect", true, 22.95)
	m.Calculation("perfect", false, 0)
	m.Calculation("", false, 0)

	if got := testutil.ToFloat64(m.calculations.WithLabelValues("imperfect", OutcomeOK)); got != 2 {
		t.Errorf("imperfect ok = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.calculations.WithLabelValues("perfect", OutcomeRejected)); got != 1 {
		t.Errorf("perfect rejected = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.calculations.WithLabelValues("unknown", OutcomeRejected)); got != 1 {
		t.Errorf("unknown rejected = %v, want 1", got)
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.Calculation("imperfect", true, 1)
	m.Report("xlsx")
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/api/status", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	}
	m.Report("md")

	if got := testutil.ToFloat64(m.httpRequestsTotal.WithLabelValues("/api/status", "200")); got != 3 {
		t.Errorf("status requests = %v, want 3", got)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("metrics status = %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"pitinflow_http_requests_total", `pitinflow_reports_total{format="md"} 1`} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics output missing %q", want)
		}
	}
}

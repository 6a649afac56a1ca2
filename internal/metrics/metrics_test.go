package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestProvider_RegistersStandardCollectors_AndBuildInfo(t *testing.T) {
	p := Init(BuildInfo{Version: "test", Revision: "r", BuildDate: "now"})

	g := prometheus.NewGauge(prometheus.GaugeOpts{Name: "test_gauge", Help: "smoke"})
	p.Register(g)
	g.Set(42)

	if n := testutil.CollectAndCount(g); n == 0 {
		t.Fatalf("expected at least 1 sample from test_gauge, got %d", n)
	}

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rr := httptest.NewRecorder()
	p.Handler().ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d want 200", rr.Code)
	}
	body := rr.Body.String()

	if !strings.Contains(body, "go_goroutines") {
		t.Fatalf("expected go_goroutines in payload; got:\n%s", body)
	}
	if !strings.Contains(body, `pixeltable_build_info{`) {
		t.Fatalf("expected pixeltable_build_info in payload; got:\n%s", body)
	}
}

func TestExtraction_CountsRunsAndRows(t *testing.T) {
	p := Init(BuildInfo{})
	e := NewExtraction(p)

	e.Polygons.Inc()
	e.Polygons.Inc()
	e.ObserveRun(time.Now().Add(-10*time.Millisecond), 7)

	if got := testutil.ToFloat64(e.Polygons); got != 2 {
		t.Fatalf("polygons=%v want 2", got)
	}
	if got := testutil.ToFloat64(e.PixelRows); got != 7 {
		t.Fatalf("pixel rows=%v want 7", got)
	}
	if n := testutil.CollectAndCount(e.Duration); n == 0 {
		t.Fatalf("expected duration samples")
	}
}

// Package metrics exposes Prometheus metrics for extraction runs.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type BuildInfo struct {
	Version   string
	Revision  string
	BuildDate string
}

type Provider struct {
	reg       *prometheus.Registry
	buildInfo *prometheus.GaugeVec
}

func Init(build BuildInfo) *Provider {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	bi := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pixeltable_build_info",
			Help: "Build info for this binary (value is always 1).",
		},
		[]string{"version", "revision", "build_date"},
	)
	reg.MustRegister(bi)
	if build.Version == "" {
		build.Version = "dev"
	}
	bi.WithLabelValues(build.Version, build.Revision, build.BuildDate).Set(1)

	return &Provider{reg: reg, buildInfo: bi}
}

func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.reg, promhttp.HandlerOpts{})
}

func (p *Provider) Register(cs ...prometheus.Collector) {
	for _, c := range cs {
		p.reg.MustRegister(c)
	}
}

// Extraction counts polygons and pixel rows processed by one run.
type Extraction struct {
	Polygons  prometheus.Counter
	PixelRows prometheus.Counter
	Duration  prometheus.Histogram
}

func NewExtraction(p *Provider) *Extraction {
	e := &Extraction{
		Polygons: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pixeltable_polygons_total",
			Help: "Polygons reshaped into pixel rows.",
		}),
		PixelRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "pixeltable_pixel_rows_total",
			Help: "Pixel rows produced.",
		}),
		Duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "pixeltable_extract_duration_seconds",
			Help:    "Wall time of the extraction call including reshape.",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 12),
		}),
	}
	p.Register(e.Polygons, e.PixelRows, e.Duration)
	return e
}

func (e *Extraction) ObserveRun(start time.Time, rows int) {
	e.Duration.Observe(time.Since(start).Seconds())
	e.PixelRows.Add(float64(rows))
}

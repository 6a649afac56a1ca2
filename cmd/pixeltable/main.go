// Command pixeltable extracts per-pixel values for every polygon of a vector
// collection from a multi-band raster and writes the flat pixel table as CSV.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/geolab-tools/pixeltable"
	"github.com/geolab-tools/pixeltable/gdal"
	"github.com/geolab-tools/pixeltable/internal/config"
	"github.com/geolab-tools/pixeltable/internal/debugserver"
	"github.com/geolab-tools/pixeltable/internal/logger"
	"github.com/geolab-tools/pixeltable/internal/metrics"
	"github.com/geolab-tools/pixeltable/table"
)

var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.FromEnv()

	columns := flag.String("columns", "", "comma-separated attribute columns to retain")
	flag.StringVar(&cfg.Raster, "raster", cfg.Raster, "path to the multi-band raster")
	flag.StringVar(&cfg.Polygons, "polygons", cfg.Polygons, "path to the polygon collection")
	flag.StringVar(&cfg.Fill, "fill", cfg.Fill, "fill value for nodata pixels (empty keeps nulls)")
	flag.BoolVar(&cfg.Coverage, "coverage", cfg.Coverage, "append a cover_frac column")
	flag.BoolVar(&cfg.PixelIndex, "pixel-index", cfg.PixelIndex, "append a pixel_id column")
	flag.BoolVar(&cfg.Progress, "progress", cfg.Progress, "log per-polygon progress")
	flag.StringVar(&cfg.Out, "out", cfg.Out, "output CSV path (empty writes to stdout)")
	flag.IntVar(&cfg.SubCells, "subcells", cfg.SubCells, "coverage supersampling factor per pixel edge")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug|info|warn|error")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "address for /metrics and /healthz (empty disables)")
	flag.Parse()
	if *columns != "" {
		cfg.Columns = config.SplitColumns(*columns)
	}

	zl := logger.Build(logger.Config{
		Level:     cfg.LogLevel,
		Console:   cfg.LogConsole,
		Component: "pixeltable",
	}, os.Stderr)
	slogger := logger.NewSlog(&zl)

	if cfg.Raster == "" || cfg.Polygons == "" {
		fmt.Fprintln(os.Stderr, "usage: pixeltable -raster FILE -polygons FILE [-columns a,b,...]")
		return 2
	}

	fill, err := parseFill(cfg.Fill)
	if err != nil {
		slogger.Error("invalid fill value", "fill", cfg.Fill, "err", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	prov := metrics.Init(metrics.BuildInfo{Version: Version})
	extm := metrics.NewExtraction(prov)
	if cfg.MetricsAddr != "" {
		go func() {
			if err := debugserver.Run(ctx, cfg.MetricsAddr, slogger, prov); err != nil {
				slogger.Error("metrics server failed", "err", err)
			}
		}()
	}

	var progress pixeltable.Progress
	if cfg.Progress {
		progress = pixeltable.ProgressFunc(func(done, total int, id string) {
			extm.Polygons.Inc()
			slogger.Info("polygon processed", "done", done, "total", total, "polygon_id", id)
		})
	} else {
		progress = pixeltable.ProgressFunc(func(int, int, string) { extm.Polygons.Inc() })
	}

	ext := &gdal.Extractor{SubCells: cfg.SubCells, Logger: slogger}

	slogger.Info("extraction started",
		"raster", cfg.Raster, "polygons", cfg.Polygons, "columns", len(cfg.Columns), "version", Version)
	start := time.Now()

	tbl, err := pixeltable.Extract(ctx, ext, pixeltable.Options{
		Raster:         cfg.Raster,
		Polygons:       cfg.Polygons,
		IncludeColumns: cfg.Columns,
		Fill:           fill,
		Coverage:       cfg.Coverage,
		PixelIndex:     cfg.PixelIndex,
		Progress:       progress,
		Logger:         slogger,
	})
	if err != nil {
		slogger.Error("extraction failed", "err", err)
		return 1
	}
	extm.ObserveRun(start, tbl.NumRows())

	if err := writeOut(tbl, cfg.Out); err != nil {
		slogger.Error("write output", "err", err)
		return 1
	}

	slogger.Info("extraction complete",
		"rows", tbl.NumRows(),
		"duration_ms", time.Since(start).Milliseconds(),
		"fingerprint", fmt.Sprintf("%016x", tbl.Fingerprint()))
	return 0
}

// parseFill interprets the -fill flag: integers and floats become numeric
// cells, anything else a string cell, empty means no substitution.
func parseFill(s string) (*table.Value, error) {
	if s == "" {
		return nil, nil
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		v := table.Int(n)
		return &v, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		v := table.Float(f)
		return &v, nil
	}
	v := table.String(s)
	return &v, nil
}

func writeOut(tbl *table.Table, path string) error {
	if path == "" {
		return tbl.WriteCSV(os.Stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := tbl.WriteCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

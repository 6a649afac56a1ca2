// Package config resolves CLI configuration from environment variables with
// flag overrides.
package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Raster      string
	Polygons    string
	Columns     []string
	Fill        string
	Coverage    bool
	PixelIndex  bool
	Progress    bool
	Out         string
	SubCells    int
	LogLevel    string
	LogConsole  bool
	MetricsAddr string
}

func FromEnv() Config {
	return Config{
		Raster:      getenv("PIXELTABLE_RASTER", ""),
		Polygons:    getenv("PIXELTABLE_POLYGONS", ""),
		Columns:     SplitColumns(getenv("PIXELTABLE_COLUMNS", "")),
		Fill:        getenv("PIXELTABLE_FILL", ""),
		Coverage:    getbool("PIXELTABLE_COVERAGE", true),
		PixelIndex:  getbool("PIXELTABLE_PIXEL_INDEX", true),
		Progress:    getbool("PIXELTABLE_PROGRESS", false),
		Out:         getenv("PIXELTABLE_OUT", ""),
		SubCells:    getint("PIXELTABLE_SUBCELLS", 8),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		LogConsole:  getbool("LOG_CONSOLE", false),
		MetricsAddr: getenv("METRICS_ADDR", ""),
	}
}

// SplitColumns parses a comma-separated column list, trimming blanks.
func SplitColumns(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	cols := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v := os.Getenv(k); v != "" {
		return strings.ToLower(strings.TrimSpace(v)) == "true"
	}
	return def
}

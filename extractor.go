package pixeltable

import (
	"context"

	"github.com/geolab-tools/pixeltable/table"
)

// Extractor is the wrapped coverage-extraction routine. Implementations open
// and decode the raster, parse the polygon collection, compute per-pixel
// coverage fractions and decide which pixels a polygon includes. This package
// never touches raster or vector data itself.
//
// The pinned inclusion policy for the shipped backend (gdal): a pixel belongs
// to a polygon iff its coverage fraction is greater than zero. Band values
// are returned raw, never weighted by coverage; the fraction travels as a
// separate per-pixel sequence.
type Extractor interface {
	Extract(ctx context.Context, req Request) (*Result, error)
}

// Request identifies the two input datasets and the attribute columns to
// carry along. Both datasets are read-only to the extractor.
type Request struct {
	// Raster is a path or connection string resolving to a multi-band
	// raster dataset.
	Raster string

	// Polygons is a path or connection string resolving to a polygon
	// collection with attribute fields.
	Polygons string

	// Columns are the attribute fields to read off each polygon, in the
	// caller's order.
	Columns []string
}

// Band describes one raster band of an extraction result.
type Band struct {
	// Name of the output column, band_1 .. band_k.
	Name string

	// NoData is the band's nodata marker; valid only when HasNoData is set.
	NoData    float64
	HasNoData bool
}

// PolygonResult holds the per-pixel sequences and attributes of a single
// polygon. All band sequences and the coverage sequence must have equal
// length; the reshape step verifies this rather than trusting it.
type PolygonResult struct {
	// ID identifies the polygon: an explicit feature id when the source has
	// one, otherwise the 1-based position in the collection.
	ID table.Value

	// Attributes holds the requested column values for this polygon.
	Attributes map[string]table.Value

	// Values is indexed [band][pixel]. Nodata pixels keep the band's nodata
	// marker so that every band reports the same pixel positions.
	Values [][]float64

	// Coverage holds the fraction of each pixel's area covered by the
	// polygon, in (0,1], aligned with the Values sequences.
	Coverage []float64
}

// Result is the collaborator's output: one record per polygon, band cells
// holding ordered per-pixel sequences. Created fresh per call, consumed
// immediately by the reshape step, never persisted.
type Result struct {
	Bands    []Band
	Polygons []PolygonResult
}

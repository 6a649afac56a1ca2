package pixeltable

import (
	"context"
	"io"
	"log/slog"

	"github.com/geolab-tools/pixeltable/table"
)

// Options parameterize one extraction. Raster, Polygons and the extractor
// are the only required pieces; everything else defaults to off.
type Options struct {
	// Raster and Polygons identify the input datasets; both are passed
	// through to the extractor unmodified.
	Raster   string
	Polygons string

	// IncludeColumns are the polygon attribute columns broadcast onto every
	// pixel row, in this order. A column absent from the collection fails
	// the call with a SchemaError.
	IncludeColumns []string

	// Fill, when non-nil, replaces every nodata or otherwise undefined band
	// entry (and any null attribute cell). When nil such entries pass
	// through as null cells.
	Fill *table.Value

	// Coverage appends a cover_frac column holding each pixel's coverage
	// fraction as reported by the extractor.
	Coverage bool

	// PixelIndex appends a pixel_id column, the 1-based position of the
	// pixel within its polygon.
	PixelIndex bool

	// Progress, when non-nil, is notified once per polygon processed. It
	// never affects the output table.
	Progress Progress

	// Logger for warnings; defaults to a discarding logger.
	Logger *slog.Logger
}

// Extract invokes the extraction routine once for all polygons and all bands
// and reshapes the per-polygon result into one row per pixel.
//
// The output column order is band_1..band_k, polygon_id, the include columns
// in caller order, then cover_frac and pixel_id when requested. The row count
// equals the sum over all polygons of their included-pixel counts; polygons
// covering no pixels contribute no rows. The call is idempotent: identical
// inputs produce an identical table.
//
// Errors: *InputError when a source cannot be resolved or no polygon
// intersects the raster, *SchemaError when an include column is missing,
// *RowLengthMismatchError when a polygon's bands disagree on pixel count.
// No partial table is ever returned alongside an error.
func Extract(ctx context.Context, ext Extractor, opts Options) (*table.Table, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	res, err := ext.Extract(ctx, Request{
		Raster:   opts.Raster,
		Polygons: opts.Polygons,
		Columns:  opts.IncludeColumns,
	})
	if err != nil {
		return nil, err
	}

	return reshape(res, opts, logger)
}

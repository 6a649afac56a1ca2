package pixeltable

import (
	"log/slog"
	"math"

	"github.com/geolab-tools/pixeltable/table"
)

// reshape un-nests an extraction result into one row per pixel. Band values
// at position j across all bands form row j of the polygon, the polygon's
// identifier and retained attributes are broadcast onto every row, and rows
// keep polygon order then pixel order.
func reshape(res *Result, opts Options, logger *slog.Logger) (*table.Table, error) {
	cols := make([]string, 0, len(res.Bands)+len(opts.IncludeColumns)+3)
	for _, b := range res.Bands {
		cols = append(cols, b.Name)
	}
	cols = append(cols, "polygon_id")
	cols = append(cols, opts.IncludeColumns...)
	if opts.Coverage {
		cols = append(cols, "cover_frac")
	}
	if opts.PixelIndex {
		cols = append(cols, "pixel_id")
	}
	out := table.New(cols)

	total := len(res.Polygons)
	rows := 0
	for i, p := range res.Polygons {
		n, err := pixelCount(res, &p)
		if err != nil {
			return nil, err
		}

		attrs, err := broadcastAttrs(&p, opts, logger)
		if err != nil {
			return nil, err
		}

		for j := 0; j < n; j++ {
			row := make([]table.Value, 0, len(cols))
			for b := range res.Bands {
				row = append(row, bandCell(p.Values[b][j], &res.Bands[b], opts.Fill))
			}
			row = append(row, p.ID)
			row = append(row, attrs...)
			if opts.Coverage {
				row = append(row, table.Float(p.Coverage[j]))
			}
			if opts.PixelIndex {
				row = append(row, table.Int(int64(j+1)))
			}
			if err := out.Append(row); err != nil {
				return nil, err
			}
		}
		rows += n

		if opts.Progress != nil {
			opts.Progress.Polygon(i+1, total, p.ID.Encode())
		}
	}

	if rows == 0 {
		return nil, &InputError{Source: opts.Polygons, Err: ErrEmptyExtent}
	}
	return out, nil
}

// pixelCount returns the polygon's pixel count from its first band and
// verifies every other band and the coverage sequence agree on it.
func pixelCount(res *Result, p *PolygonResult) (int, error) {
	if len(p.Values) != len(res.Bands) {
		return 0, &RowLengthMismatchError{
			PolygonID: p.ID.Encode(),
			Band:      "(band count)",
			Want:      len(res.Bands),
			Got:       len(p.Values),
		}
	}
	if len(p.Values) == 0 {
		return 0, nil
	}
	n := len(p.Values[0])
	for b := 1; b < len(p.Values); b++ {
		if len(p.Values[b]) != n {
			return 0, &RowLengthMismatchError{
				PolygonID: p.ID.Encode(),
				Band:      res.Bands[b].Name,
				Want:      n,
				Got:       len(p.Values[b]),
			}
		}
	}
	if p.Coverage != nil && len(p.Coverage) != n {
		return 0, &RowLengthMismatchError{
			PolygonID: p.ID.Encode(),
			Band:      "cover_frac",
			Want:      n,
			Got:       len(p.Coverage),
		}
	}
	if n > 0 && p.Coverage == nil {
		return 0, &RowLengthMismatchError{
			PolygonID: p.ID.Encode(),
			Band:      "cover_frac",
			Want:      n,
			Got:       0,
		}
	}
	return n, nil
}

// broadcastAttrs resolves the retained attribute cells for one polygon, in
// caller column order. A null attribute is substituted with the fill value
// when one is set, matching the nodata policy for band cells.
func broadcastAttrs(p *PolygonResult, opts Options, logger *slog.Logger) ([]table.Value, error) {
	attrs := make([]table.Value, 0, len(opts.IncludeColumns))
	for _, col := range opts.IncludeColumns {
		v, ok := p.Attributes[col]
		if !ok {
			return nil, &SchemaError{Column: col}
		}
		if v.IsNull() && opts.Fill != nil {
			logger.Warn("attribute missing, substituting fill value",
				"polygon_id", p.ID.Encode(), "column", col)
			v = *opts.Fill
		}
		attrs = append(attrs, v)
	}
	return attrs, nil
}

// bandCell converts one raw band entry to a table cell, applying the nodata
// policy: entries equal to the band's nodata marker, or NaN, become the fill
// value when set and null otherwise.
func bandCell(raw float64, band *Band, fill *table.Value) table.Value {
	undefined := math.IsNaN(raw) || (band.HasNoData && raw == band.NoData)
	if !undefined {
		return table.Float(raw)
	}
	if fill != nil {
		return *fill
	}
	return table.Null()
}

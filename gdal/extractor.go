// Package gdal implements the pixeltable extraction contract on top of GDAL
// via github.com/airbusgeo/godal. All raster decoding, polygon parsing and
// rasterization is GDAL's; this package only marshals arguments and results.
//
// Inclusion policy (fixed): a polygon's geometry is rasterized into an
// in-memory mask supersampled SubCells x SubCells per raster pixel, the mask
// is box-averaged to a per-pixel coverage fraction, and a pixel is included
// iff its fraction is greater than zero. Band values are returned raw; nodata
// pixels keep the band's nodata marker so all bands of a polygon report
// equal-length sequences.
package gdal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/airbusgeo/godal"

	"github.com/geolab-tools/pixeltable"
	"github.com/geolab-tools/pixeltable/table"
)

var registerOnce sync.Once

// DefaultSubCells is the supersampling factor used for coverage fractions
// when none is configured: 8x8 subcells give fractions quantized to 1/64.
const DefaultSubCells = 8

// Extractor reads rasters and polygon collections through GDAL.
type Extractor struct {
	// SubCells is the per-axis supersampling factor for coverage fractions.
	SubCells int

	// Logger for reprojection and skip warnings; nil means silent.
	Logger *slog.Logger
}

var _ pixeltable.Extractor = (*Extractor)(nil)

func New() *Extractor {
	return &Extractor{SubCells: DefaultSubCells}
}

// Extract opens both datasets, walks the polygon layer once and collects the
// per-pixel sequences for every polygon. Datasets are closed on all exit
// paths.
func (e *Extractor) Extract(ctx context.Context, req pixeltable.Request) (*pixeltable.Result, error) {
	registerOnce.Do(godal.RegisterAll)

	logger := e.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	sub := e.SubCells
	if sub <= 0 {
		sub = DefaultSubCells
	}

	rds, err := godal.Open(req.Raster, godal.RasterOnly())
	if err != nil {
		return nil, &pixeltable.InputError{Source: req.Raster, Err: err}
	}
	defer rds.Close()

	vds, err := godal.Open(req.Polygons, godal.VectorOnly())
	if err != nil {
		return nil, &pixeltable.InputError{Source: req.Polygons, Err: err}
	}
	defer vds.Close()

	grd, err := newGrid(rds)
	if err != nil {
		return nil, &pixeltable.InputError{Source: req.Raster, Err: err}
	}

	layers := vds.Layers()
	if len(layers) == 0 {
		return nil, &pixeltable.InputError{Source: req.Polygons, Err: errors.New("no vector layer")}
	}
	layer := layers[0]

	rasterSR := rds.SpatialRef()
	layerSR := layer.SpatialRef()
	reproject := rasterSR != nil && layerSR != nil && !layerSR.IsSame(rasterSR)
	if reproject {
		logger.Warn("polygon srs differs from raster srs, reprojecting geometries")
	}

	bands := rds.Bands()
	res := &pixeltable.Result{Bands: make([]pixeltable.Band, len(bands))}
	for i, b := range bands {
		nd, ok := b.NoData()
		res.Bands[i] = pixeltable.Band{
			Name:      fmt.Sprintf("band_%d", i+1),
			NoData:    nd,
			HasNoData: ok,
		}
	}

	layer.ResetReading()
	for idx := 1; ; idx++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		feat := layer.NextFeature()
		if feat == nil {
			break
		}
		pr, err := e.extractFeature(feat, idx, req.Columns, grd, bands, rasterSR, reproject, sub)
		feat.Close()
		if err != nil {
			return nil, err
		}
		if pr == nil {
			logger.Debug("polygon outside raster extent, skipped", "polygon", idx)
			continue
		}
		res.Polygons = append(res.Polygons, *pr)
	}

	return res, nil
}

// extractFeature returns the per-pixel sequences for one feature, or nil when
// the feature covers no pixel.
func (e *Extractor) extractFeature(feat *godal.Feature, idx int, cols []string, grd *grid,
	bands []godal.Band, rasterSR *godal.SpatialRef, reproject bool, sub int) (*pixeltable.PolygonResult, error) {

	attrs, err := featureAttrs(feat, cols)
	if err != nil {
		return nil, err
	}

	geom := feat.Geometry()
	if geom == nil || geom.Empty() {
		return nil, nil
	}
	if reproject {
		if err := geom.Reproject(rasterSR); err != nil {
			return nil, &pixeltable.InputError{Err: fmt.Errorf("reproject polygon %d: %w", idx, err)}
		}
	}

	bounds, err := geom.Bounds()
	if err != nil {
		return nil, &pixeltable.InputError{Err: fmt.Errorf("bounds of polygon %d: %w", idx, err)}
	}
	win, ok := grd.window(bounds)
	if !ok {
		return nil, nil
	}

	frac, err := coverage(geom, grd, win, rasterSR, sub)
	if err != nil {
		return nil, fmt.Errorf("coverage of polygon %d: %w", idx, err)
	}

	included := make([]int, 0, len(frac))
	for j, f := range frac {
		if f > 0 {
			included = append(included, j)
		}
	}
	if len(included) == 0 {
		return nil, nil
	}

	pr := &pixeltable.PolygonResult{
		ID:         table.Int(int64(idx)),
		Attributes: attrs,
		Values:     make([][]float64, len(bands)),
		Coverage:   make([]float64, len(included)),
	}
	for k, j := range included {
		pr.Coverage[k] = frac[j]
	}

	buf := make([]float64, win.w*win.h)
	for b := range bands {
		if err := bands[b].Read(win.x0, win.y0, buf, win.w, win.h); err != nil {
			return nil, &pixeltable.InputError{Err: fmt.Errorf("read band %d window of polygon %d: %w", b+1, idx, err)}
		}
		seq := make([]float64, len(included))
		for k, j := range included {
			seq[k] = buf[j]
		}
		pr.Values[b] = seq
	}

	return pr, nil
}

// featureAttrs reads the requested attribute columns off one feature,
// converting OGR field types to table cells.
func featureAttrs(feat *godal.Feature, cols []string) (map[string]table.Value, error) {
	fields := feat.Fields()
	attrs := make(map[string]table.Value, len(cols))
	for _, col := range cols {
		fld, ok := fields[col]
		if !ok {
			return nil, &pixeltable.SchemaError{Column: col}
		}
		switch fld.Type() {
		case godal.FTInt, godal.FTInt64:
			attrs[col] = table.Int(fld.Int())
		case godal.FTReal:
			attrs[col] = table.Float(fld.Float())
		case godal.FTString:
			attrs[col] = table.String(fld.String())
		default:
			attrs[col] = table.Null()
		}
	}
	return attrs, nil
}

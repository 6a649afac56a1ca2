// Package pixeltable reshapes the output of a polygon-on-raster coverage
// extraction into a flat table with one row per pixel.
//
// An Extractor (the gdal subpackage ships a GDAL-backed one) reports, for
// each polygon and each raster band, the ordered sequence of pixel values the
// polygon covers, plus per-pixel coverage fractions. Extract un-nests those
// sequences into individual rows, aligning values across bands by pixel
// position, and broadcasts the polygon's identifier and retained attribute
// columns onto every row:
//
//	tbl, err := pixeltable.Extract(ctx, gdal.New(), pixeltable.Options{
//		Raster:         "s2_tile.tif",
//		Polygons:       "fields.gpkg",
//		IncludeColumns: []string{"class"},
//	})
//
// The transform performs no spatial math of its own: geometry/raster
// intersection and coverage fractions belong entirely to the extractor.
package pixeltable

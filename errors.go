package pixeltable

import (
	"errors"
	"fmt"
)

// ErrEmptyExtent reports that no polygon intersected the raster extent, so
// the output table would have zero rows.
var ErrEmptyExtent = errors.New("no polygons intersect the raster extent")

// InputError wraps a failure to resolve or read one of the two input
// datasets, or a spatial reference mismatch the extractor could not bridge.
type InputError struct {
	Source string
	Err    error
}

func (e *InputError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("input: %v", e.Err)
	}
	return fmt.Sprintf("input %s: %v", e.Source, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }

// SchemaError reports a requested attribute column that does not exist on
// the polygon collection.
type SchemaError struct {
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("column %q not found in polygon collection", e.Column)
}

// RowLengthMismatchError reports a polygon whose band sequences do not agree
// on the pixel count. This signals a collaborator contract violation (most
// often bands with differing nodata patterns) and is never patched by
// truncation or padding.
type RowLengthMismatchError struct {
	PolygonID string
	Band      string
	Want      int
	Got       int
}

func (e *RowLengthMismatchError) Error() string {
	return fmt.Sprintf("polygon %s: band %s has %d pixels, expected %d; bands likely differ in nodata patterns",
		e.PolygonID, e.Band, e.Got, e.Want)
}

package gdal

import (
	"errors"
	"math"

	"github.com/airbusgeo/godal"
)

// grid describes the raster's pixel grid: size plus an axis-aligned
// geotransform. Rotated rasters are rejected up front; the window arithmetic
// below assumes north-up grids, like the original extraction routine.
type grid struct {
	sizeX, sizeY int
	originX      float64
	originY      float64
	pixelW       float64 // geotransform[1], > 0
	pixelH       float64 // geotransform[5], < 0 for north-up rasters
}

func newGrid(ds *godal.Dataset) (*grid, error) {
	gt, err := ds.GeoTransform()
	if err != nil {
		return nil, err
	}
	if gt[2] != 0 || gt[4] != 0 {
		return nil, errors.New("rotated rasters are not supported")
	}
	if gt[1] == 0 || gt[5] == 0 {
		return nil, errors.New("degenerate geotransform")
	}
	st := ds.Structure()
	return &grid{
		sizeX:   st.SizeX,
		sizeY:   st.SizeY,
		originX: gt[0],
		originY: gt[3],
		pixelW:  gt[1],
		pixelH:  gt[5],
	}, nil
}

// window is a pixel-aligned rectangle within the raster.
type window struct {
	x0, y0 int
	w, h   int
}

// window converts geographic bounds (minx, miny, maxx, maxy) to the smallest
// pixel window containing them, clamped to the raster extent. ok is false
// when the bounds fall entirely outside the raster.
func (g *grid) window(bounds [4]float64) (window, bool) {
	cx0 := (bounds[0] - g.originX) / g.pixelW
	cx1 := (bounds[2] - g.originX) / g.pixelW
	cy0 := (bounds[3] - g.originY) / g.pixelH
	cy1 := (bounds[1] - g.originY) / g.pixelH
	if g.pixelH > 0 {
		cy0, cy1 = cy1, cy0
	}

	x0 := clamp(int(math.Floor(cx0)), 0, g.sizeX)
	x1 := clamp(int(math.Ceil(cx1)), 0, g.sizeX)
	y0 := clamp(int(math.Floor(cy0)), 0, g.sizeY)
	y1 := clamp(int(math.Ceil(cy1)), 0, g.sizeY)
	if x1 <= x0 || y1 <= y0 {
		return window{}, false
	}
	return window{x0: x0, y0: y0, w: x1 - x0, h: y1 - y0}, true
}

// geo returns the geographic origin of the window's top-left corner.
func (g *grid) geo(win window) (x, y float64) {
	return g.originX + float64(win.x0)*g.pixelW, g.originY + float64(win.y0)*g.pixelH
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

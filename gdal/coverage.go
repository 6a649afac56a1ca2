package gdal

import (
	"fmt"

	"github.com/airbusgeo/godal"
)

// coverage rasterizes the geometry onto an in-memory byte mask covering the
// window at sub x sub resolution and box-averages it into one coverage
// fraction per raster pixel, row-major over the window. The geometry work is
// GDAL's; only the averaging happens here.
func coverage(geom *godal.Geometry, g *grid, win window, sr *godal.SpatialRef, sub int) ([]float64, error) {
	mw, mh := win.w*sub, win.h*sub
	mask, err := godal.Create(godal.Memory, "", 1, godal.Byte, mw, mh)
	if err != nil {
		return nil, fmt.Errorf("create mask dataset: %w", err)
	}
	defer mask.Close()

	ox, oy := g.geo(win)
	gt := [6]float64{ox, g.pixelW / float64(sub), 0, oy, 0, g.pixelH / float64(sub)}
	if err := mask.SetGeoTransform(gt); err != nil {
		return nil, fmt.Errorf("set mask geotransform: %w", err)
	}
	if sr != nil {
		if err := mask.SetSpatialRef(sr); err != nil {
			return nil, fmt.Errorf("set mask srs: %w", err)
		}
	}

	if err := mask.RasterizeGeometry(geom, godal.Values(1)); err != nil {
		return nil, fmt.Errorf("rasterize geometry: %w", err)
	}

	buf := make([]byte, mw*mh)
	if err := mask.Bands()[0].Read(0, 0, buf, mw, mh); err != nil {
		return nil, fmt.Errorf("read mask: %w", err)
	}

	frac := make([]float64, win.w*win.h)
	cells := float64(sub * sub)
	for py := 0; py < win.h; py++ {
		for px := 0; px < win.w; px++ {
			hit := 0
			for sy := 0; sy < sub; sy++ {
				row := (py*sub+sy)*mw + px*sub
				for sx := 0; sx < sub; sx++ {
					if buf[row+sx] != 0 {
						hit++
					}
				}
			}
			frac[py*win.w+px] = float64(hit) / cells
		}
	}
	return frac, nil
}

package gdal

import "testing"

// 10x10 north-up grid, origin (100, 200), 1-unit pixels.
func testGrid() *grid {
	return &grid{
		sizeX:   10,
		sizeY:   10,
		originX: 100,
		originY: 200,
		pixelW:  1,
		pixelH:  -1,
	}
}

func TestWindow_ContainsBoundsSnappedToPixels(t *testing.T) {
	g := testGrid()
	// bounds minx,miny,maxx,maxy
	win, ok := g.window([4]float64{102.3, 195.2, 104.9, 197.8})
	if !ok {
		t.Fatalf("window unexpectedly empty")
	}
	if win.x0 != 2 || win.w != 3 {
		t.Fatalf("x window = (%d,%d), want (2,3)", win.x0, win.w)
	}
	// maxy 197.8 -> row 2.2 -> y0=2; miny 195.2 -> row 4.8 -> y1=5
	if win.y0 != 2 || win.h != 3 {
		t.Fatalf("y window = (%d,%d), want (2,3)", win.y0, win.h)
	}
}

func TestWindow_ClampsToRasterExtent(t *testing.T) {
	g := testGrid()
	win, ok := g.window([4]float64{95, 185, 105, 205})
	if !ok {
		t.Fatalf("window unexpectedly empty")
	}
	// bounds overhang the raster on three sides: x clamps to [0,5), y spans
	// the full extent
	if win.x0 != 0 || win.y0 != 0 || win.w != 5 || win.h != 10 {
		t.Fatalf("window = %+v, want {0 0 5 10}", win)
	}
}

func TestWindow_OutsideExtentIsEmpty(t *testing.T) {
	g := testGrid()
	if _, ok := g.window([4]float64{120, 195, 125, 197}); ok {
		t.Fatalf("bounds east of the raster must yield no window")
	}
	if _, ok := g.window([4]float64{102, 210, 104, 215}); ok {
		t.Fatalf("bounds north of the raster must yield no window")
	}
}

func TestGeo_ReturnsWindowOrigin(t *testing.T) {
	g := testGrid()
	x, y := g.geo(window{x0: 2, y0: 3, w: 1, h: 1})
	if x != 102 || y != 197 {
		t.Fatalf("geo = (%g,%g), want (102,197)", x, y)
	}
}

func TestWindow_SouthUpGrid(t *testing.T) {
	g := testGrid()
	g.pixelH = 1
	g.originY = 190
	win, ok := g.window([4]float64{102, 191.5, 103, 193.5})
	if !ok {
		t.Fatalf("window unexpectedly empty")
	}
	if win.y0 != 1 || win.h != 3 {
		t.Fatalf("y window = (%d,%d), want (1,3)", win.y0, win.h)
	}
}

package main

import (
	"image"
	"image/color"
	"testing"
)

func TestShapeInfluenceNoShape(t *testing.T) {
	coords := [][2]int{{0, 0}, {5, 5}, {-1, 3}, {99, 99}}
	for _, c := range coords {
		if got := shapeInfluence(nil, c[0], c[1], 10, 10, 0.7); got != 1 {
			t.Errorf("nil shape at (%d,%d): got %v, want 1", c[0], c[1], got)
		}
		if got := shapeInfluence(&BrightnessGrid{}, c[0], c[1], 10, 10, 0.7); got != 1 {
			t.Errorf("empty shape at (%d,%d): got %v, want 1", c[0], c[1], got)
		}
	}
}

func TestShapeInfluenceRange(t *testing.T) {
	grid := &BrightnessGrid{
		Width:  2,
		Height: 2,
		Values: []float64{0, 0.25, 0.5, 1},
	}
	for _, k := range []float64{0, 0.3, 0.7, 1} {
		for x := 0; x < 10; x++ {
			for y := 0; y < 10; y++ {
				got := shapeInfluence(grid, x, y, 10, 10, k)
				if got < 1-k-1e-9 || got > 1+1e-9 {
					t.Errorf("influence %v at (%d,%d): got %v, outside [%v,1]", k, x, y, got, 1-k)
				}
			}
		}
	}
}

func TestShapeInfluenceCentering(t *testing.T) {
	// A 2x2 grid centered in 10x10 cells starts at offset (4,4).
	grid := &BrightnessGrid{
		Width:  2,
		Height: 2,
		Values: []float64{1, 1, 1, 1},
	}
	if got := shapeInfluence(grid, 4, 4, 10, 10, 0.8); got != 1 {
		t.Errorf("cell (4,4) should map to grid (0,0) with brightness 1: got %v", got)
	}
	// One cell left of the shape is outside its bounds.
	if got := shapeInfluence(grid, 3, 4, 10, 10, 0.8); got != 1-0.8 {
		t.Errorf("off-shape cell: got %v, want %v", got, 1-0.8)
	}
	if got := shapeInfluence(grid, 6, 4, 10, 10, 0.8); got != 1-0.8 {
		t.Errorf("cell past shape right edge: got %v, want %v", got, 1-0.8)
	}
}

func TestShapeInfluenceBlend(t *testing.T) {
	grid := &BrightnessGrid{
		Width:  1,
		Height: 1,
		Values: []float64{0.5},
	}
	// Grid centers at (1,1) inside 3x3 cells.
	got := shapeInfluence(grid, 1, 1, 3, 3, 0.6)
	want := 0.5*0.6 + (1 - 0.6)
	if got != want {
		t.Errorf("blend: got %v, want %v", got, want)
	}
}

func TestBrightnessGridAlphaZero(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 0})
	img.SetNRGBA(1, 0, color.NRGBA{R: 255, G: 255, B: 255, A: 255})

	grid := brightnessGrid(img)
	if got := grid.At(0, 0); got != 0 {
		t.Errorf("transparent pixel: got %v, want 0", got)
	}
	if got := grid.At(1, 0); got != 1 {
		t.Errorf("opaque white pixel: got %v, want 1", got)
	}
}

func TestBrightnessGridAverage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, G: 0, B: 0, A: 255})

	grid := brightnessGrid(img)
	want := 255.0 / 3.0 / 255.0
	if got := grid.At(0, 0); got != want {
		t.Errorf("pure red: got %v, want %v", got, want)
	}
}

func TestBrightnessGridEmptyImage(t *testing.T) {
	grid := brightnessGrid(image.NewNRGBA(image.Rect(0, 0, 0, 0)))
	if !grid.Empty() {
		t.Error("zero-dimension image should yield an empty grid")
	}
}

func TestDownscaleLimitsLongSide(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 400, 100))
	dst := downscale(img)
	if dst.Bounds().Dx() != 200 || dst.Bounds().Dy() != 50 {
		t.Errorf("400x100 should scale to 200x50, got %dx%d", dst.Bounds().Dx(), dst.Bounds().Dy())
	}

	small := image.NewNRGBA(image.Rect(0, 0, 40, 30))
	dst = downscale(small)
	if dst.Bounds().Dx() != 40 || dst.Bounds().Dy() != 30 {
		t.Errorf("small image should pass through, got %dx%d", dst.Bounds().Dx(), dst.Bounds().Dy())
	}
}

func TestFloorDiv(t *testing.T) {
	cases := []struct{ a, b, want int }{
		{8, 2, 4},
		{9, 2, 4},
		{-3, 2, -2},
		{-4, 2, -2},
	}
	for _, c := range cases {
		if got := floorDiv(c.a, c.b); got != c.want {
			t.Errorf("floorDiv(%d,%d) = %d, want %d", c.a, c.b, got, c.want)
		}
	}
}

package main

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	xdraw "golang.org/x/image/draw"
)

// loadShapeImage decodes an image file, downscales it so the longer side
// is at most maxShapeDim pixels, and maps it to a brightness grid.
func loadShapeImage(path string) (*BrightnessGrid, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %v", path, err)
	}
	return brightnessGrid(downscale(img)), nil
}

// downscale resizes to at most maxShapeDim on the longer side. Images
// already small enough pass through unscaled.
func downscale(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= 0 || h <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}

	scale := 1.0
	if sw := float64(maxShapeDim) / float64(w); sw < scale {
		scale = sw
	}
	if sh := float64(maxShapeDim) / float64(h); sh < scale {
		scale = sh
	}

	dw := int(float64(w) * scale)
	dh := int(float64(h) * scale)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewNRGBA(image.Rect(0, 0, dw, dh))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, bounds, xdraw.Src, nil)
	return dst
}

// brightnessGrid converts a pixel buffer to normalized brightness values.
// Fully transparent pixels read as empty, not bright.
func brightnessGrid(img *image.NRGBA) *BrightnessGrid {
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	if w <= 0 || h <= 0 {
		return &BrightnessGrid{}
	}

	grid := &BrightnessGrid{
		Width:  w,
		Height: h,
		Values: make([]float64, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			r, g, b, a := img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]
			if a == 0 {
				continue
			}
			grid.Values[y*w+x] = (float64(r) + float64(g) + float64(b)) / 3.0 / 255.0
		}
	}
	return grid
}

// shapeInfluence blends a layer's brightness grid into a per-cell factor.
// With no shape attached every cell resolves to 1. The grid is centered
// within the cell grid; cells outside its bounds return 1-influence so
// higher influence suppresses off-shape regions harder. The result is
// always within [1-influence, 1].
func shapeInfluence(shape *BrightnessGrid, x, y, cols, rows int, influence float64) float64 {
	if shape.Empty() {
		return 1
	}
	offX := floorDiv(cols-shape.Width, 2)
	offY := floorDiv(rows-shape.Height, 2)
	sx := x - offX
	sy := y - offY
	if sx < 0 || sy < 0 || sx >= shape.Width || sy >= shape.Height {
		return 1 - influence
	}
	return shape.At(sx, sy)*influence + (1 - influence)
}

// floorDiv divides rounding toward negative infinity, so a shape larger
// than the cell grid still centers correctly.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math/rand"
	"time"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
)

// Engine owns the ordered layer list, the shared seed table and drop
// state, and composites all visible layers into one RGBA frame. All
// mutation happens from the single bubbletea update goroutine; the
// drop batch is advanced exactly once per composite pass.
type Engine struct {
	width    int
	height   int
	cellSize int // grid geometry follows the active layer's cell size
	cols     int
	rows     int

	seeds []Seed
	drops []Drop

	layers []*Layer
	active int
	nextID int

	rng   *rand.Rand
	font  *truetype.Font
	faces map[int]font.Face
}

func NewEngine(width, height int) *Engine {
	ttf, err := truetype.Parse(gomono.TTF)
	if err != nil {
		// gomono ships with the binary; a parse failure is a build defect.
		panic(fmt.Sprintf("failed to parse embedded font: %v", err))
	}

	e := &Engine{
		width:  width,
		height: height,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
		font:   ttf,
		faces:  make(map[int]font.Face),
	}
	e.addLayerInternal()
	e.Resize(e.layers[0].Config.CellSize)
	return e
}

// Resize regenerates the seed table and drop batch for a new grid
// geometry. Callers debounce rapid cell-size edits before reaching here.
func (e *Engine) Resize(cellSize int) {
	cellSize = clampInt(cellSize, minCellSize, maxCellSize)
	e.cellSize = cellSize
	e.cols = e.width / cellSize
	e.rows = e.height / cellSize
	if e.cols < 0 {
		e.cols = 0
	}
	if e.rows < 0 {
		e.rows = 0
	}

	e.seeds = make([]Seed, e.cols*e.rows)
	for i := range e.seeds {
		e.seeds[i] = Seed{
			R1: e.rng.Float64(),
			R2: e.rng.Float64(),
			R3: e.rng.Float64(),
		}
	}

	e.drops = make([]Drop, e.cols)
	for x := range e.drops {
		e.drops[x] = Drop{
			X:      x,
			Y:      e.rng.Float64() * float64(e.rows),
			Speed:  minDropSpeed + e.rng.Float64()*(maxDropSpeed-minDropSpeed),
			Length: minDropLength + e.rng.Intn(maxDropLength-minDropLength),
		}
	}
}

// advanceDrops applies the per-pass fall rule to the shared drop batch.
func (e *Engine) advanceDrops() {
	for i := range e.drops {
		d := &e.drops[i]
		d.Y += d.Speed * dropFallRate
		if d.Y > float64(e.rows+d.Length) {
			d.Y = -float64(d.Length)
			d.Speed = minDropSpeed + e.rng.Float64()*(maxDropSpeed-minDropSpeed)
		}
	}
}

func (e *Engine) addLayerInternal() *Layer {
	e.nextID++
	layer := &Layer{
		ID:      e.nextID,
		Name:    fmt.Sprintf("Layer %d", e.nextID),
		Visible: true,
		Opacity: 1.0,
		Config:  defaultConfig,
	}
	e.layers = append(e.layers, layer)
	return layer
}

// AddLayer appends a new layer with default config. Exceeding the layer
// cap is a silent no-op.
func (e *Engine) AddLayer() *Layer {
	if len(e.layers) >= maxLayers {
		return nil
	}
	layer := e.addLayerInternal()
	e.active = len(e.layers) - 1
	return layer
}

// RemoveLayer deletes the layer at index i. Removing the last remaining
// layer is a silent no-op. If the active layer goes away, active falls
// back to the first remaining layer.
func (e *Engine) RemoveLayer(i int) bool {
	if len(e.layers) <= 1 || i < 0 || i >= len(e.layers) {
		return false
	}
	removingActive := i == e.active
	e.layers = append(e.layers[:i], e.layers[i+1:]...)
	switch {
	case removingActive:
		e.active = 0
	case i < e.active:
		e.active--
	}
	return true
}

// MoveLayer reorders the list by an index pair, keeping the active
// selection pinned to the same layer.
func (e *Engine) MoveLayer(from, to int) bool {
	n := len(e.layers)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	activeLayer := e.layers[e.active]
	layer := e.layers[from]
	e.layers = append(e.layers[:from], e.layers[from+1:]...)
	e.layers = append(e.layers[:to], append([]*Layer{layer}, e.layers[to:]...)...)
	for i, l := range e.layers {
		if l == activeLayer {
			e.active = i
			break
		}
	}
	return true
}

func (e *Engine) SetActive(i int) bool {
	if i < 0 || i >= len(e.layers) {
		return false
	}
	e.active = i
	return true
}

func (e *Engine) ActiveLayer() *Layer {
	return e.layers[e.active]
}

func (e *Engine) Layers() []*Layer {
	return e.layers
}

// UpdateActiveConfig applies a mutation to the active layer's config and
// re-clamps it so out-of-range values never reach the renderers.
func (e *Engine) UpdateActiveConfig(mutate func(*LayerConfig)) {
	cfg := &e.ActiveLayer().Config
	mutate(cfg)
	clampLayerConfig(cfg)
}

// AttachShape sets the active layer's shape image and brightness grid.
func (e *Engine) AttachShape(path string, grid *BrightnessGrid) {
	layer := e.ActiveLayer()
	layer.ShapePath = path
	layer.Shape = grid
}

// ClearShape drops both the shape reference and its brightness grid.
func (e *Engine) ClearShape() {
	layer := e.ActiveLayer()
	layer.ShapePath = ""
	layer.Shape = nil
}

// Composite renders one full frame: background fill from the bottom
// layer, then each visible layer alpha-over merged in list order with
// its own opacity, then one drop advance for the whole pass.
func (e *Engine) Composite(frame int) *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, e.width, e.height))

	r, g, b, err := parseHexColor(e.layers[0].Config.Background)
	if err != nil {
		r, g, b = 0, 0, 0
	}
	draw.Draw(out, out.Bounds(), image.NewUniform(color.RGBA{r, g, b, 255}), image.Point{}, draw.Src)

	for _, layer := range e.layers {
		if !layer.Visible {
			continue
		}
		surface := gg.NewContext(e.width, e.height)
		e.renderLayer(surface, layer, frame)
		mask := image.NewUniform(color.Alpha{A: uint8(clampFloat(layer.Opacity, 0, 1)*255 + 0.5)})
		draw.DrawMask(out, out.Bounds(), surface.Image(), image.Point{}, mask, image.Point{}, draw.Over)
	}

	e.advanceDrops()
	return out
}

// renderLayer dispatches to the layer's pattern renderer on a fresh
// transparent surface. Degenerate grids no-op.
func (e *Engine) renderLayer(dc *gg.Context, layer *Layer, frame int) {
	cfg := layer.Config
	cols := e.width / cfg.CellSize
	rows := e.height / cfg.CellSize
	if cols <= 0 || rows <= 0 || len(e.seeds) == 0 {
		return
	}

	dc.SetFontFace(e.faceFor(cfg.CellSize))
	p := newGlyphPainter(dc, cfg)

	switch cfg.Pattern {
	case PatternRain:
		e.renderRain(p, layer, cols, rows)
	case PatternWave:
		e.renderWave(p, layer, cols, rows, frame)
	case PatternStatic:
		e.renderStatic(p, layer, cols, rows, frame)
	case PatternGlitch:
		e.renderGlitch(p, layer, cols, rows, frame)
	case PatternPulse:
		e.renderPulse(p, layer, cols, rows, frame)
	}
}

func (e *Engine) faceFor(cellSize int) font.Face {
	if face, ok := e.faces[cellSize]; ok {
		return face
	}
	face := truetype.NewFace(e.font, &truetype.Options{
		Size:    float64(cellSize) * 0.9,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	e.faces[cellSize] = face
	return face
}

// seedAt indexes the flat table with the standard (col*rows+row) layout
// plus an optional frame-derived offset, wrapping on table length.
func (e *Engine) seedAt(col, row, rows, offset int) Seed {
	n := len(e.seeds)
	i := (col*rows + row + offset) % n
	if i < 0 {
		i += n
	}
	return e.seeds[i]
}

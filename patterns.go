package main

import (
	"math"

	"github.com/fogleman/gg"
)

// glyphPainter draws symbols for one layer pass. The base foreground
// color is parsed once and per-cell brightness becomes the draw alpha.
// Halo offsets for glow are recomputed only when the blur value changes,
// matching the elided-state-write behavior of the drawing context.
type glyphPainter struct {
	dc      *gg.Context
	r, g, b float64
	cell    float64

	glow      bool
	intensity float64
	radius    float64
	lastBlur  int
	halo      []haloOffset
}

type haloOffset struct {
	dx, dy float64
}

const glowAlphaScale = 0.16

func newGlyphPainter(dc *gg.Context, cfg LayerConfig) *glyphPainter {
	r, g, b, err := parseHexColor(cfg.Foreground)
	if err != nil {
		r, g, b = 255, 255, 255
	}
	return &glyphPainter{
		dc:        dc,
		r:         float64(r) / 255.0,
		g:         float64(g) / 255.0,
		b:         float64(b) / 255.0,
		cell:      float64(cfg.CellSize),
		glow:      cfg.Glow,
		intensity: cfg.GlowIntensity,
		radius:    cfg.GlowRadius,
		lastBlur:  -1,
	}
}

// paint draws one glyph centered in cell (col,row), optionally jittered.
func (p *glyphPainter) paint(sym string, col, row int, brightness, jx, jy float64) {
	if brightness <= 0 {
		return
	}
	if brightness > 1 {
		brightness = 1
	}
	x := (float64(col)+0.5)*p.cell + jx
	y := (float64(row)+0.5)*p.cell + jy

	if p.glow {
		blur := int(p.intensity * brightness * (p.radius / 10))
		if blur != p.lastBlur {
			p.halo = haloOffsets(blur)
			p.lastBlur = blur
		}
		if blur > 0 {
			p.dc.SetRGBA(p.r, p.g, p.b, brightness*glowAlphaScale)
			for _, o := range p.halo {
				p.dc.DrawStringAnchored(sym, x+o.dx, y+o.dy, 0.5, 0.5)
			}
		}
	}

	p.dc.SetRGBA(p.r, p.g, p.b, brightness)
	p.dc.DrawStringAnchored(sym, x, y, 0.5, 0.5)
}

// haloOffsets places eight ghost copies on a ring of the blur radius.
func haloOffsets(blur int) []haloOffset {
	if blur <= 0 {
		return nil
	}
	offsets := make([]haloOffset, 8)
	for i := range offsets {
		angle := float64(i) * math.Pi / 4
		offsets[i] = haloOffset{
			dx: math.Cos(angle) * float64(blur),
			dy: math.Sin(angle) * float64(blur),
		}
	}
	return offsets
}

// glyphAt maps a uniform [0,1) value onto the layer's symbol alphabet.
func glyphAt(syms []rune, u float64) string {
	idx := int(u * float64(len(syms)))
	if idx >= len(syms) {
		idx = len(syms) - 1
	}
	if idx < 0 {
		idx = 0
	}
	return string(syms[idx])
}

// glitchBurst reports whether frame falls in one of the two short jitter
// windows of the 80-frame cycle.
func glitchBurst(frame int) bool {
	phase := frame % glitchCycle
	if phase < 0 {
		phase += glitchCycle
	}
	return phase < 5 || (phase > 30 && phase < 35)
}

// rainBrightness fades a trail cell by its distance j behind the head.
// With the gradient disabled the cell keeps the bare influence value.
func rainBrightness(j, length int, infl, strength float64, gradient bool) float64 {
	if !gradient {
		return infl
	}
	return (1-float64(j)/float64(length))*infl*strength + (1 - strength)
}

// renderRain walks the shared drop batch and draws each drop's trail,
// brightest at the head. Near-invisible cells are skipped outright.
func (e *Engine) renderRain(p *glyphPainter, layer *Layer, cols, rows int) {
	cfg := layer.Config
	syms := []rune(cfg.Symbols)
	n := len(e.seeds)

	for _, d := range e.drops {
		if d.X >= cols {
			continue
		}
		head := int(d.Y)
		for j := 0; j < d.Length; j++ {
			y := head - j
			if y < 0 || y >= rows {
				continue
			}
			infl := shapeInfluence(layer.Shape, d.X, y, cols, rows, cfg.ShapeInfluence)
			brightness := rainBrightness(j, d.Length, infl, cfg.GradientStrength, cfg.Gradient)
			if brightness < minRainBrightness {
				continue
			}
			seed := e.seeds[(d.X+y)%n]
			p.paint(glyphAt(syms, seed.R1), d.X, y, brightness, 0, 0)
		}
	}
}

// renderWave modulates density with a traveling sine/cosine interference
// field.
func (e *Engine) renderWave(p *glyphPainter, layer *Layer, cols, rows, frame int) {
	cfg := layer.Config
	syms := []rune(cfg.Symbols)
	fr := float64(frame)

	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			waveAlpha := (math.Sin((float64(x)+fr*0.1)*0.3)*math.Cos((float64(y)+fr*0.1)*0.3) + 1) / 2
			infl := shapeInfluence(layer.Shape, x, y, cols, rows, cfg.ShapeInfluence)
			seed := e.seedAt(x, y, rows, 0)
			if seed.R1 >= cfg.Density*waveAlpha*infl {
				continue
			}
			brightness := infl
			if cfg.Gradient {
				brightness = waveAlpha*cfg.GradientStrength + (1-cfg.GradientStrength)*infl
			}
			p.paint(glyphAt(syms, seed.R2), x, y, brightness, 0, 0)
		}
	}
}

// renderStatic offsets the seed index by a frame-derived stride so the
// noise field changes every frame while staying reproducible. The
// multiplier 17 decorrelates consecutive frames against the table layout.
func (e *Engine) renderStatic(p *glyphPainter, layer *Layer, cols, rows, frame int) {
	cfg := layer.Config
	syms := []rune(cfg.Symbols)
	offset := frame * 17

	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			infl := shapeInfluence(layer.Shape, x, y, cols, rows, cfg.ShapeInfluence)
			seed := e.seedAt(x, y, rows, offset)
			if seed.R1 >= cfg.Density*infl {
				continue
			}
			brightness := infl
			if cfg.Gradient {
				brightness = seed.R2*infl*cfg.GradientStrength + (1-cfg.GradientStrength)*infl
			}
			p.paint(glyphAt(syms, seed.R3), x, y, brightness, 0, 0)
		}
	}
}

// renderGlitch draws a noise field with positional jitter applied to a
// small share of cells during short burst windows of the 80-frame cycle.
func (e *Engine) renderGlitch(p *glyphPainter, layer *Layer, cols, rows, frame int) {
	cfg := layer.Config
	syms := []rune(cfg.Symbols)

	burst := glitchBurst(frame)
	amplitude := math.Sin(float64(frame)*0.5) * float64(cfg.CellSize)

	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			infl := shapeInfluence(layer.Shape, x, y, cols, rows, cfg.ShapeInfluence)
			seed := e.seedAt(x, y, rows, 0)
			if seed.R2 >= cfg.Density*infl {
				continue
			}
			brightness := infl
			if cfg.Gradient {
				brightness = (0.5+seed.R3*0.5)*infl*cfg.GradientStrength + (1-cfg.GradientStrength)*infl
			}
			var jx, jy float64
			if burst && seed.R3 < glitchJitterOdds {
				jx = (seed.R1 - 0.5) * amplitude
				jy = (seed.R2 - 0.5) * amplitude
			}
			p.paint(glyphAt(syms, seed.R1), x, y, brightness, jx, jy)
		}
	}
}

// renderPulse breathes a radial field in and out of the grid center.
func (e *Engine) renderPulse(p *glyphPainter, layer *Layer, cols, rows, frame int) {
	cfg := layer.Config
	syms := []rune(cfg.Symbols)

	pulse := (math.Sin(float64(frame)*0.05) + 1) / 2
	cx := float64(cols) / 2
	cy := float64(rows) / 2
	maxDist := math.Hypot(cx, cy)
	if maxDist == 0 {
		return
	}

	for x := 0; x < cols; x++ {
		for y := 0; y < rows; y++ {
			normDist := math.Hypot(float64(x)-cx, float64(y)-cy) / maxDist
			infl := shapeInfluence(layer.Shape, x, y, cols, rows, cfg.ShapeInfluence)
			seed := e.seedAt(x, y, rows, 0)
			if seed.R1 >= cfg.Density*(1-normDist)*pulse*infl {
				continue
			}
			brightness := infl
			if cfg.Gradient {
				brightness = (1-normDist)*pulse*infl*cfg.GradientStrength + (1-cfg.GradientStrength)*infl
			}
			p.paint(glyphAt(syms, seed.R2), x, y, brightness, 0, 0)
		}
	}
}

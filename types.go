package main

// PatternKind selects which procedural renderer a layer uses.
type PatternKind int

const (
	PatternRain PatternKind = iota
	PatternWave
	PatternStatic
	PatternGlitch
	PatternPulse
)

func (p PatternKind) String() string {
	switch p {
	case PatternRain:
		return "rain"
	case PatternWave:
		return "wave"
	case PatternStatic:
		return "static"
	case PatternGlitch:
		return "glitch"
	case PatternPulse:
		return "pulse"
	}
	return "unknown"
}

// LayerConfig holds every parameter governing one layer's visual output.
// Values are clamped by clampLayerConfig before they reach the renderers.
type LayerConfig struct {
	Symbols          string
	Density          float64
	CellSize         int
	Foreground       string
	Background       string
	Interval         int // milliseconds between frames while playing
	Pattern          PatternKind
	Gradient         bool
	GradientStrength float64
	Glow             bool
	GlowIntensity    float64
	GlowRadius       float64
	ShapeInfluence   float64
}

// Layer is one visual composition unit. Shape is nil until an image
// is attached; ShapePath and Shape are always set and cleared together.
type Layer struct {
	ID        int
	Name      string
	Visible   bool
	Opacity   float64
	Config    LayerConfig
	ShapePath string
	Shape     *BrightnessGrid
}

// Seed is an immutable triplet of independent uniform draws in [0,1).
type Seed struct {
	R1, R2, R3 float64
}

// Drop is one rain-column fall state. X is fixed at creation; Y advances
// every composite pass and wraps above the top when it exits the bottom.
type Drop struct {
	X      int
	Y      float64
	Speed  float64
	Length int
}

// BrightnessGrid is a rectangular grid of normalized brightness values,
// one per downscaled source-image pixel.
type BrightnessGrid struct {
	Width  int
	Height int
	Values []float64
}

// At returns the brightness at (x, y). Callers must keep coordinates in
// bounds; the influence resolver does its own bounds handling.
func (g *BrightnessGrid) At(x, y int) float64 {
	return g.Values[y*g.Width+x]
}

// Empty reports whether the grid has no usable pixels.
func (g *BrightnessGrid) Empty() bool {
	return g == nil || g.Width <= 0 || g.Height <= 0
}

type Mode int

const (
	ModeNormal Mode = iota
	ModeRename
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSavePNG FileOperation = iota
	FileOpLoadImage
)

type ConfirmAction int

const (
	ConfirmDeleteLayer ConfirmAction = iota
	ConfirmClearShape
	ConfirmQuit
)

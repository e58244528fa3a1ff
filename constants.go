package main

const (
	maxLayers = 3

	minDensity = 0.1
	maxDensity = 1.0

	minCellSize = 6
	maxCellSize = 24

	minInterval = 10
	maxInterval = 200

	maxGlowIntensity = 20.0
	maxGlowRadius    = 30.0

	// Longest side of a shape image after downscaling.
	maxShapeDim = 200

	// Fraction of a drop's speed applied per composite pass.
	dropFallRate = 0.3

	minDropSpeed  = 0.5
	maxDropSpeed  = 2.0
	minDropLength = 10
	maxDropLength = 31 // exclusive upper bound for rand.Intn

	// Rain cells dimmer than this are not worth a draw call.
	minRainBrightness = 0.1

	// Glitch bursts repeat on an 80-frame cycle.
	glitchCycle      = 80
	glitchJitterOdds = 0.15
)

const (
	defaultCanvasWidth  = 800
	defaultCanvasHeight = 600

	exportBaseName = "dithered-pattern"
)

var defaultConfig = LayerConfig{
	Symbols:          symbolSets[0],
	Density:          0.6,
	CellSize:         12,
	Foreground:       foregroundPalette[0],
	Background:       backgroundPalette[0],
	Interval:         50,
	Pattern:          PatternRain,
	Gradient:         true,
	GradientStrength: 0.8,
	Glow:             false,
	GlowIntensity:    8,
	GlowRadius:       10,
	ShapeInfluence:   0.7,
}

var symbolSets = []string{
	"アイウエオカキクケコサシスセソタチツテト",
	"01",
	".:-=+*#%@",
	"█▓▒░",
	"·∙•◦○●",
	"abcdefghijklmnopqrstuvwxyz0123456789",
}

var foregroundPalette = []string{
	"#00ff41",
	"#00ffff",
	"#ff00ff",
	"#ffb000",
	"#ffffff",
	"#ff3355",
}

var backgroundPalette = []string{
	"#000000",
	"#0a0a12",
	"#001505",
	"#16161e",
}

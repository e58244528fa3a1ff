package main

import "testing"

func TestClampLayerConfig(t *testing.T) {
	cfg := LayerConfig{
		Symbols:          "",
		Density:          0,
		CellSize:         0,
		Foreground:       "not-a-color",
		Background:       "#zzzzzz",
		Interval:         5,
		Pattern:          PatternKind(99),
		GradientStrength: 1.5,
		GlowIntensity:    100,
		GlowRadius:       -4,
		ShapeInfluence:   2,
	}
	clampLayerConfig(&cfg)

	if cfg.Symbols == "" {
		t.Error("empty symbol alphabet must be replaced")
	}
	if cfg.Density != minDensity {
		t.Errorf("density: got %v, want %v", cfg.Density, minDensity)
	}
	if cfg.CellSize != minCellSize {
		t.Errorf("cell size: got %d, want %d", cfg.CellSize, minCellSize)
	}
	if cfg.Interval != minInterval {
		t.Errorf("interval: got %d, want %d", cfg.Interval, minInterval)
	}
	if cfg.Pattern != PatternRain {
		t.Errorf("invalid pattern should fall back to rain, got %v", cfg.Pattern)
	}
	if cfg.GradientStrength != 1 {
		t.Errorf("gradient strength: got %v, want 1", cfg.GradientStrength)
	}
	if cfg.GlowIntensity != maxGlowIntensity {
		t.Errorf("glow intensity: got %v, want %v", cfg.GlowIntensity, maxGlowIntensity)
	}
	if cfg.GlowRadius != 0 {
		t.Errorf("glow radius: got %v, want 0", cfg.GlowRadius)
	}
	if cfg.ShapeInfluence != 1 {
		t.Errorf("shape influence: got %v, want 1", cfg.ShapeInfluence)
	}
	if cfg.Foreground != defaultConfig.Foreground {
		t.Errorf("bad foreground should reset, got %q", cfg.Foreground)
	}
	if cfg.Background != defaultConfig.Background {
		t.Errorf("bad background should reset, got %q", cfg.Background)
	}
}

func TestClampCellSizeEven(t *testing.T) {
	cfg := defaultConfig
	cfg.CellSize = 13
	clampLayerConfig(&cfg)
	if cfg.CellSize != 12 {
		t.Errorf("odd cell size should round down to even, got %d", cfg.CellSize)
	}

	cfg.CellSize = 99
	clampLayerConfig(&cfg)
	if cfg.CellSize != maxCellSize {
		t.Errorf("cell size should clamp to %d, got %d", maxCellSize, cfg.CellSize)
	}
}

func TestDefaultConfigIsAlreadyValid(t *testing.T) {
	cfg := defaultConfig
	clampLayerConfig(&cfg)
	if cfg != defaultConfig {
		t.Errorf("clamping the defaults changed them: %+v", cfg)
	}
}

func TestParseHexColor(t *testing.T) {
	r, g, b, err := parseHexColor("#00ff41")
	if err != nil || r != 0x00 || g != 0xff || b != 0x41 {
		t.Errorf("parse #00ff41: got (%d,%d,%d) err=%v", r, g, b, err)
	}

	r, g, b, err = parseHexColor("#f0a")
	if err != nil || r != 0xff || g != 0x00 || b != 0xaa {
		t.Errorf("parse #f0a: got (%d,%d,%d) err=%v", r, g, b, err)
	}

	for _, bad := range []string{"", "00ff41", "#12345", "#gggggg"} {
		if _, _, _, err := parseHexColor(bad); err == nil {
			t.Errorf("parse %q should fail", bad)
		}
	}
}

func TestGetSavePathWithoutDirectory(t *testing.T) {
	c := &Config{}
	if got := c.GetSavePath("dithered-pattern.png"); got != "dithered-pattern.png" {
		t.Errorf("empty save directory should pass the name through, got %q", got)
	}
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

type Config struct {
	CanvasWidth   int
	CanvasHeight  int
	SaveDirectory string
	StartPlaying  bool
}

func loadConfig() *Config {
	config := &Config{
		CanvasWidth:  defaultCanvasWidth,
		CanvasHeight: defaultCanvasHeight,
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return config
	}

	configPath := filepath.Join(homeDir, ".ditherrc")
	file, err := os.Open(configPath)
	if err != nil {
		return config
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		switch strings.ToLower(key) {
		case "canvaswidth", "canvas_width", "width":
			if n, err := strconv.Atoi(value); err == nil {
				config.CanvasWidth = clampInt(n, 100, 2000)
			}
		case "canvasheight", "canvas_height", "height":
			if n, err := strconv.Atoi(value); err == nil {
				config.CanvasHeight = clampInt(n, 100, 2000)
			}
		case "savedirectory", "save_directory", "savedir":
			if strings.HasPrefix(value, "~") {
				value = filepath.Join(homeDir, strings.TrimPrefix(value, "~"))
			}
			if !filepath.IsAbs(value) {
				if absPath, err := filepath.Abs(value); err == nil {
					value = absPath
				}
			}
			config.SaveDirectory = value
		case "startplaying", "start_playing", "autoplay":
			config.StartPlaying = strings.ToLower(value) == "true"
		}
	}

	return config
}

func (c *Config) GetSavePath(filename string) string {
	if c.SaveDirectory == "" {
		return filename
	}
	os.MkdirAll(c.SaveDirectory, 0755)
	return filepath.Join(c.SaveDirectory, filename)
}

// clampLayerConfig is the configuration boundary: every mutation passes
// through here so the renderers only ever see validated values.
func clampLayerConfig(c *LayerConfig) {
	if c.Symbols == "" {
		c.Symbols = defaultConfig.Symbols
	}
	c.Density = clampFloat(c.Density, minDensity, maxDensity)
	c.CellSize = clampInt(c.CellSize, minCellSize, maxCellSize)
	if c.CellSize%2 != 0 {
		c.CellSize--
	}
	c.Interval = clampInt(c.Interval, minInterval, maxInterval)
	c.GradientStrength = clampFloat(c.GradientStrength, 0, 1)
	c.GlowIntensity = clampFloat(c.GlowIntensity, 0, maxGlowIntensity)
	c.GlowRadius = clampFloat(c.GlowRadius, 0, maxGlowRadius)
	c.ShapeInfluence = clampFloat(c.ShapeInfluence, 0, 1)
	if c.Pattern < PatternRain || c.Pattern > PatternPulse {
		c.Pattern = PatternRain
	}
	if _, _, _, err := parseHexColor(c.Foreground); err != nil {
		c.Foreground = defaultConfig.Foreground
	}
	if _, _, _, err := parseHexColor(c.Background); err != nil {
		c.Background = defaultConfig.Background
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// parseHexColor accepts #rgb and #rrggbb forms.
func parseHexColor(s string) (r, g, b uint8, err error) {
	if !strings.HasPrefix(s, "#") {
		return 0, 0, 0, fmt.Errorf("color %q missing # prefix", s)
	}
	hex := s[1:]
	switch len(hex) {
	case 3:
		expanded := make([]byte, 6)
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded)
	case 6:
	default:
		return 0, 0, 0, fmt.Errorf("color %q has invalid length", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("color %q is not hex: %v", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

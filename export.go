package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/fogleman/gg"
)

// exportPNG serializes the current composited frame to a PNG file and
// copies the resulting path to the clipboard. A nil frame means nothing
// has been composited yet.
func (m *model) exportPNG(name string) (string, error) {
	if m.frameImg == nil {
		return "", fmt.Errorf("nothing to export")
	}
	if strings.TrimSpace(name) == "" {
		name = exportBaseName
	}
	if !strings.HasSuffix(strings.ToLower(name), ".png") {
		name += ".png"
	}
	path := m.config.GetSavePath(name)
	if err := gg.SavePNG(path, m.frameImg); err != nil {
		return "", err
	}
	// Best effort: headless environments have no clipboard.
	_ = clipboard.WriteAll(path)
	return path, nil
}

// CurrentFrame exposes the composited surface for external serialization.
func (m *model) CurrentFrame() image.Image {
	return m.frameImg
}

package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	activeStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("22"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	statusStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	panelStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
)

const sidePanelWidth = 34

func (m model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return "loading..."
	}
	if m.help {
		return m.renderHelp()
	}

	previewWidth := m.width - sidePanelWidth - 4
	previewHeight := m.height - 3
	if previewWidth < 10 {
		previewWidth = 10
	}
	if previewHeight < 4 {
		previewHeight = 4
	}

	preview := m.renderPreview(previewWidth, previewHeight)
	panel := m.renderSidePanel(previewHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, preview, panel)

	return lipgloss.JoinVertical(lipgloss.Left, body, m.renderStatusLine())
}

// renderPreview samples the composited frame into half-block cells: each
// terminal cell shows two vertical pixels, upper as foreground and lower
// as background of the ▀ rune.
func (m model) renderPreview(cw, ch int) string {
	if m.frameImg == nil {
		return dimStyle.Render("no frame rendered yet")
	}
	bounds := m.frameImg.Bounds()
	iw, ih := bounds.Dx(), bounds.Dy()
	if iw <= 0 || ih <= 0 {
		return dimStyle.Render("empty canvas")
	}

	// Preserve the canvas aspect ratio; terminal cells are ~2:1 tall.
	sampleRows := ch * 2
	if float64(cw)/float64(sampleRows) > float64(iw)/float64(ih) {
		cw = sampleRows * iw / ih
	} else {
		sampleRows = cw * ih / iw
		if sampleRows%2 != 0 {
			sampleRows--
		}
	}
	if cw < 1 || sampleRows < 2 {
		return dimStyle.Render("window too small")
	}

	var b strings.Builder
	for row := 0; row+1 < sampleRows; row += 2 {
		for col := 0; col < cw; col++ {
			x := col * iw / cw
			topY := row * ih / sampleRows
			botY := (row + 1) * ih / sampleRows
			top := m.frameImg.RGBAAt(x, topY)
			bot := m.frameImg.RGBAAt(x, botY)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", top.R, top.G, top.B))).
				Background(lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", bot.R, bot.G, bot.B)))
			b.WriteString(style.Render("▀"))
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m model) renderSidePanel(height int) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("dither"))
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Layers"))
	b.WriteString("\n")
	for i, layer := range m.engine.Layers() {
		marker := "  "
		if i == m.engine.active {
			marker = "▶ "
		}
		eye := "●"
		if !layer.Visible {
			eye = "○"
		}
		line := fmt.Sprintf("%s%s %d %-10s %-6s %3.0f%%",
			marker, eye, i+1, truncateName(layer.Name, 10), layer.Config.Pattern, layer.Opacity*100)
		if i == m.engine.active {
			b.WriteString(activeStyle.Render(line))
		} else {
			b.WriteString(line)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")

	cfg := m.engine.ActiveLayer().Config
	b.WriteString(labelStyle.Render("Config"))
	b.WriteString("\n")
	cellSize := cfg.CellSize
	cellNote := ""
	if m.pendingCellSize != 0 && m.pendingCellSize != cfg.CellSize {
		cellSize = m.pendingCellSize
		cellNote = " (pending)"
	}
	shape := "none"
	if m.engine.ActiveLayer().Shape != nil {
		shape = truncateName(m.engine.ActiveLayer().ShapePath, 16)
	}
	fmt.Fprintf(&b, "pattern   %s\n", cfg.Pattern)
	fmt.Fprintf(&b, "density   %.1f\n", cfg.Density)
	fmt.Fprintf(&b, "cell      %dpx%s\n", cellSize, cellNote)
	fmt.Fprintf(&b, "interval  %dms\n", cfg.Interval)
	fmt.Fprintf(&b, "colors    %s on %s\n", cfg.Foreground, cfg.Background)
	fmt.Fprintf(&b, "symbols   %s\n", truncateName(cfg.Symbols, 16))
	fmt.Fprintf(&b, "gradient  %s %.1f\n", onOff(cfg.Gradient), cfg.GradientStrength)
	fmt.Fprintf(&b, "glow      %s i%.0f r%.0f\n", onOff(cfg.Glow), cfg.GlowIntensity, cfg.GlowRadius)
	fmt.Fprintf(&b, "shape     %s (%.1f)\n", shape, cfg.ShapeInfluence)

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("? help  space play  q quit"))

	return panelStyle.Width(sidePanelWidth).Height(height - 2).Render(b.String())
}

func (m model) renderStatusLine() string {
	var left string
	switch m.mode {
	case ModeRename:
		left = fmt.Sprintf(" rename: %s█", m.renameText)
	case ModeFileInput:
		prompt := "export as"
		if m.fileOp == FileOpLoadImage {
			prompt = "load image"
		}
		left = fmt.Sprintf(" %s: %s█", prompt, m.filename)
		if m.fileOp == FileOpLoadImage && len(m.fileList) > 0 {
			left += dimStyle.Render(fmt.Sprintf("  (%d/%d, ↑↓ to browse)", m.selectedFileIndex+1, len(m.fileList)))
		}
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmDeleteLayer:
			left = " delete this layer? (y/n)"
		case ConfirmClearShape:
			left = " clear shape image? (y/n)"
		case ConfirmQuit:
			left = " quit? (y/n)"
		}
	default:
		state := "paused"
		if m.sched.Playing() {
			state = "playing"
		}
		left = fmt.Sprintf(" %s  frame %d  %dx%d", state, m.sched.DisplayFrame(), m.config.CanvasWidth, m.config.CanvasHeight)
	}

	if m.errorMessage != "" {
		left += "  " + errorStyle.Render(m.errorMessage)
	} else if m.successMessage != "" {
		left += "  " + successStyle.Render(m.successMessage)
	}

	pad := m.width - lipgloss.Width(left)
	if pad > 0 {
		left += strings.Repeat(" ", pad)
	}
	return statusStyle.Render(left)
}

func (m model) renderHelp() string {
	lines := helpLines()
	visible := m.height - 1
	if visible < 1 {
		visible = 1
	}
	start := m.helpScroll
	if start > len(lines)-visible {
		start = len(lines) - visible
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], "\n")
}

func helpLines() []string {
	return []string{
		"dither help",
		"===========",
		"",
		"Playback:",
		"  space            Play / pause",
		"  .                Step one frame forward (while paused)",
		"  ,                Step one frame back (while paused)",
		"",
		"Layers:",
		"  a                Add layer (up to 3)",
		"  d                Delete active layer (at least 1 remains)",
		"  tab / 1-3        Select active layer",
		"  J / K            Move active layer down / up the stack",
		"  v                Toggle layer visibility",
		"  n                Rename active layer",
		"  o / O            Opacity down / up",
		"",
		"Pattern config (active layer):",
		"  p / P            Next / previous pattern",
		"  [ / ]            Density down / up",
		"  - / =            Cell size down / up (applied after a short delay)",
		"  i / I            Frame interval down / up",
		"  s                Cycle symbol alphabet",
		"  c / C            Cycle foreground / background color",
		"  g                Toggle gradient",
		"  G                Cycle gradient strength",
		"  w                Toggle glow",
		"  e / E            Glow intensity down / up",
		"  r / R            Glow radius down / up",
		"  f / F            Shape influence down / up",
		"",
		"Shape image:",
		"  L                Load an image as the active layer's shape",
		"  X                Clear the active layer's shape",
		"",
		"Files:",
		"  S                Export current frame as PNG",
		"",
		"General:",
		"  ?                Toggle this help (j/k to scroll)",
		"  q / Ctrl+C       Quit",
	}
}

func truncateName(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

package main

import (
	"fmt"
	"image"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// tickRate is how often the host hands control back to the scheduler
// while playing; actual frame pacing is the active layer's interval.
const tickRate = 16 * time.Millisecond

// cellSizeDebounce coalesces rapid cell-size edits before the seed table
// and drop batch are regenerated.
const cellSizeDebounce = 250 * time.Millisecond

func main() {
	p := tea.NewProgram(
		initialModel(),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type model struct {
	width  int
	height int

	mode       Mode
	help       bool
	helpScroll int

	config *Config
	engine *Engine
	sched  *FrameScheduler

	frameImg *image.RGBA

	// Generation counters invalidate pending tick and debounce messages
	// so no orphaned composite pass fires after pause or a newer edit.
	tickGen         int
	debounceGen     int
	pendingCellSize int

	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation

	renameText string

	confirmAction ConfirmAction

	errorMessage   string
	successMessage string
}

type tickMsg struct {
	gen int
	at  time.Time
}

type applyCellSizeMsg struct {
	gen int
}

func initialModel() model {
	config := loadConfig()
	engine := NewEngine(config.CanvasWidth, config.CanvasHeight)
	sched := NewFrameScheduler()
	if config.StartPlaying {
		sched.Toggle(time.Now())
	}

	return model{
		config:          config,
		engine:          engine,
		sched:           sched,
		frameImg:        engine.Composite(0),
		pendingCellSize: engine.ActiveLayer().Config.CellSize,
	}
}

func (m model) Init() tea.Cmd {
	if m.sched.Playing() {
		return m.scheduleTick()
	}
	return nil
}

func (m model) scheduleTick() tea.Cmd {
	gen := m.tickGen
	return tea.Tick(tickRate, func(t time.Time) tea.Msg {
		return tickMsg{gen: gen, at: t}
	})
}

func (m model) scheduleCellSizeApply() tea.Cmd {
	gen := m.debounceGen
	return tea.Tick(cellSizeDebounce, func(time.Time) tea.Msg {
		return applyCellSizeMsg{gen: gen}
	})
}

// recompose renders one composite pass at the current frame so the
// preview reflects config edits immediately while paused.
func (m *model) recompose() {
	m.frameImg = m.engine.Composite(m.sched.Frame())
}

// syncGrid realigns the shared seed/drop geometry with the active
// layer's cell size after the active layer changes.
func (m *model) syncGrid() {
	cfg := m.engine.ActiveLayer().Config
	m.pendingCellSize = cfg.CellSize
	if cfg.CellSize != m.engine.cellSize {
		m.engine.Resize(cfg.CellSize)
	}
}

func (m *model) activeInterval() time.Duration {
	return time.Duration(m.engine.ActiveLayer().Config.Interval) * time.Millisecond
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		if msg.gen != m.tickGen || !m.sched.Playing() {
			// Stale tick from before a pause; drop it.
			return m, nil
		}
		if m.sched.Tick(time.Now(), m.activeInterval()) {
			m.frameImg = m.engine.Composite(m.sched.Frame())
		}
		return m, m.scheduleTick()

	case applyCellSizeMsg:
		if msg.gen != m.debounceGen {
			return m, nil
		}
		size := m.pendingCellSize
		m.engine.UpdateActiveConfig(func(c *LayerConfig) { c.CellSize = size })
		m.pendingCellSize = m.engine.ActiveLayer().Config.CellSize
		if m.pendingCellSize != m.engine.cellSize {
			m.engine.Resize(m.pendingCellSize)
		}
		m.recompose()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.help {
		switch msg.String() {
		case "j", "down":
			if m.helpScroll < len(helpLines())-1 {
				m.helpScroll++
			}
		case "k", "up":
			if m.helpScroll > 0 {
				m.helpScroll--
			}
		default:
			m.help = false
			m.helpScroll = 0
		}
		return m, nil
	}

	switch m.mode {
	case ModeNormal:
		return m.handleNormalKey(msg)
	case ModeRename:
		return m.handleRenameKey(msg)
	case ModeFileInput:
		return m.handleFileInputKey(msg)
	case ModeConfirm:
		return m.handleConfirmKey(msg)
	}
	return m, nil
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.errorMessage = ""
	m.successMessage = ""

	switch msg.String() {
	case "q", "ctrl+c":
		m.mode = ModeConfirm
		m.confirmAction = ConfirmQuit
		return m, nil

	case "?":
		m.help = true
		return m, nil

	case " ", "space":
		playing := m.sched.Toggle(time.Now())
		m.tickGen++
		if playing {
			return m, m.scheduleTick()
		}
		return m, nil

	case ".":
		if m.sched.Step(1) {
			m.recompose()
		}
		return m, nil

	case ",":
		if m.sched.Step(-1) {
			m.recompose()
		}
		return m, nil

	case "a":
		if m.engine.AddLayer() == nil {
			m.errorMessage = fmt.Sprintf("layer limit is %d", maxLayers)
			return m, nil
		}
		m.syncGrid()
		m.recompose()
		return m, nil

	case "d":
		if len(m.engine.Layers()) <= 1 {
			m.errorMessage = "cannot remove the last layer"
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmDeleteLayer
		return m, nil

	case "tab":
		m.engine.SetActive((m.engine.active + 1) % len(m.engine.Layers()))
		m.syncGrid()
		return m, nil

	case "1", "2", "3":
		i := int(msg.String()[0] - '1')
		if m.engine.SetActive(i) {
			m.syncGrid()
		}
		return m, nil

	case "K":
		if m.engine.MoveLayer(m.engine.active, m.engine.active-1) {
			m.recompose()
		}
		return m, nil

	case "J":
		if m.engine.MoveLayer(m.engine.active, m.engine.active+1) {
			m.recompose()
		}
		return m, nil

	case "v":
		layer := m.engine.ActiveLayer()
		layer.Visible = !layer.Visible
		m.recompose()
		return m, nil

	case "n":
		m.mode = ModeRename
		m.renameText = m.engine.ActiveLayer().Name
		return m, nil

	case "o", "O":
		layer := m.engine.ActiveLayer()
		delta := -0.1
		if msg.String() == "O" {
			delta = 0.1
		}
		layer.Opacity = clampFloat(layer.Opacity+delta, 0, 1)
		m.recompose()
		return m, nil

	case "p", "P":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			if msg.String() == "p" {
				c.Pattern = (c.Pattern + 1) % 5
			} else {
				c.Pattern = (c.Pattern + 4) % 5
			}
		})
		m.recompose()
		return m, nil

	case "[", "]":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			if msg.String() == "[" {
				c.Density -= 0.1
			} else {
				c.Density += 0.1
			}
		})
		m.recompose()
		return m, nil

	case "-", "=":
		// Coalesced-apply path: the grid is only rebuilt once the edits
		// settle, so slider-style key repeats do not thrash the table.
		delta := -2
		if msg.String() == "=" {
			delta = 2
		}
		m.pendingCellSize = clampInt(m.pendingCellSize+delta, minCellSize, maxCellSize)
		m.debounceGen++
		return m, m.scheduleCellSizeApply()

	case "i", "I":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			if msg.String() == "i" {
				c.Interval -= 10
			} else {
				c.Interval += 10
			}
		})
		return m, nil

	case "s":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			c.Symbols = cycleString(symbolSets, c.Symbols)
		})
		m.recompose()
		return m, nil

	case "c":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			c.Foreground = cycleString(foregroundPalette, c.Foreground)
		})
		m.recompose()
		return m, nil

	case "C":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			c.Background = cycleString(backgroundPalette, c.Background)
		})
		m.recompose()
		return m, nil

	case "g":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) { c.Gradient = !c.Gradient })
		m.recompose()
		return m, nil

	case "G":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			c.GradientStrength += 0.1
			if c.GradientStrength > 1 {
				c.GradientStrength = 0
			}
		})
		m.recompose()
		return m, nil

	case "w":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) { c.Glow = !c.Glow })
		m.recompose()
		return m, nil

	case "e", "E":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			if msg.String() == "e" {
				c.GlowIntensity--
			} else {
				c.GlowIntensity++
			}
		})
		m.recompose()
		return m, nil

	case "r", "R":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			if msg.String() == "r" {
				c.GlowRadius -= 2
			} else {
				c.GlowRadius += 2
			}
		})
		m.recompose()
		return m, nil

	case "f", "F":
		m.engine.UpdateActiveConfig(func(c *LayerConfig) {
			if msg.String() == "f" {
				c.ShapeInfluence -= 0.1
			} else {
				c.ShapeInfluence += 0.1
			}
		})
		m.recompose()
		return m, nil

	case "L":
		m.mode = ModeFileInput
		m.fileOp = FileOpLoadImage
		m.filename = ""
		m.scanImageFiles()
		return m, nil

	case "X":
		if m.engine.ActiveLayer().Shape == nil {
			return m, nil
		}
		m.mode = ModeConfirm
		m.confirmAction = ConfirmClearShape
		return m, nil

	case "S":
		m.mode = ModeFileInput
		m.fileOp = FileOpSavePNG
		m.filename = exportBaseName
		return m, nil
	}

	return m, nil
}

func (m model) handleRenameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.renameText = ""
	case msg.Type == tea.KeyEnter:
		if strings.TrimSpace(m.renameText) != "" {
			m.engine.ActiveLayer().Name = m.renameText
		}
		m.mode = ModeNormal
		m.renameText = ""
	case msg.Type == tea.KeyBackspace:
		if len(m.renameText) > 0 {
			r := []rune(m.renameText)
			m.renameText = string(r[:len(r)-1])
		}
	default:
		keyStr := msg.String()
		if len([]rune(keyStr)) == 1 {
			m.renameText += keyStr
		}
	}
	return m, nil
}

func (m model) handleFileInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""

	case msg.String() == "up" && m.fileOp == FileOpLoadImage && len(m.fileList) > 0:
		m.selectedFileIndex--
		if m.selectedFileIndex < 0 {
			m.selectedFileIndex = len(m.fileList) - 1
		}
		m.filename = m.fileList[m.selectedFileIndex]

	case msg.String() == "down" && m.fileOp == FileOpLoadImage && len(m.fileList) > 0:
		m.selectedFileIndex++
		if m.selectedFileIndex >= len(m.fileList) {
			m.selectedFileIndex = 0
		}
		m.filename = m.fileList[m.selectedFileIndex]

	case msg.Type == tea.KeyEnter:
		switch m.fileOp {
		case FileOpSavePNG:
			path, err := m.exportPNG(m.filename)
			if err != nil {
				m.errorMessage = err.Error()
			} else {
				m.successMessage = fmt.Sprintf("exported %s (path copied)", path)
			}
		case FileOpLoadImage:
			if strings.TrimSpace(m.filename) == "" {
				m.errorMessage = "no image selected"
			} else if grid, err := loadShapeImage(m.filename); err != nil {
				m.errorMessage = err.Error()
			} else if grid.Empty() {
				m.errorMessage = "image has no pixels"
			} else {
				m.engine.AttachShape(m.filename, grid)
				m.recompose()
				m.successMessage = fmt.Sprintf("shape loaded from %s", m.filename)
			}
		}
		m.mode = ModeNormal
		m.filename = ""

	case msg.Type == tea.KeyBackspace:
		if len(m.filename) > 0 {
			r := []rune(m.filename)
			m.filename = string(r[:len(r)-1])
		}

	default:
		keyStr := msg.String()
		if len([]rune(keyStr)) == 1 {
			m.filename += keyStr
		}
	}
	return m, nil
}

func (m model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y", "enter":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmDeleteLayer:
			if m.engine.RemoveLayer(m.engine.active) {
				m.syncGrid()
				m.recompose()
			}
		case ConfirmClearShape:
			m.engine.ClearShape()
			m.recompose()
		}
	}
	m.mode = ModeNormal
	return m, nil
}

// scanImageFiles lists loadable images in the working directory.
func (m *model) scanImageFiles() {
	m.fileList = nil
	m.selectedFileIndex = -1

	dir, err := os.Getwd()
	if err != nil {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := strings.ToLower(entry.Name())
		if strings.HasSuffix(name, ".png") || strings.HasSuffix(name, ".jpg") || strings.HasSuffix(name, ".jpeg") {
			m.fileList = append(m.fileList, entry.Name())
		}
	}
	sort.Strings(m.fileList)
	if len(m.fileList) > 0 {
		m.selectedFileIndex = 0
		m.filename = m.fileList[0]
	}
}

// cycleString returns the entry after cur, or the first entry when cur
// is not in the list.
func cycleString(list []string, cur string) string {
	for i, s := range list {
		if s == cur {
			return list[(i+1)%len(list)]
		}
	}
	return list[0]
}

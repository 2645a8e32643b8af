// Package app hosts the windowed front end: an Ebitengine game that steps
// the pipeline once per update and hands the screen to it for drawing.
package app

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/ncruces/zenity"

	"visualizer/internal/audio"
	"visualizer/internal/config"
	applog "visualizer/internal/log"
	"visualizer/internal/pipeline"
)

// Game drives the pipeline from the display loop. Stepping the manual
// clock in Update ties the analysis cadence to the frame cadence, so one
// frame sees exactly one analysis refresh.
type Game struct {
	cfg   *config.Config
	pipe  *pipeline.Pipeline
	clock *pipeline.ManualClock

	width  int
	height int

	// status is a transient message shown in the overlay, e.g. a failed
	// file open.
	status string
}

func NewGame(cfg *config.Config, pipe *pipeline.Pipeline, clock *pipeline.ManualClock) *Game {
	return &Game{
		cfg:    cfg,
		pipe:   pipe,
		clock:  clock,
		width:  cfg.WindowWidth,
		height: cfg.WindowHeight,
	}
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		if fs, ok := g.pipe.Source().(*audio.FileSource); ok {
			if fs.TogglePause() {
				g.status = "paused"
			} else {
				g.status = ""
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.openFileDialog()
	}

	g.clock.Step()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.pipe.Draw(screen); err != nil {
		applog.Errorf("app: draw: %v", err)
		return
	}
	g.drawOverlay(screen)
}

func (g *Game) drawOverlay(screen *ebiten.Image) {
	line := fmt.Sprintf("[%s] pulse %.2f", g.pipe.State(), g.pipe.Pulse())
	if src := g.pipe.Source(); src != nil {
		line += "  " + src.Describe()
		if fs, ok := src.(*audio.FileSource); ok {
			line += fmt.Sprintf("  %3.0f%%", fs.Progress()*100)
			if fs.Finished() {
				line += "  done"
			}
		}
	}
	ebitenutil.DebugPrintAt(screen, line, 8, 8)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 8, 24)
	}
	ebitenutil.DebugPrintAt(screen, "space: pause  o: open file  q: quit", 8, g.height-20)
}

// openFileDialog asks for an audio file and swaps the pipeline onto it.
// Cancel keeps the current source running.
func (g *Game) openFileDialog() {
	path, err := zenity.SelectFile(
		zenity.Title("Open Audio File"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return
		}
		g.status = fmt.Sprintf("file dialog: %v", err)
		return
	}

	src, err := audio.NewFileSource(path, g.cfg)
	if err != nil {
		g.status = fmt.Sprintf("open %s: %v", path, err)
		return
	}

	if err := g.pipe.Attach(src, g.width, g.height); err != nil {
		g.status = fmt.Sprintf("attach: %v", err)
		return
	}
	g.status = ""
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width = outsideWidth
		g.height = outsideHeight
		g.pipe.Resize(g.width, g.height)
	}
	return g.width, g.height
}

// Run configures the window and blocks inside the Ebitengine loop until
// the user quits.
func Run(g *Game) error {
	ebiten.SetWindowSize(g.cfg.WindowWidth, g.cfg.WindowHeight)
	ebiten.SetWindowTitle("visualizer")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

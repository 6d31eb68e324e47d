//go:build ebiten

package app

import (
	"time"

	"colony/internal/core"
	"colony/internal/engine"
	"colony/internal/render"
	"colony/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// hudWidth is the width of the parameter panel in pixels.
const hudWidth = 240

// Game adapts the colony engine to the ebiten.Game interface.
type Game struct {
	engine  *engine.Engine
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	step    *core.FixedStep

	scale    int
	tickOnce bool
	rows     int
	cols     int
}

// New constructs a Game for the provided engine.
func New(e *engine.Engine, scale int) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		engine:  e,
		overlay: ui.NewOverlay(e, scale),
		hud:     ui.NewHUD(e, hudWidth),
		step:    core.NewFixedStep(e.StepInterval()),
		scale:   scale,
	}
	g.resize()
	return g
}

func (g *Game) resize() {
	size := g.engine.Size()
	g.rows, g.cols = size.H, size.W
	g.painter = render.NewGridPainter(size.W, size.H)
}

// Update handles per-frame input, steps the colony at the configured tempo and
// runs due note tasks.
func (g *Game) Update() error {
	now := time.Now()
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.engine.Shutdown()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.engine.TogglePaused()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.engine.Reseed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.engine.Clear()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		mx, my := ebiten.CursorPosition()
		col, row := mx/g.scale, my/g.scale
		if mx >= 0 && my >= 0 && col < g.cols && row < g.rows {
			g.engine.Toggle(row, col)
		}
	}

	g.overlay.Update()
	g.hud.Update(g.cols * g.scale)
	if size := g.engine.Size(); size.H != g.rows || size.W != g.cols {
		g.resize()
	}

	g.step.SetInterval(g.engine.StepInterval())
	due := g.step.ShouldStep(now)
	switch {
	case g.tickOnce:
		g.overlay.Flash(g.engine.Step(now))
		g.tickOnce = false
	case due && !g.engine.Paused():
		g.overlay.Flash(g.engine.Tick(now))
	}
	g.engine.Advance(now)
	return nil
}

// Draw renders the current colony state.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.engine.Snapshot().Ages, g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.cols*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.cols*g.scale + hudWidth, g.rows * g.scale
}

// WindowSize returns the window dimensions for the current grid and scale.
func (g *Game) WindowSize() (int, int) { return g.Layout(0, 0) }

//go:build ebiten

package ui

import (
	"image/color"
	"strings"

	"colony/internal/core"
	"colony/pkg/colony"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type statusProvider interface {
	StatusLine() string
}

// flashFrames is how many frames a sounding cell stays highlighted.
const flashFrames = 8

// Overlay draws the status line, key help and a short flash over cells that
// were just born or died.
type Overlay struct {
	target    core.Controllable
	scale     int
	showHelp  bool
	showFlash bool

	flashes []flash
	pixel   *ebiten.Image
}

type flash struct {
	row, col int
	kind     colony.EventKind
	left     int
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(target core.Controllable, scale int) *Overlay {
	o := &Overlay{target: target, scale: scale, showFlash: true}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles help (H) and flashes (F) and ages existing flashes.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		o.showHelp = !o.showHelp
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		o.showFlash = !o.showFlash
	}
	kept := o.flashes[:0]
	for _, f := range o.flashes {
		f.left--
		if f.left > 0 {
			kept = append(kept, f)
		}
	}
	o.flashes = kept
}

// Flash highlights the cells of a generation's events.
func (o *Overlay) Flash(events []colony.Event) {
	for _, ev := range events {
		o.flashes = append(o.flashes, flash{row: ev.Row, col: ev.Col, kind: ev.Kind, left: flashFrames})
	}
}

// Draw renders the overlay onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	if o.showFlash {
		for _, f := range o.flashes {
			col := color.RGBA{R: 120, G: 220, B: 255, A: 255}
			if f.kind == colony.EventDeath {
				col = color.RGBA{R: 255, G: 90, B: 70, A: 255}
			}
			alpha := float32(f.left) / flashFrames * 0.6
			o.drawCell(screen, f.row, f.col, scale, col, alpha)
		}
	}

	lines := []string{}
	if provider, ok := o.target.(statusProvider); ok {
		lines = append(lines, provider.StatusLine())
	}
	if o.showHelp {
		lines = append(lines,
			"space pause  n step  r reseed  c clear",
			"click toggle  f flashes  h help  q quit",
		)
	}
	if len(lines) > 0 {
		ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), 4, 2)
	}
}

func (o *Overlay) drawCell(screen *ebiten.Image, row, col, scale int, c color.RGBA, alpha float32) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	op.GeoM.Translate(float64(col*scale), float64(row*scale))
	op.ColorScale.ScaleWithColor(c)
	op.ColorScale.ScaleAlpha(alpha)
	screen.DrawImage(o.pixel, op)
}

//go:build !ebiten

package ui

import (
	"colony/internal/core"
	"colony/pkg/colony"
)

// Overlay is a no-op placeholder used when the ebiten build tag is absent.
type Overlay struct{}

// NewOverlay constructs a stub overlay.
func NewOverlay(core.Controllable, int) *Overlay { return &Overlay{} }

// Update is a no-op in headless builds.
func (o *Overlay) Update() {}

// Flash is a no-op in headless builds.
func (o *Overlay) Flash([]colony.Event) {}

// Draw is a no-op placeholder.
func (o *Overlay) Draw(any) {}

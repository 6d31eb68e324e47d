package render

import (
	"image/color"

	"colony/pkg/pitch"
)

// Dead is the background colour for empty cells.
var Dead = color.RGBA{R: 10, G: 10, B: 14, A: 255}

// AgePalette returns one colour per brightness level 0..pitch.MaxLevel. Level 0
// is the dead colour; higher levels are brighter and warmer.
func AgePalette() []color.RGBA {
	palette := make([]color.RGBA, pitch.MaxLevel+1)
	palette[0] = Dead
	for lvl := 1; lvl <= pitch.MaxLevel; lvl++ {
		t := float64(lvl) / float64(pitch.MaxLevel)
		palette[lvl] = color.RGBA{
			R: uint8(40 + 215*t),
			G: uint8(30 + 190*t*t),
			B: uint8(90 + 60*(1-t)),
			A: 255,
		}
	}
	return palette
}

// FillAgeRGBA converts cell ages into RGBA pixels in buf using palette indexed
// by pitch.AgeToLevel. buf must hold 4 bytes per cell.
func FillAgeRGBA(buf []byte, ages []int, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:4*len(ages)])
		return
	}
	last := len(palette) - 1
	for i, age := range ages {
		idx := pitch.AgeToLevel(age)
		if idx > last {
			idx = last
		}
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}

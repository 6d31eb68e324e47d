// Package pitch maps colony coordinates and cell state to MIDI pitches and
// velocities. Every function is pure and clamps its result into the valid MIDI
// range instead of reporting errors.
package pitch

import (
	"fmt"
	"math"

	"colony/pkg/scale"
)

const (
	// MiddleC is the pitch of the bottom grid row before root and offsets apply.
	MiddleC = 60
	// AgeMax is the age at which age-dependent mappings saturate.
	AgeMax = 20
	// MaxLevel is the brightest display level returned by AgeToLevel.
	MaxLevel = 15

	birthColumnSpan = 20
	birthNeighborW  = 4
	deathBaseShare  = 0.35
	deathAgeSpan    = 55
	deathVelMax     = 90
)

// RowToPitch quantizes a 1-based row (1 = top) to the scale. The bottom row
// maps to degree 0 of the lowest octave.
func RowToPitch(row, totalRows, rootOffset int, s scale.Scale, extraOffset int) int {
	n := len(s.Steps)
	if n == 0 {
		return Clamp(MiddleC+rootOffset+extraOffset, 0, 127)
	}
	noteIndex := totalRows - row
	octave := floorDiv(noteIndex, n)
	degree := noteIndex - octave*n
	return Clamp(MiddleC+rootOffset+octave*12+s.Steps[degree]+extraOffset, 0, 127)
}

// BirthVelocity grows with the column position (left to right) and with the
// number of parents.
func BirthVelocity(col, totalCols, neighbors, base int) int {
	spread := 0
	if totalCols > 0 {
		spread = int(math.Floor(float64(col) / float64(totalCols) * birthColumnSpan))
	}
	return Clamp(base+spread+neighbors*birthNeighborW, 1, 127)
}

// DeathVelocity scales with the age the cell reached before dying and is
// capped below the birth range.
func DeathVelocity(age, base int) int {
	v := math.Floor(float64(base)*deathBaseShare + ageFraction(age)*deathAgeSpan)
	return Clamp(int(v), 1, deathVelMax)
}

// AgeToLevel returns a display brightness in [3, MaxLevel] for live cells and 0
// for dead ones. Younger cells are brighter.
func AgeToLevel(age int) int {
	if age <= 0 {
		return 0
	}
	return int(math.Floor(3 + (1-ageFraction(age))*12))
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// NoteName formats a MIDI pitch in scientific notation, e.g. 60 -> "C4".
func NoteName(p int) string {
	p = Clamp(p, 0, 127)
	return fmt.Sprintf("%s%d", noteNames[p%12], p/12-1)
}

func ageFraction(age int) float64 {
	f := float64(age-1) / AgeMax
	if f < 0 {
		return 0
	}
	return math.Min(f, 1)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

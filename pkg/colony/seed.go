package colony

import (
	"math"

	"colony/pkg/core"
)

// SpreadFactor scales the grid dimensions into the standard deviation of the
// seeding Gaussian.
const SpreadFactor = 0.18

// SeedProbability returns the chance that Reseed brings (row, col) alive. The
// weight is a 2D Gaussian centred on the grid.
func SeedProbability(row, col, rows, cols, densityPct int) float64 {
	if rows <= 0 || cols <= 0 {
		return 0
	}
	sr := SpreadFactor * float64(rows)
	sc := SpreadFactor * float64(cols)
	dr := (float64(row) - float64(rows-1)/2) / sr
	dc := (float64(col) - float64(cols-1)/2) / sc
	p := float64(densityPct) / 100 * math.Exp(-0.5*(dr*dr+dc*dc))
	return math.Max(0, math.Min(1, p))
}

// Reseed overwrites the colony with independent Bernoulli draws weighted by
// SeedProbability and resets the generation counter.
func (c *Colony) Reseed(rng *core.RNG, densityPct int) {
	cur := c.bufs[c.cur].Cells()
	for y := 0; y < c.rows; y++ {
		for x := 0; x < c.cols; x++ {
			cur[y*c.cols+x] = 0
			if rng.Chance(SeedProbability(y, x, c.rows, c.cols, densityPct)) {
				cur[y*c.cols+x] = 1
			}
		}
	}
	c.bufs[1-c.cur].Clear()
	c.generation = 0
}

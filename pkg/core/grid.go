package core

// Size describes the dimensions of a grid in columns (W) and rows (H).
type Size struct {
	W int
	H int
}

// AgeGrid stores a 2D grid of cell ages in row-major order.
type AgeGrid struct {
	W, H int
	data []int
}

// NewAgeGrid allocates a grid with the given dimensions.
func NewAgeGrid(w, h int) *AgeGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	return &AgeGrid{W: w, H: h, data: make([]int, w*h)}
}

// Cells exposes the backing slice so callers can read/write values directly.
func (g *AgeGrid) Cells() []int { return g.data }

// Index returns the linear slice index for coordinates (x, y).
func (g *AgeGrid) Index(x, y int) int { return y*g.W + x }

// Wrap applies toroidal wrapping to the provided coordinates.
func (g *AgeGrid) Wrap(x, y int) (int, int) {
	x = (x%g.W + g.W) % g.W
	y = (y%g.H + g.H) % g.H
	return x, y
}

// At returns the age at (x, y) after wrapping.
func (g *AgeGrid) At(x, y int) int {
	x, y = g.Wrap(x, y)
	return g.data[g.Index(x, y)]
}

// Clear fills the grid with zeros.
func (g *AgeGrid) Clear() {
	for i := range g.data {
		g.data[i] = 0
	}
}

// Package colony implements the age-tracking toroidal automaton whose
// generation transitions drive note events.
package colony

import "colony/pkg/core"

// EventKind distinguishes births from deaths.
type EventKind uint8

const (
	// EventBirth marks a dead cell that came alive this generation.
	EventBirth EventKind = iota + 1
	// EventDeath marks a live cell that died this generation.
	EventDeath
)

func (k EventKind) String() string {
	switch k {
	case EventBirth:
		return "birth"
	case EventDeath:
		return "death"
	default:
		return "unknown"
	}
}

// Event is emitted by Step for every birth and death. Row and Col are 0-based.
// Age is the age before the reset for deaths; Neighbors is the live-neighbor
// count the rule observed.
type Event struct {
	Kind      EventKind
	Row, Col  int
	Age       int
	Neighbors int
}

// Snapshot is a read-only copy of the colony for renderers.
type Snapshot struct {
	Rows, Cols int
	Ages       []int
	Generation uint64
}

// Age returns the age at (row, col) in the snapshot.
func (s Snapshot) Age(row, col int) int { return s.Ages[row*s.Cols+col] }

// Colony keeps two age buffers and flips between them on every step.
type Colony struct {
	rows, cols int
	bufs       [2]*core.AgeGrid
	cur        int
	generation uint64
}

// New returns an empty colony with the provided dimensions.
func New(rows, cols int) *Colony {
	a := core.NewAgeGrid(cols, rows)
	b := core.NewAgeGrid(cols, rows)
	return &Colony{rows: a.H, cols: a.W, bufs: [2]*core.AgeGrid{a, b}}
}

// Size returns the grid dimensions (W = columns, H = rows).
func (c *Colony) Size() core.Size { return core.Size{W: c.cols, H: c.rows} }

// Rows returns the number of rows.
func (c *Colony) Rows() int { return c.rows }

// Cols returns the number of columns.
func (c *Colony) Cols() int { return c.cols }

// Cells exposes the current age buffer in row-major order. Callers must not
// retain it across Step.
func (c *Colony) Cells() []int { return c.bufs[c.cur].Cells() }

// Generation returns the number of steps since the last reseed.
func (c *Colony) Generation() uint64 { return c.generation }

// Get returns the age at (row, col), wrapping out-of-range coordinates.
func (c *Colony) Get(row, col int) int { return c.bufs[c.cur].At(col, row) }

// Set writes an age at (row, col), wrapping out-of-range coordinates. Negative
// ages are stored as dead.
func (c *Colony) Set(row, col, age int) {
	if age < 0 {
		age = 0
	}
	g := c.bufs[c.cur]
	x, y := g.Wrap(col, row)
	g.Cells()[g.Index(x, y)] = age
}

// Toggle flips a cell between dead and newborn.
func (c *Colony) Toggle(row, col int) {
	if c.Get(row, col) > 0 {
		c.Set(row, col, 0)
		return
	}
	c.Set(row, col, 1)
}

// Clear kills every cell. The generation counter is left untouched.
func (c *Colony) Clear() {
	c.bufs[0].Clear()
	c.bufs[1].Clear()
}

// Population counts live cells.
func (c *Colony) Population() int {
	n := 0
	for _, age := range c.Cells() {
		if age > 0 {
			n++
		}
	}
	return n
}

// Neighbors counts live cells among the eight wrapped neighbors of (row, col).
func (c *Colony) Neighbors(row, col int) int {
	g := c.bufs[c.cur]
	x, y := g.Wrap(col, row)
	return countNeighbors(g.Cells(), c.cols, c.rows, x, y)
}

// Snapshot copies the current state.
func (c *Colony) Snapshot() Snapshot {
	return Snapshot{
		Rows:       c.rows,
		Cols:       c.cols,
		Ages:       append([]int(nil), c.Cells()...),
		Generation: c.generation,
	}
}

// Step advances the colony by one generation under r and returns the births
// and deaths in row-major order. Every cell reads the state as it was at the
// start of the step.
func (c *Colony) Step(r Rules) []Event {
	w, h := c.cols, c.rows
	cur := c.bufs[c.cur].Cells()
	nxt := c.bufs[1-c.cur].Cells()
	var events []Event
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			idx := y*w + x
			neighbors := countNeighbors(cur, w, h, x, y)
			age := cur[idx]
			switch {
			case age > 0 && neighbors >= r.SurviveMin && neighbors <= r.SurviveMax:
				nxt[idx] = age + 1
			case age > 0:
				nxt[idx] = 0
				events = append(events, Event{Kind: EventDeath, Row: y, Col: x, Age: age, Neighbors: neighbors})
			case neighbors == r.Birth:
				nxt[idx] = 1
				events = append(events, Event{Kind: EventBirth, Row: y, Col: x, Neighbors: neighbors})
			default:
				nxt[idx] = 0
			}
		}
	}
	c.cur = 1 - c.cur
	c.generation++
	return events
}

func countNeighbors(cells []int, w, h, x, y int) int {
	neighbors := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			nx := (x + dx + w) % w
			ny := (y + dy + h) % h
			if cells[ny*w+nx] > 0 {
				neighbors++
			}
		}
	}
	return neighbors
}

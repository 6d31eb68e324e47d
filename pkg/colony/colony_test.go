package colony

import (
	"slices"
	"testing"

	"colony/pkg/core"
)

var lifeRules = Rules{Birth: 3, SurviveMin: 2, SurviveMax: 3}

func TestBlinkerOscillationAges(t *testing.T) {
	c := New(5, 5)
	c.Set(1, 2, 1)
	c.Set(2, 2, 1)
	c.Set(3, 2, 1)

	events := c.Step(lifeRules)

	expects := map[[2]int]int{
		{2, 1}: 1,
		{2, 2}: 2,
		{2, 3}: 1,
	}
	for row := 0; row < 5; row++ {
		for col := 0; col < 5; col++ {
			want := expects[[2]int{row, col}]
			if got := c.Get(row, col); got != want {
				t.Fatalf("cell (%d,%d) age=%d, expected %d", row, col, got, want)
			}
		}
	}

	var births, deaths int
	for _, ev := range events {
		switch ev.Kind {
		case EventBirth:
			births++
			if ev.Neighbors != 3 {
				t.Fatalf("birth at (%d,%d) reported %d neighbors", ev.Row, ev.Col, ev.Neighbors)
			}
		case EventDeath:
			deaths++
			if ev.Age != 1 {
				t.Fatalf("death at (%d,%d) reported age %d, want 1", ev.Row, ev.Col, ev.Age)
			}
		}
	}
	if births != 2 || deaths != 2 {
		t.Fatalf("births=%d deaths=%d, want 2 and 2", births, deaths)
	}

	c.Step(lifeRules)
	if got := c.Get(2, 2); got != 3 {
		t.Fatalf("centre age after second step = %d, want 3", got)
	}
	if c.Get(1, 2) != 1 || c.Get(3, 2) != 1 || c.Get(2, 1) != 0 {
		t.Fatal("blinker did not return to vertical phase")
	}
	if c.Generation() != 2 {
		t.Fatalf("generation = %d, want 2", c.Generation())
	}
}

func TestStepMatchesRuleForEveryCell(t *testing.T) {
	rng := core.NewRNG(7)
	rulesets := []Rules{lifeRules, {Birth: 3, SurviveMin: 1, SurviveMax: 5}, {Birth: 2, SurviveMin: 0, SurviveMax: 0}, {Birth: 0, SurviveMin: 4, SurviveMax: 8}}
	for _, r := range rulesets {
		c := New(9, 13)
		for i := range c.Cells() {
			if rng.Chance(0.4) {
				c.Cells()[i] = 1 + rng.IntN(6)
			}
		}
		for gen := 0; gen < 5; gen++ {
			before := c.Snapshot()
			counts := make([]int, len(before.Ages))
			for row := 0; row < before.Rows; row++ {
				for col := 0; col < before.Cols; col++ {
					counts[row*before.Cols+col] = c.Neighbors(row, col)
				}
			}
			events := c.Step(r)
			byCell := map[[2]int]Event{}
			for _, ev := range events {
				byCell[[2]int{ev.Row, ev.Col}] = ev
			}
			for row := 0; row < before.Rows; row++ {
				for col := 0; col < before.Cols; col++ {
					idx := row*before.Cols + col
					age, n := before.Ages[idx], counts[idx]
					got := c.Get(row, col)
					ev, hasEvent := byCell[[2]int{row, col}]
					switch {
					case age > 0 && n >= r.SurviveMin && n <= r.SurviveMax:
						if got != age+1 || hasEvent {
							t.Fatalf("%v: survivor (%d,%d) age %d->%d event=%v", r, row, col, age, got, hasEvent)
						}
					case age > 0:
						if got != 0 || !hasEvent || ev.Kind != EventDeath || ev.Age != age {
							t.Fatalf("%v: dying cell (%d,%d) age %d->%d event=%+v", r, row, col, age, got, ev)
						}
					case n == r.Birth:
						if got != 1 || !hasEvent || ev.Kind != EventBirth || ev.Neighbors != n {
							t.Fatalf("%v: birth (%d,%d) n=%d -> %d event=%+v", r, row, col, n, got, ev)
						}
					default:
						if got != 0 || hasEvent {
							t.Fatalf("%v: dead cell (%d,%d) n=%d -> %d event=%v", r, row, col, n, got, hasEvent)
						}
					}
				}
			}
		}
	}
}

func TestNeighborsMatchTiledGrid(t *testing.T) {
	rng := core.NewRNG(42)
	const rows, cols = 6, 7
	c := New(rows, cols)
	for i := range c.Cells() {
		if rng.Chance(0.5) {
			c.Cells()[i] = 1
		}
	}
	tiled := make([][]int, rows*3)
	for ty := range tiled {
		tiled[ty] = make([]int, cols*3)
		for tx := range tiled[ty] {
			tiled[ty][tx] = c.Get(ty%rows, tx%cols)
		}
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			want := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if tiled[row+rows+dy][col+cols+dx] > 0 {
						want++
					}
				}
			}
			if got := c.Neighbors(row, col); got != want {
				t.Fatalf("cell (%d,%d) neighbors=%d, tiled count=%d", row, col, got, want)
			}
		}
	}
}

func TestCornerWrapsToOppositeEdges(t *testing.T) {
	c := New(4, 4)
	c.Set(3, 3, 1)
	c.Set(0, 3, 1)
	c.Set(3, 0, 1)
	if got := c.Neighbors(0, 0); got != 3 {
		t.Fatalf("corner neighbors = %d, want 3", got)
	}
	c.Step(lifeRules)
	if c.Get(0, 0) != 1 {
		t.Fatal("corner should be born from wrapped neighbors")
	}
}

func TestStepSwapsBuffersWithoutAllocating(t *testing.T) {
	c := New(4, 4)
	first := &c.Cells()[0]
	c.Step(lifeRules)
	second := &c.Cells()[0]
	c.Step(lifeRules)
	if first == second {
		t.Fatal("step should write into the alternate buffer")
	}
	if &c.Cells()[0] != first {
		t.Fatal("two steps should return to the original buffer")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	c := New(3, 3)
	c.Set(1, 1, 4)
	snap := c.Snapshot()
	c.Set(1, 1, 0)
	if snap.Age(1, 1) != 4 {
		t.Fatal("snapshot must not alias live buffer")
	}
}

func TestToggleAndClear(t *testing.T) {
	c := New(3, 3)
	c.Toggle(-1, -1)
	if c.Get(2, 2) != 1 {
		t.Fatal("toggle should wrap coordinates and create a newborn")
	}
	c.Toggle(2, 2)
	if c.Population() != 0 {
		t.Fatal("second toggle should kill the cell")
	}
	c.Set(0, 0, 5)
	c.Clear()
	if !slices.Equal(c.Cells(), make([]int, 9)) {
		t.Fatal("clear should kill every cell")
	}
}

func TestPresets(t *testing.T) {
	r, ok := Preset("life")
	if !ok || r != lifeRules {
		t.Fatalf("life preset = %+v ok=%v", r, ok)
	}
	if r.String() != "B3/S2-3" {
		t.Fatalf("rule string = %q", r.String())
	}
	if !slices.Contains(PresetNames(), "coral") {
		t.Fatal("coral preset missing")
	}
}

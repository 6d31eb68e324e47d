// Package sweep plays many engine configurations headlessly and summarises how
// much music each one makes.
package sweep

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"colony/internal/engine"
	"colony/internal/midiout"
)

// Scenario is one configuration to evaluate.
type Scenario struct {
	Rules string
	Cfg   engine.Config
}

func (s Scenario) String() string {
	return fmt.Sprintf("rules=%s %s density=%d prob=%d poly=%d",
		s.Rules, s.Cfg.Rules(), s.Cfg.SeedDensityPct, s.Cfg.NoteProbabilityPct, s.Cfg.Polyphony)
}

// Result summarises a scenario run.
type Result struct {
	Scenario Scenario

	Generations int
	Events      int
	NotesOn     int
	Dropped     int
	Stolen      int
	FinalPop    int
	ExtinctAt   int // generation the colony died out, or -1
	PeakVoices  int
}

// NotesPerGen is the mean number of emitted notes per generation.
func (r Result) NotesPerGen() float64 {
	if r.Generations == 0 {
		return 0
	}
	return float64(r.NotesOn) / float64(r.Generations)
}

// Grid builds the cross product of presets, densities and probabilities on
// top of base.
func Grid(base engine.Config, presets []string, densities, probabilities []int) []Scenario {
	var out []Scenario
	for _, preset := range presets {
		for _, d := range densities {
			for _, p := range probabilities {
				cfg := base
				if !cfg.Set("rules", preset) {
					continue
				}
				cfg.SeedDensityPct = d
				cfg.NoteProbabilityPct = p
				out = append(out, Scenario{Rules: preset, Cfg: cfg})
			}
		}
	}
	return out
}

// Play runs one scenario for generations steps on a simulated clock.
func Play(s Scenario, generations int) Result {
	capture := midiout.NewCapture(0)
	e := engine.New(s.Cfg, capture)
	res := Result{Scenario: s, Generations: generations, ExtinctAt: -1}

	now := time.Unix(0, 0)
	interval := e.StepInterval()
	slice := interval / 8
	if slice <= 0 {
		slice = interval
	}
	for gen := 1; gen <= generations; gen++ {
		res.Events += len(e.Tick(now))
		if res.ExtinctAt < 0 && e.Colony().Population() == 0 {
			res.ExtinctAt = gen
		}
		for elapsed := time.Duration(0); elapsed < interval; elapsed += slice {
			now = now.Add(slice)
			e.Advance(now)
			if v := e.ActiveVoices(); v > res.PeakVoices {
				res.PeakVoices = v
			}
		}
	}
	e.Shutdown()

	st := e.Stats()
	res.NotesOn = st.Emitted
	res.Dropped, res.Stolen = st.Dropped, st.Stolen
	res.FinalPop = e.Colony().Population()
	return res
}

// Run evaluates scenarios on workers goroutines and returns the results
// sorted by notes per generation, busiest first.
func Run(scenarios []Scenario, generations, workers int) []Result {
	if workers < 1 {
		workers = 1
	}
	jobs := make(chan Scenario)
	results := make(chan Result)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range jobs {
				results <- Play(s, generations)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, s := range scenarios {
			jobs <- s
		}
		close(jobs)
	}()

	var all []Result
	for res := range results {
		all = append(all, res)
	}
	sort.Slice(all, func(i, j int) bool {
		if all[i].NotesPerGen() != all[j].NotesPerGen() {
			return all[i].NotesPerGen() > all[j].NotesPerGen()
		}
		return all[i].Scenario.String() < all[j].Scenario.String()
	})
	return all
}

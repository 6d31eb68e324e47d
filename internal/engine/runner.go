package engine

import (
	"context"
	"time"

	"colony/internal/core"
	"colony/pkg/colony"
)

// DefaultResolution is how often the runner polls for due steps and tasks.
const DefaultResolution = 2 * time.Millisecond

// Runner drives an engine from a single goroutine: steps fire at the
// configured tempo and deferred note tasks run between them.
type Runner struct {
	engine     *Engine
	step       *core.FixedStep
	resolution time.Duration

	// OnTick, when set, receives the events of every generation.
	OnTick func(gen uint64, events []colony.Event)
}

// NewRunner returns a runner for e polling at DefaultResolution.
func NewRunner(e *Engine) *Runner {
	return &Runner{
		engine:     e,
		step:       core.NewFixedStep(e.StepInterval()),
		resolution: DefaultResolution,
	}
}

// SetResolution changes the polling period.
func (r *Runner) SetResolution(d time.Duration) {
	if d > 0 {
		r.resolution = d
	}
}

// Run polls until ctx is done, then shuts the engine down (cancelling in-flight
// notes and sending a note-off for every key).
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.resolution)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			r.engine.Shutdown()
			return nil
		case now := <-ticker.C:
			r.Poll(now)
		}
	}
}

// Poll performs one loop iteration at now: step if due, then run due tasks.
func (r *Runner) Poll(now time.Time) {
	r.step.SetInterval(r.engine.StepInterval())
	if r.step.ShouldStep(now) && !r.engine.Paused() {
		events := r.engine.Tick(now)
		if r.OnTick != nil {
			r.OnTick(r.engine.colony.Generation(), events)
		}
	}
	r.engine.Advance(now)
}

// Package engine ties the colony, the pitch mapping and the note scheduler
// into one owned object driven by an external clock.
package engine

import (
	"fmt"
	"time"

	icore "colony/internal/core"
	"colony/internal/midiout"
	"colony/internal/notes"
	"colony/internal/voice"
	"colony/pkg/colony"
	pcore "colony/pkg/core"
	"colony/pkg/pitch"
	"colony/pkg/scale"
)

// Engine owns all mutable simulation state. It is not safe for concurrent
// use: one loop calls Tick and Advance and the front ends share that loop.
type Engine struct {
	cfg     Config
	colony  *colony.Colony
	pool    *voice.Pool
	notes   *notes.Scheduler
	seedRNG *pcore.RNG
	paused  bool
}

// New builds an engine from cfg, seeds the colony and sends notes to out.
func New(cfg Config, out midiout.Output) *Engine {
	pool := voice.New(cfg.Polyphony)
	e := &Engine{
		cfg:     cfg,
		colony:  colony.New(cfg.Rows, cfg.Cols),
		pool:    pool,
		notes:   notes.New(pool, out, pcore.NewRNG(cfg.Seed+1)),
		seedRNG: pcore.NewRNG(cfg.Seed),
	}
	e.notes.SetChannel(cfg.MIDIChannel)
	e.Reseed()
	return e
}

// Name returns the engine identifier.
func (e *Engine) Name() string { return "colony" }

// Size reports the grid dimensions.
func (e *Engine) Size() pcore.Size { return e.colony.Size() }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Colony exposes the automaton for renderers and editing.
func (e *Engine) Colony() *colony.Colony { return e.colony }

// Snapshot copies the grid and generation counter.
func (e *Engine) Snapshot() colony.Snapshot { return e.colony.Snapshot() }

// Stats returns the note scheduler counters.
func (e *Engine) Stats() notes.Stats { return e.notes.Stats() }

// ActiveVoices returns the number of sounding voices.
func (e *Engine) ActiveVoices() int { return e.pool.Len() }

// PendingTasks returns the number of deferred emissions and note-offs.
func (e *Engine) PendingTasks() int { return e.notes.Pending() }

// StepInterval is the time between steps at the configured tempo.
func (e *Engine) StepInterval() time.Duration {
	return icore.StepInterval(float64(e.cfg.BPM), e.cfg.StepsPerBeat)
}

// SetOutput swaps the output collaborator.
func (e *Engine) SetOutput(out midiout.Output) { e.notes.SetOutput(out) }

// SetConfig replaces the configuration. A new grid size reallocates and
// reseeds the colony; a new channel silences the old one first.
func (e *Engine) SetConfig(cfg Config) {
	old := e.cfg
	e.cfg = cfg
	if cfg.Rows != old.Rows || cfg.Cols != old.Cols {
		e.colony = colony.New(cfg.Rows, cfg.Cols)
		e.Reseed()
	}
	if cfg.MIDIChannel != old.MIDIChannel {
		e.notes.CancelPending()
		e.notes.Panic()
		e.notes.SetChannel(cfg.MIDIChannel)
	}
	e.pool.SetLimit(cfg.Polyphony)
}

// Paused reports whether evolution is paused.
func (e *Engine) Paused() bool { return e.paused }

// SetPaused stops or resumes evolution. Deferred note tasks keep running
// unless CancelOnPause is set.
func (e *Engine) SetPaused(p bool) {
	if p && !e.paused && e.cfg.CancelOnPause {
		e.notes.CancelPending()
		e.notes.Panic()
	}
	e.paused = p
}

// TogglePaused flips the paused state.
func (e *Engine) TogglePaused() { e.SetPaused(!e.paused) }

// Reseed fills the colony from the seeding Gaussian at the configured density
// and resets the generation counter.
func (e *Engine) Reseed() {
	e.colony.Reseed(e.seedRNG, e.cfg.SeedDensityPct)
}

// ReseedWith restarts the seeding stream from seed and reseeds.
func (e *Engine) ReseedWith(seed int64) {
	e.cfg.Seed = seed
	e.seedRNG = pcore.NewRNG(seed)
	e.Reseed()
}

// Clear kills every cell.
func (e *Engine) Clear() { e.colony.Clear() }

// Toggle flips a cell between dead and newborn.
func (e *Engine) Toggle(row, col int) { e.colony.Toggle(row, col) }

// Tick advances the colony by one generation and triggers its notes. It does
// nothing while paused.
func (e *Engine) Tick(now time.Time) []colony.Event {
	if e.paused {
		return nil
	}
	return e.Step(now)
}

// Step advances one generation regardless of the paused state.
func (e *Engine) Step(now time.Time) []colony.Event {
	cfg := e.cfg
	events := e.colony.Step(cfg.Rules())
	rows, cols := e.colony.Rows(), e.colony.Cols()
	s := scale.ByIndex(cfg.ScaleIndex)
	for _, ev := range events {
		n := notes.Note{
			DurationMs:     cfg.NoteDurationMs,
			ProbabilityPct: cfg.NoteProbabilityPct,
			JitterMs:       cfg.JitterMs,
		}
		switch ev.Kind {
		case colony.EventBirth:
			n.Pitch = pitch.RowToPitch(ev.Row+1, rows, cfg.RootOffset, s, 0)
			n.Velocity = pitch.BirthVelocity(ev.Col, cols, ev.Neighbors, cfg.VelocityBase)
		case colony.EventDeath:
			if !cfg.DeathNotes {
				continue
			}
			n.Pitch = pitch.RowToPitch(ev.Row+1, rows, cfg.RootOffset, s, cfg.DeathPitchOffset)
			n.Velocity = pitch.DeathVelocity(ev.Age, cfg.VelocityBase)
		default:
			continue
		}
		e.notes.Trigger(now, n)
	}
	return events
}

// Advance runs every deferred note task due by now. It runs while paused.
func (e *Engine) Advance(now time.Time) int {
	return e.notes.Advance(now)
}

// Shutdown cancels every in-flight note task and sends a note-off for every
// key on the channel.
func (e *Engine) Shutdown() {
	e.notes.CancelPending()
	e.notes.Panic()
}

// StatusLine summarises the engine for front ends.
func (e *Engine) StatusLine() string {
	state := "running"
	if e.paused {
		state = "paused"
	}
	st := e.notes.Stats()
	return fmt.Sprintf("gen %d  pop %d  voices %d/%d  notes %d  dropped %d  stolen %d  %s",
		e.colony.Generation(), e.colony.Population(), e.pool.Len(), e.pool.Limit(),
		st.Emitted, st.Dropped, st.Stolen, state)
}

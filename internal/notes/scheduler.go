// Package notes turns triggered notes into paired note-on/note-off commands.
// Triggers pass a probability gate, may be delayed by random jitter, and hold
// a voice from the pool until their deferred note-off fires or they are stolen.
package notes

import (
	"log"
	"time"

	"colony/internal/midiout"
	"colony/internal/sched"
	"colony/internal/voice"
	"colony/pkg/core"
	"colony/pkg/pitch"
)

// Note is a request to play one note.
type Note struct {
	Pitch          int
	Velocity       int
	DurationMs     int
	ProbabilityPct int
	JitterMs       int
}

// Stats counts what happened to triggered notes.
type Stats struct {
	Triggered int
	Dropped   int
	Emitted   int
	Stolen    int
	Released  int
	Cancelled int
}

// Scheduler owns the deferred tasks for note emission and release. All of its
// methods must be called from a single goroutine.
type Scheduler struct {
	pool    *voice.Pool
	queue   *sched.Queue
	out     midiout.Output
	rng     *core.RNG
	channel uint8
	offs    map[uint64]sched.Token
	stats   Stats
	logger  *log.Logger
}

// New returns a scheduler that admits voices into pool and sends commands to
// out. A nil out drops commands.
func New(pool *voice.Pool, out midiout.Output, rng *core.RNG) *Scheduler {
	if out == nil {
		out = midiout.Null{}
	}
	return &Scheduler{
		pool:   pool,
		queue:  sched.NewQueue(),
		out:    out,
		rng:    rng,
		offs:   map[uint64]sched.Token{},
		logger: log.Default(),
	}
}

// SetOutput swaps the output collaborator.
func (s *Scheduler) SetOutput(out midiout.Output) {
	if out == nil {
		out = midiout.Null{}
	}
	s.out = out
}

// SetLogger overrides where output failures are reported.
func (s *Scheduler) SetLogger(l *log.Logger) { s.logger = l }

// SetChannel selects the MIDI channel (0-15) for subsequent commands.
func (s *Scheduler) SetChannel(ch int) { s.channel = uint8(pitch.Clamp(ch, 0, 15)) }

// Channel returns the current MIDI channel.
func (s *Scheduler) Channel() uint8 { return s.channel }

// Stats returns the running counters.
func (s *Scheduler) Stats() Stats { return s.stats }

// Pending returns the number of scheduled emissions and note-offs.
func (s *Scheduler) Pending() int { return s.queue.Pending() }

// Trigger plays n at now unless the probability gate drops it. With jitter the
// note-on is deferred by a uniform delay in [0, JitterMs] milliseconds. The
// note-off is always scheduled DurationMs after the note-on actually sounds.
func (s *Scheduler) Trigger(now time.Time, n Note) bool {
	s.stats.Triggered++
	if s.rng.Float64() >= float64(n.ProbabilityPct)/100 {
		s.stats.Dropped++
		return false
	}
	if n.JitterMs > 0 {
		delay := time.Duration(s.rng.IntN(n.JitterMs+1)) * time.Millisecond
		s.queue.After(now, delay, func(due time.Time) { s.emit(due, n) })
		return true
	}
	s.emit(now, n)
	return true
}

// Advance runs every deferred task due by now.
func (s *Scheduler) Advance(now time.Time) int {
	return s.queue.RunDue(now)
}

// Release silences the most recent voice sounding pitch, if any, and cancels
// its pending note-off.
func (s *Scheduler) Release(key int) bool {
	v, ok := s.pool.Release(key)
	if !ok {
		return false
	}
	s.cancelOff(v.ID)
	s.noteOff(v.Pitch)
	s.stats.Released++
	return true
}

// CancelPending drops scheduled emissions and note-offs. Voices that were
// waiting on a note-off keep sounding until Panic.
func (s *Scheduler) CancelPending() int {
	n := s.queue.CancelAll()
	clear(s.offs)
	s.stats.Cancelled += n
	return n
}

// Panic sends a note-off for every key on the channel and empties the pool.
// The pool may not match the device when tasks were in flight, so every key
// is covered.
func (s *Scheduler) Panic() {
	if err := midiout.AllNotesOff(s.out, s.channel); err != nil {
		s.logger.Printf("all notes off: %v", err)
	}
	s.pool.Reset()
	clear(s.offs)
}

func (s *Scheduler) emit(at time.Time, n Note) {
	key := pitch.Clamp(n.Pitch, 0, 127)
	vel := pitch.Clamp(n.Velocity, 1, 127)
	v, stolen := s.pool.Admit(key, at)
	for _, old := range stolen {
		s.cancelOff(old.ID)
		s.noteOff(old.Pitch)
		s.stats.Stolen++
	}
	if err := s.out.NoteOn(s.channel, uint8(key), uint8(vel)); err != nil {
		s.logger.Printf("note on %s: %v", pitch.NoteName(key), err)
	}
	s.stats.Emitted++

	dur := time.Duration(n.DurationMs) * time.Millisecond
	s.offs[v.ID] = s.queue.After(at, dur, func(time.Time) { s.expire(v) })
}

func (s *Scheduler) expire(v voice.Voice) {
	delete(s.offs, v.ID)
	if _, ok := s.pool.ReleaseID(v.ID); !ok {
		return
	}
	s.noteOff(v.Pitch)
	s.stats.Released++
}

func (s *Scheduler) cancelOff(id uint64) {
	if tok, ok := s.offs[id]; ok {
		s.queue.Cancel(tok)
		delete(s.offs, id)
	}
}

func (s *Scheduler) noteOff(key int) {
	if err := s.out.NoteOff(s.channel, uint8(key)); err != nil {
		s.logger.Printf("note off %s: %v", pitch.NoteName(key), err)
	}
}

package core

import "time"

// FixedStep decides when the next automaton step is due at a steady interval.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
}

// NewFixedStep constructs a FixedStep that fires every interval. The first
// call to ShouldStep fires immediately.
func NewFixedStep(interval time.Duration) *FixedStep {
	fs := &FixedStep{}
	fs.SetInterval(interval)
	fs.accumulator = fs.step
	return fs
}

// StepInterval converts a tempo and a steps-per-beat rate into the time
// between steps. Non-positive inputs fall back to 120 BPM and one step per beat.
func StepInterval(bpm float64, stepsPerBeat int) time.Duration {
	if bpm <= 0 {
		bpm = 120
	}
	if stepsPerBeat <= 0 {
		stepsPerBeat = 1
	}
	return time.Duration(float64(time.Minute) / bpm / float64(stepsPerBeat))
}

// SetInterval changes the step length. It is safe to call from the main loop.
func (f *FixedStep) SetInterval(d time.Duration) {
	if d <= 0 {
		d = time.Second / 2
	}
	f.step = d
}

// Interval returns the step length.
func (f *FixedStep) Interval() time.Duration { return f.step }

// Reset forgets accumulated time so the next step waits a full interval.
func (f *FixedStep) Reset() {
	f.accumulator = 0
	f.last = time.Time{}
}

// ShouldStep reports whether a step is due at now. At most one step fires per
// call; a lagging caller catches up over subsequent calls.
func (f *FixedStep) ShouldStep(now time.Time) bool {
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

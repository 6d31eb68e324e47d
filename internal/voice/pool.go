// Package voice tracks sounding notes under a polyphony ceiling.
package voice

import "time"

// Voice is one sounding note.
type Voice struct {
	ID     uint64
	Pitch  int
	BornAt time.Time
}

// Pool is a bounded set of voices. When full, admitting a new voice steals
// the oldest one. Several voices may share a pitch.
type Pool struct {
	limit  int
	voices []Voice
	nextID uint64
}

// New returns a pool that holds at most limit voices.
func New(limit int) *Pool {
	p := &Pool{}
	p.SetLimit(limit)
	return p
}

// SetLimit changes the ceiling. Values below 1 are treated as 1. Lowering the
// limit does not evict voices until the next Admit.
func (p *Pool) SetLimit(limit int) {
	if limit < 1 {
		limit = 1
	}
	p.limit = limit
}

// Limit returns the configured ceiling.
func (p *Pool) Limit() int { return p.limit }

// Len returns the number of held voices.
func (p *Pool) Len() int { return len(p.voices) }

// Voices returns a copy of the held voices in insertion order.
func (p *Pool) Voices() []Voice { return append([]Voice(nil), p.voices...) }

// Admit inserts a voice for pitch born at now. Voices stolen to make room are
// returned so the caller can silence them.
func (p *Pool) Admit(pitch int, now time.Time) (Voice, []Voice) {
	var stolen []Voice
	for len(p.voices) >= p.limit {
		stolen = append(stolen, p.removeAt(p.oldest()))
	}
	p.nextID++
	v := Voice{ID: p.nextID, Pitch: pitch, BornAt: now}
	p.voices = append(p.voices, v)
	return v, stolen
}

// Release removes the most recently inserted voice with the given pitch. It
// reports false when no voice matches.
func (p *Pool) Release(pitch int) (Voice, bool) {
	for i := len(p.voices) - 1; i >= 0; i-- {
		if p.voices[i].Pitch == pitch {
			return p.removeAt(i), true
		}
	}
	return Voice{}, false
}

// ReleaseID removes the voice with the given id.
func (p *Pool) ReleaseID(id uint64) (Voice, bool) {
	for i := range p.voices {
		if p.voices[i].ID == id {
			return p.removeAt(i), true
		}
	}
	return Voice{}, false
}

// Holds reports whether the voice with the given id is still sounding.
func (p *Pool) Holds(id uint64) bool {
	for i := range p.voices {
		if p.voices[i].ID == id {
			return true
		}
	}
	return false
}

// Reset empties the pool and returns the voices it held.
func (p *Pool) Reset() []Voice {
	out := p.voices
	p.voices = nil
	return out
}

func (p *Pool) oldest() int {
	idx := 0
	for i := 1; i < len(p.voices); i++ {
		if p.voices[i].BornAt.Before(p.voices[idx].BornAt) {
			idx = i
		}
	}
	return idx
}

func (p *Pool) removeAt(i int) Voice {
	v := p.voices[i]
	p.voices = append(p.voices[:i], p.voices[i+1:]...)
	return v
}

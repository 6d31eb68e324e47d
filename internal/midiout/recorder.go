package midiout

import (
	"io"
	"math"
	"sort"
	"sync"
	"time"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"
)

// TicksPerQuarter is the resolution of recorded files.
const TicksPerQuarter = 960

type recorded struct {
	at  time.Duration
	msg midi.Message
}

// Recorder captures note commands with their wall-clock offsets and renders
// them as a single-track Standard MIDI File.
type Recorder struct {
	mu     sync.Mutex
	bpm    float64
	now    func() time.Time
	start  time.Time
	events []recorded
}

// NewRecorder returns a recorder for the given tempo. now defaults to
// time.Now; the first recorded command starts the timeline.
func NewRecorder(bpm float64, now func() time.Time) *Recorder {
	if bpm <= 0 {
		bpm = 120
	}
	if now == nil {
		now = time.Now
	}
	return &Recorder{bpm: bpm, now: now}
}

func (r *Recorder) NoteOn(ch, key, vel uint8) error {
	r.add(midi.NoteOn(ch, key, vel))
	return nil
}

func (r *Recorder) NoteOff(ch, key uint8) error {
	r.add(midi.NoteOff(ch, key))
	return nil
}

func (r *Recorder) add(msg midi.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t := r.now()
	if r.start.IsZero() {
		r.start = t
	}
	r.events = append(r.events, recorded{at: t.Sub(r.start), msg: msg})
}

// Len returns the number of recorded commands.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.events)
}

// SMF renders the recording.
func (r *Recorder) SMF() (*smf.SMF, error) {
	r.mu.Lock()
	events := append([]recorded(nil), r.events...)
	r.mu.Unlock()
	sort.SliceStable(events, func(i, j int) bool { return events[i].at < events[j].at })

	sm := smf.New()
	sm.TimeFormat = smf.MetricTicks(TicksPerQuarter)

	var track smf.Track
	track.Add(0, smf.MetaMeter(4, 4))
	track.Add(0, smf.MetaTempo(r.bpm))
	var last uint32
	for _, ev := range events {
		abs := r.ticks(ev.at)
		track.Add(abs-last, ev.msg)
		last = abs
	}
	track.Close(0)
	if err := sm.Add(track); err != nil {
		return nil, err
	}
	return sm, nil
}

// WriteTo writes the recording as an SMF to w.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	sm, err := r.SMF()
	if err != nil {
		return 0, err
	}
	return sm.WriteTo(w)
}

// WriteFile writes the recording as an SMF to path.
func (r *Recorder) WriteFile(path string) error {
	sm, err := r.SMF()
	if err != nil {
		return err
	}
	return sm.WriteFile(path)
}

func (r *Recorder) ticks(d time.Duration) uint32 {
	beats := d.Seconds() * r.bpm / 60
	return uint32(math.Round(beats * TicksPerQuarter))
}

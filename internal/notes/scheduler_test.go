package notes

import (
	"io"
	"log"
	"testing"
	"time"

	"colony/internal/midiout"
	"colony/internal/voice"
	"colony/pkg/core"
)

var epoch = time.Unix(1_700_000_000, 0)

func ms(n int) time.Duration { return time.Duration(n) * time.Millisecond }

func newTestScheduler(limit int, seed int64) (*Scheduler, *voice.Pool, *midiout.Capture) {
	pool := voice.New(limit)
	capture := midiout.NewCapture(0)
	s := New(pool, capture, core.NewRNG(seed))
	s.SetLogger(log.New(io.Discard, "", 0))
	return s, pool, capture
}

// checkPairing replays captured commands and fails if a note-off arrives for
// a key with no sounding note-on.
func checkPairing(t *testing.T, msgs []midiout.Message) {
	t.Helper()
	sounding := map[uint8]int{}
	for i, m := range msgs {
		switch m.Kind {
		case midiout.KindNoteOn:
			sounding[m.Key]++
		case midiout.KindNoteOff:
			if sounding[m.Key] == 0 {
				t.Fatalf("message %d: note off for %d without a sounding note on", i, m.Key)
			}
			sounding[m.Key]--
		}
	}
}

func TestProbabilityGate(t *testing.T) {
	s, _, capture := newTestScheduler(1000, 1)
	for i := 0; i < 100; i++ {
		if s.Trigger(epoch, Note{Pitch: 60, Velocity: 90, DurationMs: 10, ProbabilityPct: 0}) {
			t.Fatal("probability 0 must drop every note")
		}
	}
	if len(capture.Messages()) != 0 {
		t.Fatal("dropped notes must not emit anything")
	}
	for i := 0; i < 100; i++ {
		if !s.Trigger(epoch, Note{Pitch: 60, Velocity: 90, DurationMs: 10, ProbabilityPct: 100}) {
			t.Fatal("probability 100 must keep every note")
		}
	}
	st := s.Stats()
	if st.Triggered != 200 || st.Dropped != 100 || st.Emitted != 100 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestProbabilityThinsRoughlyProportionally(t *testing.T) {
	s, _, _ := newTestScheduler(10000, 99)
	kept := 0
	for i := 0; i < 2000; i++ {
		if s.Trigger(epoch, Note{Pitch: 60, Velocity: 90, DurationMs: 10, ProbabilityPct: 30}) {
			kept++
		}
	}
	if kept < 480 || kept > 720 {
		t.Fatalf("kept %d of 2000 at 30%%", kept)
	}
}

func TestImmediateNoteAndDeferredOff(t *testing.T) {
	s, pool, capture := newTestScheduler(4, 1)
	s.SetChannel(5)
	s.Trigger(epoch, Note{Pitch: 64, Velocity: 300, DurationMs: 200, ProbabilityPct: 100})

	msgs := capture.Messages()
	if len(msgs) != 1 || msgs[0].Kind != midiout.KindNoteOn || msgs[0].Key != 64 || msgs[0].Velocity != 127 || msgs[0].Channel != 5 {
		t.Fatalf("messages = %+v", msgs)
	}
	if pool.Len() != 1 {
		t.Fatalf("pool len = %d, want 1", pool.Len())
	}
	s.Advance(epoch.Add(ms(199)))
	if len(capture.Messages()) != 1 {
		t.Fatal("note off fired early")
	}
	s.Advance(epoch.Add(ms(200)))
	msgs = capture.Messages()
	if len(msgs) != 2 || msgs[1].Kind != midiout.KindNoteOff || msgs[1].Key != 64 {
		t.Fatalf("messages = %+v", msgs)
	}
	if pool.Len() != 0 {
		t.Fatal("voice should be released")
	}
}

func TestJitterDelaysNoteOnAndNeverReordersItsOff(t *testing.T) {
	s, _, capture := newTestScheduler(64, 5)
	for i := 0; i < 200; i++ {
		// Jitter far longer than duration: the off must still follow the on.
		s.Trigger(epoch, Note{Pitch: 40 + i%20, Velocity: 80, DurationMs: 5, ProbabilityPct: 100, JitterMs: 100})
	}
	if len(capture.Messages()) != 0 {
		// A zero draw is due at epoch but still waits for Advance.
		t.Fatal("jittered notes must wait for Advance")
	}
	for step := 0; step <= 120; step++ {
		s.Advance(epoch.Add(ms(step)))
	}
	msgs := capture.Messages()
	checkPairing(t, msgs)
	var on, off int
	for _, m := range msgs {
		if m.Kind == midiout.KindNoteOn {
			on++
		} else {
			off++
		}
	}
	if on != 200 || off != 200 {
		t.Fatalf("on=%d off=%d, want 200 each", on, off)
	}
	if s.Pending() != 0 {
		t.Fatalf("pending = %d", s.Pending())
	}
}

func TestStealingSilencesOldestOnce(t *testing.T) {
	s, pool, capture := newTestScheduler(2, 1)
	s.Trigger(epoch, Note{Pitch: 60, Velocity: 90, DurationMs: 100, ProbabilityPct: 100})
	s.Trigger(epoch.Add(ms(1)), Note{Pitch: 62, Velocity: 90, DurationMs: 100, ProbabilityPct: 100})
	s.Trigger(epoch.Add(ms(2)), Note{Pitch: 64, Velocity: 90, DurationMs: 100, ProbabilityPct: 100})

	msgs := capture.Messages()
	if len(msgs) != 4 {
		t.Fatalf("messages = %+v", msgs)
	}
	if msgs[2].Kind != midiout.KindNoteOff || msgs[2].Key != 60 {
		t.Fatalf("steal should silence pitch 60 before the new note, got %+v", msgs[2])
	}
	if pool.Len() != 2 {
		t.Fatalf("pool len = %d, want 2", pool.Len())
	}

	s.Advance(epoch.Add(time.Second))
	msgs = capture.Messages()
	checkPairing(t, msgs)
	offs := 0
	for _, m := range msgs {
		if m.Kind == midiout.KindNoteOff {
			offs++
		}
	}
	if offs != 3 {
		t.Fatalf("note offs = %d, want 3 (stolen note must not be released twice)", offs)
	}
	if st := s.Stats(); st.Stolen != 1 || st.Released != 2 {
		t.Fatalf("stats = %+v", st)
	}
}

func TestDuplicatePitchesPairUp(t *testing.T) {
	s, _, capture := newTestScheduler(8, 1)
	s.Trigger(epoch, Note{Pitch: 60, Velocity: 90, DurationMs: 50, ProbabilityPct: 100})
	s.Trigger(epoch.Add(ms(10)), Note{Pitch: 60, Velocity: 90, DurationMs: 500, ProbabilityPct: 100})
	s.Advance(epoch.Add(ms(60)))
	msgs := capture.Messages()
	if len(msgs) != 3 {
		t.Fatalf("messages = %+v", msgs)
	}
	checkPairing(t, msgs)
	s.Advance(epoch.Add(time.Second))
	checkPairing(t, capture.Messages())
}

func TestReleaseByPitch(t *testing.T) {
	s, pool, capture := newTestScheduler(8, 1)
	s.Trigger(epoch, Note{Pitch: 67, Velocity: 90, DurationMs: 500, ProbabilityPct: 100})
	if !s.Release(67) || pool.Len() != 0 {
		t.Fatal("release should free the voice")
	}
	if s.Release(67) {
		t.Fatal("second release must be a no-op")
	}
	s.Advance(epoch.Add(time.Second))
	if n := len(capture.Messages()); n != 2 {
		t.Fatalf("messages = %d, want on+off only", n)
	}
}

func TestCancelPendingAndPanic(t *testing.T) {
	s, pool, capture := newTestScheduler(8, 1)
	s.Trigger(epoch, Note{Pitch: 60, Velocity: 90, DurationMs: 500, ProbabilityPct: 100})
	s.Trigger(epoch, Note{Pitch: 62, Velocity: 90, DurationMs: 500, ProbabilityPct: 100, JitterMs: 50})
	if n := s.CancelPending(); n != 2 {
		t.Fatalf("cancelled %d tasks, want 2", n)
	}
	s.Advance(epoch.Add(time.Second))
	if len(capture.Messages()) != 1 {
		t.Fatal("cancelled tasks must not emit")
	}
	if pool.Len() != 1 {
		t.Fatal("held voice stays until panic")
	}
	capture.Reset()
	s.Panic()
	if pool.Len() != 0 {
		t.Fatal("panic should empty the pool")
	}
	if n := len(capture.Messages()); n != 128 {
		t.Fatalf("panic sent %d note offs, want 128", n)
	}
}

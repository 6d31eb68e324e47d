package voice

import (
	"testing"
	"time"
)

var epoch = time.Unix(1_700_000_000, 0)

func at(ms int) time.Time { return epoch.Add(time.Duration(ms) * time.Millisecond) }

func TestAdmitNeverExceedsLimit(t *testing.T) {
	p := New(3)
	for i := 0; i < 20; i++ {
		p.Admit(60+i%5, at(i))
		if p.Len() > p.Limit() {
			t.Fatalf("pool size %d exceeds limit %d", p.Len(), p.Limit())
		}
	}
}

func TestAdmitStealsOldest(t *testing.T) {
	p := New(3)
	// Out-of-order birth times: the oldest is not the first inserted.
	p.Admit(60, at(20))
	p.Admit(62, at(5))
	p.Admit(64, at(30))

	v, stolen := p.Admit(67, at(40))
	if len(stolen) != 1 || stolen[0].Pitch != 62 {
		t.Fatalf("stole %+v, want the voice born at 5ms (pitch 62)", stolen)
	}
	if v.Pitch != 67 || !v.BornAt.Equal(at(40)) {
		t.Fatalf("admitted %+v", v)
	}
	for _, held := range p.Voices() {
		if held.ID == stolen[0].ID {
			t.Fatal("stolen voice still held")
		}
	}
}

func TestLoweredLimitStealsSeveral(t *testing.T) {
	p := New(4)
	for i := 0; i < 4; i++ {
		p.Admit(60+i, at(i))
	}
	p.SetLimit(2)
	_, stolen := p.Admit(70, at(10))
	if len(stolen) != 3 {
		t.Fatalf("stole %d voices, want 3", len(stolen))
	}
	for i, v := range stolen {
		if v.Pitch != 60+i {
			t.Fatalf("steal order %d got pitch %d", i, v.Pitch)
		}
	}
	if p.Len() != 2 {
		t.Fatalf("len = %d, want 2", p.Len())
	}
}

func TestReleasePrefersMostRecentMatch(t *testing.T) {
	p := New(8)
	first, _ := p.Admit(60, at(0))
	p.Admit(64, at(1))
	second, _ := p.Admit(60, at(2))

	got, ok := p.Release(60)
	if !ok || got.ID != second.ID {
		t.Fatalf("released %+v, want most recent duplicate %+v", got, second)
	}
	if !p.Holds(first.ID) {
		t.Fatal("older duplicate should still be held")
	}
	if _, ok := p.Release(72); ok {
		t.Fatal("releasing an absent pitch must be a no-op")
	}
	if p.Len() != 2 {
		t.Fatalf("len = %d, want 2", p.Len())
	}
}

func TestReleaseIDAndReset(t *testing.T) {
	p := New(0)
	if p.Limit() != 1 {
		t.Fatalf("limit = %d, want 1", p.Limit())
	}
	v, _ := p.Admit(50, at(0))
	if _, ok := p.ReleaseID(v.ID + 1); ok {
		t.Fatal("unknown id released")
	}
	if _, ok := p.ReleaseID(v.ID); !ok || p.Len() != 0 {
		t.Fatal("release by id failed")
	}
	p.Admit(51, at(1))
	if held := p.Reset(); len(held) != 1 || p.Len() != 0 {
		t.Fatalf("reset returned %v, len %d", held, p.Len())
	}
}

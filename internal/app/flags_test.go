package app

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"colony/internal/engine"
	"colony/internal/midiout"
	"colony/pkg/colony"
)

func parse(t *testing.T, args ...string) *Config {
	t.Helper()
	cfg := NewConfig()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.Bind(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return cfg
}

func TestEngineConfigDefaults(t *testing.T) {
	got, err := parse(t).EngineConfig()
	if err != nil {
		t.Fatal(err)
	}
	if got != engine.DefaultConfig() {
		t.Fatalf("no flags should yield the default engine config, got %+v", got)
	}
}

func TestEngineConfigFlagsAndOverrides(t *testing.T) {
	cfg := parse(t, "-rows", "12", "-rules", "maze", "-seed", "9",
		"-set", "probability=90", "-set", "death_notes = true", "-set", "survive_max=4")
	got, err := cfg.EngineConfig()
	if err != nil {
		t.Fatal(err)
	}
	maze, _ := colony.Preset("maze")
	if got.Rows != 12 || got.Seed != 9 || got.Birth != maze.Birth || got.SurviveMin != maze.SurviveMin {
		t.Fatalf("flags not applied: %+v", got)
	}
	if got.NoteProbabilityPct != 90 || !got.DeathNotes || got.SurviveMax != 4 {
		t.Fatalf("overrides not applied: %+v", got)
	}
}

func TestEngineConfigRejectsBadInput(t *testing.T) {
	for _, args := range [][]string{
		{"-rules", "nope"},
		{"-set", "probability"},
		{"-set", "volume=3"},
		{"-set", "bpm=fast"},
	} {
		if _, err := parse(t, args...).EngineConfig(); err == nil {
			t.Fatalf("%v: expected an error", args)
		}
	}
}

func TestOpenOutputsRecordsAndFansOut(t *testing.T) {
	path := filepath.Join(t.TempDir(), "take.mid")
	cfg := parse(t, "-record", path)
	capture := midiout.NewCapture(0)
	outs := OpenOutputs(cfg, 120, capture)
	if err := outs.Out.NoteOn(0, 60, 100); err != nil {
		t.Fatal(err)
	}
	if err := outs.Out.NoteOff(0, 60); err != nil {
		t.Fatal(err)
	}
	if outs.Recorded() != 2 || len(capture.Messages()) != 2 {
		t.Fatalf("recorded=%d captured=%d", outs.Recorded(), len(capture.Messages()))
	}
	if err := outs.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		t.Fatalf("recording not written: %v", err)
	}
}

func TestOpenOutputsWithoutDestinations(t *testing.T) {
	outs := OpenOutputs(parse(t), 120)
	if _, ok := outs.Out.(midiout.Null); !ok {
		t.Fatalf("expected Null output, got %T", outs.Out)
	}
	if err := outs.Close(); err != nil {
		t.Fatal(err)
	}
}

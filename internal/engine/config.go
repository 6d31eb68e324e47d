package engine

import (
	"strconv"

	"colony/pkg/colony"
	"colony/pkg/scale"
)

// Config is the full set of values the engine reads on every tick. The
// engine always starts from DefaultConfig; nothing is loaded from disk.
type Config struct {
	Rows int
	Cols int
	Seed int64

	BPM          int
	StepsPerBeat int

	ScaleIndex         int
	RootOffset         int
	MIDIChannel        int
	VelocityBase       int
	NoteDurationMs     int
	Polyphony          int
	NoteProbabilityPct int
	JitterMs           int
	DeathNotes         bool
	DeathPitchOffset   int
	SeedDensityPct     int

	Birth      int
	SurviveMin int
	SurviveMax int

	// CancelOnPause drops in-flight emissions and note-offs when evolution
	// pauses and silences the channel. Off by default: pausing only stops
	// future steps.
	CancelOnPause bool
}

// DefaultConfig returns the startup configuration.
func DefaultConfig() Config {
	return Config{
		Rows:               32,
		Cols:               32,
		Seed:               1337,
		BPM:                120,
		StepsPerBeat:       2,
		ScaleIndex:         scale.Pentatonic,
		RootOffset:         0,
		MIDIChannel:        0,
		VelocityBase:       64,
		NoteDurationMs:     250,
		Polyphony:          8,
		NoteProbabilityPct: 35,
		JitterMs:           30,
		DeathNotes:         false,
		DeathPitchOffset:   -12,
		SeedDensityPct:     45,
		Birth:              3,
		SurviveMin:         2,
		SurviveMax:         3,
	}
}

// Rules returns the automaton thresholds.
func (c Config) Rules() colony.Rules {
	return colony.Rules{Birth: c.Birth, SurviveMin: c.SurviveMin, SurviveMax: c.SurviveMax}
}

// FromMap populates the config from a string map (flag-style key/value pairs)
// on top of the defaults. Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	// Presets go first so explicit thresholds override them.
	if v, ok := cfg["rules"]; ok {
		c.Set("rules", v)
	}
	for k, v := range cfg {
		if k == "rules" {
			continue
		}
		c.Set(k, v)
	}
	return c
}

// Set applies a single key/value override and reports whether it was used.
func (c *Config) Set(key, value string) bool {
	switch key {
	case "seed":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return false
		}
		c.Seed = parsed
		return true
	case "death_notes", "cancel_on_pause":
		parsed, err := strconv.ParseBool(value)
		if err != nil {
			return false
		}
		if key == "death_notes" {
			c.DeathNotes = parsed
		} else {
			c.CancelOnPause = parsed
		}
		return true
	case "rules":
		r, ok := colony.Preset(value)
		if !ok {
			return false
		}
		c.Birth, c.SurviveMin, c.SurviveMax = r.Birth, r.SurviveMin, r.SurviveMax
		return true
	}
	field := c.intField(key)
	if field == nil {
		return false
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return false
	}
	if (key == "rows" || key == "cols") && parsed <= 0 {
		return false
	}
	*field = parsed
	return true
}

func (c *Config) intField(key string) *int {
	switch key {
	case "rows":
		return &c.Rows
	case "cols":
		return &c.Cols
	case "bpm":
		return &c.BPM
	case "speed":
		return &c.StepsPerBeat
	case "scale":
		return &c.ScaleIndex
	case "root":
		return &c.RootOffset
	case "channel":
		return &c.MIDIChannel
	case "velocity":
		return &c.VelocityBase
	case "duration_ms":
		return &c.NoteDurationMs
	case "polyphony":
		return &c.Polyphony
	case "probability":
		return &c.NoteProbabilityPct
	case "jitter_ms":
		return &c.JitterMs
	case "death_offset":
		return &c.DeathPitchOffset
	case "density":
		return &c.SeedDensityPct
	case "birth":
		return &c.Birth
	case "survive_min":
		return &c.SurviveMin
	case "survive_max":
		return &c.SurviveMax
	}
	return nil
}

package engine

import (
	"strconv"

	"colony/internal/core"
	"colony/pkg/scale"
)

// Parameters reports the configuration and live status for control panels.
func (e *Engine) Parameters() core.ParameterSnapshot {
	c := e.cfg
	stats := e.notes.Stats()
	groups := []core.ParameterGroup{
		{
			Name: "Colony",
			Params: []core.Parameter{
				intParam("rows", "Rows", c.Rows),
				intParam("cols", "Columns", c.Cols),
				int64Param("seed", "Seed", c.Seed),
				intParam("density", "Seed density %", c.SeedDensityPct),
				intParam("birth", "Birth count", c.Birth),
				intParam("survive_min", "Survive min", c.SurviveMin),
				intParam("survive_max", "Survive max", c.SurviveMax),
			},
			Summary: c.Rules().String(),
		},
		{
			Name: "Notes",
			Params: []core.Parameter{
				intParam("scale", "Scale", c.ScaleIndex),
				stringParam("scale_name", "Scale name", scale.ByIndex(c.ScaleIndex).Name),
				intParam("root", "Root offset", c.RootOffset),
				intParam("channel", "MIDI channel", c.MIDIChannel),
				intParam("velocity", "Velocity base", c.VelocityBase),
				intParam("duration_ms", "Duration ms", c.NoteDurationMs),
				intParam("polyphony", "Polyphony", c.Polyphony),
				intParam("probability", "Probability %", c.NoteProbabilityPct),
				intParam("jitter_ms", "Jitter ms", c.JitterMs),
				boolParam("death_notes", "Death notes", c.DeathNotes),
				intParam("death_offset", "Death offset", c.DeathPitchOffset),
			},
		},
		{
			Name: "Clock",
			Params: []core.Parameter{
				intParam("bpm", "BPM", c.BPM),
				intParam("speed", "Steps per beat", c.StepsPerBeat),
				boolParam("cancel_on_pause", "Cancel on pause", c.CancelOnPause),
			},
		},
		{
			Name: "Status",
			Params: []core.Parameter{
				uint64Param("generation", "Generation", e.colony.Generation()),
				intParam("population", "Population", e.colony.Population()),
				intParam("voices", "Voices", e.pool.Len()),
				intParam("pending", "Pending tasks", e.notes.Pending()),
				intParam("emitted", "Notes played", stats.Emitted),
				intParam("dropped", "Notes dropped", stats.Dropped),
				intParam("stolen", "Voices stolen", stats.Stolen),
				boolParam("paused", "Paused", e.paused),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the values control panels may adjust.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		intControl("scale", "Scale", 1, 0, scale.Len()-1),
		intControl("root", "Root", 1, -24, 24),
		intControl("channel", "Channel", 1, 0, 15),
		intControl("velocity", "Velocity", 4, 1, 127),
		intControl("duration_ms", "Duration", 25, 10, 4000),
		intControl("polyphony", "Polyphony", 1, 1, 64),
		intControl("probability", "Probability", 5, 0, 100),
		intControl("jitter_ms", "Jitter", 5, 0, 500),
		boolControl("death_notes", "Death notes"),
		intControl("death_offset", "Death offset", 1, -36, 36),
		intControl("density", "Density", 5, 0, 100),
		intControl("birth", "Birth", 1, 0, 8),
		intControl("survive_min", "Survive min", 1, 0, 8),
		intControl("survive_max", "Survive max", 1, 0, 8),
		intControl("bpm", "BPM", 5, 20, 300),
		intControl("speed", "Steps/beat", 1, 1, 8),
	}
}

// SetIntParameter applies a control-panel edit. Grid dimensions and the seed
// are fixed for the lifetime of the engine and are rejected here.
func (e *Engine) SetIntParameter(key string, value int) bool {
	var ctrl core.ParameterControl
	found := false
	for _, c := range e.ParameterControls() {
		if c.Key == key {
			ctrl, found = c, true
			break
		}
	}
	if !found {
		return false
	}
	value = ctrl.Clamp(value)
	cfg := e.cfg
	if ctrl.Type == core.ParamTypeBool {
		if !cfg.Set(key, strconv.FormatBool(value != 0)) {
			return false
		}
	} else if !cfg.Set(key, strconv.Itoa(value)) {
		return false
	}
	e.SetConfig(cfg)
	return true
}

func intControl(key, label string, step, min, max int) core.ParameterControl {
	return core.ParameterControl{
		Key:    key,
		Label:  label,
		Type:   core.ParamTypeInt,
		Step:   step,
		Min:    min,
		Max:    max,
		HasMin: true,
		HasMax: true,
	}
}

func boolControl(key, label string) core.ParameterControl {
	return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeBool, Step: 1, Min: 0, Max: 1, HasMin: true, HasMax: true}
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func uint64Param(key, label string, value uint64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatUint(value, 10),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	v := "0"
	if value {
		v = "1"
	}
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeBool, Value: v}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeString, Value: value}
}

package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"

	"colony/internal/engine"
	"colony/pkg/colony"
)

// kvList collects repeatable key=value flags.
type kvList []string

func (l *kvList) String() string {
	return strings.Join(*l, ",")
}

func (l *kvList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Config represents the command-line parameters shared by the front ends.
type Config struct {
	Scale   int
	TPS     int
	Seed    int64
	Rows    int
	Cols    int
	Rules   string
	Port    string
	Record  string
	Verbose bool

	overrides kvList
}

// NewConfig returns a Config populated with sensible defaults. Grid and seed
// defaults come from engine.DefaultConfig.
func NewConfig() *Config {
	def := engine.DefaultConfig()
	return &Config{Scale: 16, TPS: 60, Seed: def.Seed, Rows: def.Rows, Cols: def.Cols}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "frames per second for the GUI loop")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for the initial colony")
	fs.IntVar(&c.Rows, "rows", c.Rows, "grid rows")
	fs.IntVar(&c.Cols, "cols", c.Cols, "grid columns")
	fs.StringVar(&c.Rules, "rules", c.Rules, "rules preset ("+strings.Join(colony.PresetNames(), ", ")+")")
	fs.StringVar(&c.Port, "port", c.Port, "MIDI output port name or index (empty for none)")
	fs.StringVar(&c.Record, "record", c.Record, "write the performance to this .mid file on exit")
	fs.BoolVar(&c.Verbose, "v", c.Verbose, "log every note")
	fs.Var(&c.overrides, "set", "engine parameter override in key=value form (repeatable)")
}

// AddOverride appends a key=value override as if passed with -set.
func (c *Config) AddOverride(kv string) { c.overrides = append(c.overrides, kv) }

// EngineConfig builds the engine configuration for this run: defaults, then
// the dedicated flags, then -set overrides in order.
func (c *Config) EngineConfig() (engine.Config, error) {
	cfg := engine.DefaultConfig()
	cfg.Seed = c.Seed
	if c.Rows > 0 {
		cfg.Rows = c.Rows
	}
	if c.Cols > 0 {
		cfg.Cols = c.Cols
	}
	if c.Rules != "" && !cfg.Set("rules", c.Rules) {
		return cfg, fmt.Errorf("unknown rules preset %q", c.Rules)
	}
	for _, kv := range c.overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return cfg, fmt.Errorf("override %q: want key=value", kv)
		}
		if !cfg.Set(strings.TrimSpace(key), strings.TrimSpace(value)) {
			return cfg, fmt.Errorf("override %q: unknown key or invalid value", kv)
		}
	}
	return cfg, nil
}

// portIndex reports whether name is a numeric port index.
func portIndex(name string) (int, bool) {
	i, err := strconv.Atoi(name)
	return i, err == nil && i >= 0
}

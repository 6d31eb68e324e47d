package colony

import (
	"fmt"
	"sort"
)

// Rules parameterize the birth and survival thresholds.
type Rules struct {
	Birth      int
	SurviveMin int
	SurviveMax int
}

// String renders the rule in B/S notation, e.g. "B3/S2-3".
func (r Rules) String() string {
	return fmt.Sprintf("B%d/S%d-%d", r.Birth, r.SurviveMin, r.SurviveMax)
}

var presets = map[string]Rules{}

// Register adds a named rule preset.
func Register(name string, r Rules) {
	if name == "" {
		return
	}
	presets[name] = r
}

// Preset looks up a registered rule preset.
func Preset(name string) (Rules, bool) {
	r, ok := presets[name]
	return r, ok
}

// PresetNames lists the registered presets in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func init() {
	Register("life", Rules{Birth: 3, SurviveMin: 2, SurviveMax: 3})
	Register("maze", Rules{Birth: 3, SurviveMin: 1, SurviveMax: 5})
	Register("coral", Rules{Birth: 3, SurviveMin: 4, SurviveMax: 8})
	Register("flakes", Rules{Birth: 3, SurviveMin: 0, SurviveMax: 8})
}

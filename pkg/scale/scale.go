// Package scale holds the static table of musical scales used to quantize
// grid rows to pitches.
package scale

// Scale is a named, ascending set of semitone offsets within one octave. The
// first step is always 0.
type Scale struct {
	Name  string
	Steps []int
}

var table = []Scale{
	{Name: "Major", Steps: []int{0, 2, 4, 5, 7, 9, 11}},
	{Name: "Minor", Steps: []int{0, 2, 3, 5, 7, 8, 10}},
	{Name: "Pentatonic", Steps: []int{0, 2, 4, 7, 9}},
	{Name: "Minor Pentatonic", Steps: []int{0, 3, 5, 7, 10}},
	{Name: "Dorian", Steps: []int{0, 2, 3, 5, 7, 9, 10}},
	{Name: "Phrygian", Steps: []int{0, 1, 3, 5, 7, 8, 10}},
	{Name: "Lydian", Steps: []int{0, 2, 4, 6, 7, 9, 11}},
	{Name: "Mixolydian", Steps: []int{0, 2, 4, 5, 7, 9, 10}},
	{Name: "Blues", Steps: []int{0, 3, 5, 6, 7, 10}},
	{Name: "Harmonic Minor", Steps: []int{0, 2, 3, 5, 7, 8, 11}},
	{Name: "Whole Tone", Steps: []int{0, 2, 4, 6, 8, 10}},
	{Name: "Chromatic", Steps: []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
}

// Pentatonic is the index of the major pentatonic scale.
const Pentatonic = 2

// Len returns the number of scales in the table.
func Len() int { return len(table) }

// ByIndex returns a copy of the scale at i. Indices outside the table wrap
// around so a stale control value never selects a missing scale.
func ByIndex(i int) Scale {
	n := len(table)
	i = (i%n + n) % n
	s := table[i]
	return Scale{Name: s.Name, Steps: append([]int(nil), s.Steps...)}
}

// All returns copies of every scale in table order.
func All() []Scale {
	out := make([]Scale, len(table))
	for i := range table {
		out[i] = ByIndex(i)
	}
	return out
}

// Names lists the scale names in table order.
func Names() []string {
	names := make([]string, len(table))
	for i, s := range table {
		names[i] = s.Name
	}
	return names
}

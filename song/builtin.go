package song

import (
	"fmt"
	"sort"
)

// DefaultTempo is the number of game ticks one song unit lasts
const DefaultTempo = 10

type step struct {
	tone     string
	duration uint32
}

var builtins = map[string][]step{
	"mario": {
		{"e", 2}, {"e", 2}, {"", 2}, {"e", 2}, {"", 2}, {"c", 2},
		{"e", 4}, {"g", 4}, {"", 4}, {"g0", 4}, {"", 4},
		// main part
		{"c", 4}, {"", 2}, {"g0", 4}, {"", 2}, {"e0", 4}, {"", 2},
		{"a0", 4}, {"b0", 4}, {"a0+", 2}, {"a0", 4},
		{"g0", 3}, {"e", 3}, {"g", 3}, {"a", 4}, {"f", 2}, {"g", 2},
		{"", 2}, {"e", 4}, {"c", 2}, {"d", 2}, {"b0", 4},
		{"", 16},
	},
	"scale": {
		{"c", 4}, {"", 2}, {"d", 4}, {"", 2}, {"e", 4}, {"", 2}, {"f", 4}, {"", 2},
		{"g", 4}, {"", 2}, {"a", 4}, {"", 2}, {"b", 4}, {"", 2}, {"c2", 4}, {"", 16},
	},
}

// Builtins lists the names of the songs compiled into the binary
func Builtins() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Builtin returns a compiled-in song at the given tempo (DefaultTempo if zero)
func Builtin(name string, tempo uint32) (*Song, error) {
	steps, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("unknown song %q", name)
	}
	if tempo == 0 {
		tempo = DefaultTempo
	}

	notes := make([]Note, 0, len(steps))
	for _, st := range steps {
		f, ok := Tone(st.tone)
		if !ok {
			return nil, fmt.Errorf("song %q: unknown tone %q", name, st.tone)
		}
		notes = append(notes, Note{Pitch: f, Duration: st.duration})
	}
	return New(name, tempo, notes)
}

package song

import (
	"math"
	"strings"
)

// Tone names understood by song files. A blank name or "-" is a rest.
// Sharps are written with a trailing '+', the low octave with a '0' suffix.
var tones = map[string]Frequency{
	"e0":  165,
	"f0":  175,
	"f0+": 185,
	"g0":  196,
	"g0+": 208,
	"a0":  220,
	"a0+": 233,
	"b0":  245,
	"c":   261,
	"c+":  277,
	"d":   294,
	"d+":  311,
	"e":   329,
	"f":   349,
	"f+":  370,
	"g":   392,
	"g+":  415,
	"a":   440,
	"a+":  466,
	"b":   493,
	"c2":  523,
	"d2":  594,
}

// Tone looks up a tone name. ok is false for unknown names.
func Tone(name string) (f Frequency, ok bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" || name == "-" {
		return Rest, true
	}
	f, ok = tones[name]
	return f, ok
}

// KeyFrequency converts a MIDI key number to the nearest whole Hz (A4 = 69 = 440Hz)
func KeyFrequency(key uint8) Frequency {
	hz := 440 * math.Pow(2, (float64(key)-69)/12)
	return Frequency(math.Round(hz))
}

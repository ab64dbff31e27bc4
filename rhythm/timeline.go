package rhythm

import "go-rhythm/song"

// Cue is a note placed on the timeline: Offset is the absolute engine tick
// at which it starts, Length the duration it had in the song.
type Cue struct {
	Pitch  song.Frequency
	Offset uint32
	Length uint32
}

// BuildTimeline places notes back to back. Cue i starts at the sum of the
// durations of notes 0..i-1; the returned total is the tick the song ends on.
func BuildTimeline(notes []song.Note) ([]Cue, uint32) {
	cues := make([]Cue, len(notes))
	var tick uint32
	for i, n := range notes {
		cues[i] = Cue{Pitch: n.Pitch, Offset: tick, Length: n.Duration}
		tick += n.Duration
	}
	return cues, tick
}

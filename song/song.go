package song

import (
	"errors"
	"fmt"
)

// Frequency is a tone pitch in Hz. Zero means a rest.
type Frequency uint32

// Rest is the pitch of a silent note
const Rest Frequency = 0

// IsRest reports whether f is the silent pitch
func (f Frequency) IsRest() bool {
	return f == Rest
}

func (f Frequency) String() string {
	if f.IsRest() {
		return "rest"
	}
	return fmt.Sprintf("%dHz", uint32(f))
}

// Note is one entry of a song as written: a pitch held for Duration song units
type Note struct {
	Pitch    Frequency
	Duration uint32
}

var (
	ErrEmptySong  = errors.New("song has no notes")
	ErrZeroTempo  = errors.New("song tempo must be positive")
	ErrZeroLength = errors.New("song has zero total duration")
)

// Song is an immutable, ordered list of notes plus the tempo used to
// stretch one song unit over Tempo ticks of the game loop.
type Song struct {
	name  string
	tempo uint32
	notes []Note
}

// New validates and builds a song. The notes slice is copied.
func New(name string, tempo uint32, notes []Note) (*Song, error) {
	if len(notes) == 0 {
		return nil, fmt.Errorf("song %q: %w", name, ErrEmptySong)
	}
	if tempo == 0 {
		return nil, fmt.Errorf("song %q: %w", name, ErrZeroTempo)
	}

	var total uint64
	for _, n := range notes {
		total += uint64(n.Duration)
	}
	if total == 0 {
		return nil, fmt.Errorf("song %q: %w", name, ErrZeroLength)
	}
	if total > uint64(^uint32(0)) {
		return nil, fmt.Errorf("song %q: total duration %d overflows", name, total)
	}

	cp := make([]Note, len(notes))
	copy(cp, notes)
	return &Song{name: name, tempo: tempo, notes: cp}, nil
}

func (s *Song) Name() string  { return s.name }
func (s *Song) Tempo() uint32 { return s.tempo }
func (s *Song) Len() int      { return len(s.notes) }

// Notes returns a copy of the note list
func (s *Song) Notes() []Note {
	cp := make([]Note, len(s.notes))
	copy(cp, s.notes)
	return cp
}

// Duration returns the sum of all note durations in song units
func (s *Song) Duration() uint32 {
	var total uint32
	for _, n := range s.notes {
		total += n.Duration
	}
	return total
}

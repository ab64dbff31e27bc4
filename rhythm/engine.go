package rhythm

import (
	"errors"
	"fmt"

	"go-rhythm/song"
)

var ErrEmptyTimeline = errors.New("timeline has zero length")

// Upcoming is a cue as seen from the current tick
type Upcoming struct {
	Pitch     song.Frequency
	Remaining uint32 // ticks until the cue is due, 0 = now
}

// Engine advances through a song's timeline one tick per Poll and keeps
// the score for a single play-through. It does not guard against polling
// past the end; callers check Over.
type Engine struct {
	timeline []Cue
	tempo    uint32
	tick     uint32
	score    uint32
	maxTicks uint32
}

// New builds the timeline for s and returns an engine at tick 0
func New(s *song.Song) (*Engine, error) {
	timeline, maxTicks := BuildTimeline(s.Notes())
	if maxTicks == 0 {
		return nil, fmt.Errorf("song %q: %w", s.Name(), ErrEmptyTimeline)
	}
	return &Engine{
		timeline: timeline,
		tempo:    s.Tempo(),
		maxTicks: maxTicks,
	}, nil
}

// Poll advances the engine by one tick
func (e *Engine) Poll() {
	e.tick++
}

// Over reports whether the song has finished
func (e *Engine) Over() bool {
	return e.tick >= e.maxTicks
}

// CurrentNote returns the cue starting on the current tick. When several
// cues share the tick (zero-length notes) the first one wins.
func (e *Engine) CurrentNote() (Cue, bool) {
	for _, c := range e.timeline {
		if c.Offset == e.tick {
			return c, true
		}
		if c.Offset > e.tick {
			break
		}
	}
	return Cue{}, false
}

// VisibleWindow returns the next cues that have not started yet (or start
// now), in timeline order. The scan stops at the first cue horizon or more
// ticks away, or once maxCount cues are collected.
func (e *Engine) VisibleWindow(maxCount int, horizon uint32) []Upcoming {
	var out []Upcoming
	if maxCount <= 0 {
		return out
	}
	for _, c := range e.timeline {
		remaining := int64(c.Offset) - int64(e.tick)
		if remaining >= int64(horizon) {
			break
		}
		if remaining < 0 {
			continue
		}
		out = append(out, Upcoming{Pitch: c.Pitch, Remaining: uint32(remaining)})
		if len(out) >= maxCount {
			break
		}
	}
	return out
}

// TickPeriod is the number of game loop ticks per engine tick
func (e *Engine) TickPeriod() uint32 {
	return e.tempo
}

// Award adds one point
func (e *Engine) Award() {
	e.score++
}

func (e *Engine) Score() uint32    { return e.score }
func (e *Engine) Tick() uint32     { return e.tick }
func (e *Engine) MaxTicks() uint32 { return e.maxTicks }

// Timeline returns a copy of the cues
func (e *Engine) Timeline() []Cue {
	cp := make([]Cue, len(e.timeline))
	copy(cp, e.timeline)
	return cp
}

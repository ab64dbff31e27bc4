// Package game runs a song as a rhythm game: one blocking loop advances
// the engine, plays tones, redraws the track and samples the player's hand.
package game

import (
	"context"
	"fmt"

	"go-rhythm/debug"
	"go-rhythm/display"
	"go-rhythm/hw"
	"go-rhythm/rhythm"
	"go-rhythm/sensor"
	"go-rhythm/song"
)

// State of a play-through
type State int

const (
	Running State = iota
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case GameOver:
		return "game over"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Tone is the sound output: one frequency at a time, or nothing
type Tone interface {
	Tone(hz song.Frequency) error
	Silence() error
}

// Ranger measures the player's hand distance in mm. Negative values are
// timeouts (see sensor.RiseTimeout, sensor.FallTimeout).
type Ranger interface {
	Sample() float64
}

// Feedback tells the player whether a sample scored
type Feedback interface {
	Hit()
	Miss()
	Reset()
}

// Peripherals are the devices the loop owns for one play-through
type Peripherals struct {
	Tone     Tone
	Display  display.Sink
	Ranger   Ranger
	Feedback Feedback // optional
	Delay    hw.Delayer
}

// Config tunes the loop
type Config struct {
	LoopDelayMs uint32  // delay after every loop tick
	SampleEvery uint32  // loop ticks between samples while scoring
	ProximityMM float64 // samples closer than this score

	Width    int    // display cells
	Horizon  uint32 // engine ticks visible ahead
	MaxNotes int    // cues drawn at once
	Glyph    rune
	Blank    rune
}

// DefaultConfig matches a 16x2 character LCD and a 10ms loop
func DefaultConfig() Config {
	return Config{
		LoopDelayMs: 10,
		SampleEvery: 5,
		ProximityMM: 150,
		Width:       display.DefaultWidth,
		Horizon:     display.DefaultWidth,
		MaxNotes:    3,
		Glyph:       display.NoteGlyph,
		Blank:       display.Blank,
	}
}

// Status is a snapshot taken after every loop tick
type Status struct {
	State   State
	Loop    uint64
	Tick    uint32
	Score   uint32
	Scoring bool
}

// Result summarises a finished play-through
type Result struct {
	Score    uint32
	Notes    int // pitched cues in the song
	MaxTicks uint32
	Loops    uint64
}

// window is the span after a pitched cue's onset. The tone sounds while
// active; samples count only while open.
type window struct {
	active  bool
	open    bool
	expires uint64
}

// Orchestrator drives an engine in real time. It is not safe for
// concurrent use; OnStep is called on the loop's goroutine.
type Orchestrator struct {
	cfg    Config
	engine *rhythm.Engine
	dev    Peripherals

	state    State
	loop     uint64
	primed   bool
	sounding bool
	window   window

	OnStep func(Status)
}

// New returns an orchestrator ready to run engine on dev
func New(engine *rhythm.Engine, cfg Config, dev Peripherals) (*Orchestrator, error) {
	switch {
	case engine == nil:
		return nil, fmt.Errorf("game: nil engine")
	case dev.Tone == nil || dev.Display == nil || dev.Ranger == nil || dev.Delay == nil:
		return nil, fmt.Errorf("game: tone, display, ranger and delay are required")
	case cfg.SampleEvery == 0:
		return nil, fmt.Errorf("game: sample cadence must be positive")
	case cfg.Width <= 0 || cfg.MaxNotes <= 0:
		return nil, fmt.Errorf("game: display width and note count must be positive")
	}
	if dev.Feedback == nil {
		dev.Feedback = nopFeedback{}
	}
	return &Orchestrator{cfg: cfg, engine: engine, dev: dev}, nil
}

func (o *Orchestrator) State() State  { return o.state }
func (o *Orchestrator) Loop() uint64  { return o.loop }
func (o *Orchestrator) Score() uint32 { return o.engine.Score() }

// Scoring reports whether a scoring window is open
func (o *Orchestrator) Scoring() bool { return o.window.open }

// Run steps until the song ends. The context is checked between loop
// ticks only; a cancelled run silences the tone and returns ctx.Err().
func (o *Orchestrator) Run(ctx context.Context) (Result, error) {
	for {
		if err := ctx.Err(); err != nil {
			o.closeWindow()
			return o.Result(), err
		}
		if o.Step() == GameOver {
			return o.Result(), nil
		}
	}
}

// Step runs one loop tick: close an expired window, advance the engine on
// its period, sample while scoring, then delay.
func (o *Orchestrator) Step() State {
	if o.state == GameOver {
		return o.state
	}
	if !o.primed {
		// cues at offset 0 are due before the first poll
		o.primed = true
		o.render()
		o.onset()
	}

	o.loop++

	if o.window.active && o.loop >= o.window.expires {
		o.closeWindow()
	}

	if o.loop%uint64(o.engine.TickPeriod()) == 0 {
		o.engine.Poll()
		if o.engine.Over() {
			o.finish()
			o.notify()
			return o.state
		}
		o.render()
		o.onset()
	}

	if o.window.open && o.loop%uint64(o.cfg.SampleEvery) == 0 {
		o.sample()
	}

	o.notify()
	o.dev.Delay.DelayMillis(o.cfg.LoopDelayMs)
	return o.state
}

// Result returns the score so far
func (o *Orchestrator) Result() Result {
	notes := 0
	for _, c := range o.engine.Timeline() {
		if !c.Pitch.IsRest() {
			notes++
		}
	}
	return Result{
		Score:    o.engine.Score(),
		Notes:    notes,
		MaxTicks: o.engine.MaxTicks(),
		Loops:    o.loop,
	}
}

func (o *Orchestrator) render() {
	track := display.Render(
		o.engine.VisibleWindow(o.cfg.MaxNotes, o.cfg.Horizon),
		o.cfg.Width, o.cfg.Glyph, o.cfg.Blank,
	)
	o.show(track)
}

func (o *Orchestrator) show(text string) {
	if err := o.dev.Display.Clear(); err != nil {
		debug.Log("display", "clear: %v", err)
	}
	if err := o.dev.Display.Write(text); err != nil {
		debug.Log("display", "write: %v", err)
	}
}

func (o *Orchestrator) onset() {
	cue, ok := o.engine.CurrentNote()
	if !ok {
		return
	}
	o.closeWindow()
	if cue.Pitch.IsRest() {
		return
	}

	if err := o.dev.Tone.Tone(cue.Pitch); err != nil {
		debug.Log("tone", "tone %v: %v", cue.Pitch, err)
	}
	o.sounding = true
	o.window = window{
		active:  true,
		open:    true,
		expires: o.loop + uint64(cue.Length)*uint64(o.engine.TickPeriod()),
	}
	debug.Log("game", "cue %v at tick %d, window until loop %d", cue.Pitch, cue.Offset, o.window.expires)
}

// closeWindow ends the current window and silences its tone. Safe to call
// when nothing is armed.
func (o *Orchestrator) closeWindow() {
	o.window = window{}
	if !o.sounding {
		return
	}
	o.sounding = false
	if err := o.dev.Tone.Silence(); err != nil {
		debug.Log("tone", "silence: %v", err)
	}
}

func (o *Orchestrator) sample() {
	d := o.dev.Ranger.Sample()
	if sensor.Valid(d) && d < o.cfg.ProximityMM {
		o.engine.Award()
		o.window.open = false
		o.dev.Feedback.Hit()
		debug.Log("game", "hit at loop %d: %.1fmm, score %d", o.loop, d, o.engine.Score())
		return
	}
	o.dev.Feedback.Miss()
	if err := sensor.Err(d); err != nil {
		debug.LogEvery(10, "sensor", "sample: %v", err)
	}
}

func (o *Orchestrator) finish() {
	o.state = GameOver
	o.closeWindow()
	o.dev.Feedback.Reset()
	o.show(fmt.Sprintf("Score: %d", o.engine.Score()))
	debug.Log("game", "game over after %d loops, score %d", o.loop, o.engine.Score())
}

func (o *Orchestrator) notify() {
	if o.OnStep == nil {
		return
	}
	o.OnStep(Status{
		State:   o.state,
		Loop:    o.loop,
		Tick:    o.engine.Tick(),
		Score:   o.engine.Score(),
		Scoring: o.window.open,
	})
}

package game

import (
	"go-rhythm/hw"
	"go-rhythm/song"
)

// LEDs shows a hit on the green LED and a miss on the red one
type LEDs struct {
	Green hw.OutputPin
	Red   hw.OutputPin
}

func (l LEDs) Hit() {
	l.Red.Low()
	l.Green.High()
}

func (l LEDs) Miss() {
	l.Green.Low()
	l.Red.High()
}

func (l LEDs) Reset() {
	l.Green.Low()
	l.Red.Low()
}

type nopFeedback struct{}

func (nopFeedback) Hit()   {}
func (nopFeedback) Miss()  {}
func (nopFeedback) Reset() {}

// Mute is a tone output that plays nothing
type Mute struct{}

func (Mute) Tone(song.Frequency) error { return nil }
func (Mute) Silence() error            { return nil }

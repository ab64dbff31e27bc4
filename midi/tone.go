package midi

import (
	"math"

	"go-rhythm/debug"
	"go-rhythm/song"

	gomidi "gitlab.com/gomidi/midi/v2"
)

// DefaultVelocity is used for every tone
const DefaultVelocity = 100

// FrequencyKey returns the MIDI key closest to hz, clamped to 0-127
func FrequencyKey(hz song.Frequency) uint8 {
	if hz.IsRest() {
		return 0
	}
	key := math.Round(69 + 12*math.Log2(float64(hz)/440))
	if key < 0 {
		return 0
	}
	if key > 127 {
		return 127
	}
	return uint8(key)
}

// ToneOut plays one tone at a time as MIDI notes on a single channel
type ToneOut struct {
	send     func(gomidi.Message) error
	channel  uint8 // 0-15
	velocity uint8

	key     uint8
	playing bool
}

// NewToneOut wraps a sender; channel is 1-16 as shown to users
func NewToneOut(send func(gomidi.Message) error, channel uint8) *ToneOut {
	if channel < 1 || channel > 16 {
		channel = 1
	}
	return &ToneOut{send: send, channel: channel - 1, velocity: DefaultVelocity}
}

// Tone stops the sounding note, if any, and starts hz
func (t *ToneOut) Tone(hz song.Frequency) error {
	if hz.IsRest() {
		return t.Silence()
	}
	if err := t.Silence(); err != nil {
		return err
	}
	key := FrequencyKey(hz)
	if err := t.send(gomidi.NoteOn(t.channel, key, t.velocity)); err != nil {
		return err
	}
	t.key, t.playing = key, true
	debug.Log("tone", "midi ch=%d key=%d hz=%d", t.channel+1, key, hz)
	return nil
}

// Silence sends NoteOff for the sounding note
func (t *ToneOut) Silence() error {
	if !t.playing {
		return nil
	}
	t.playing = false
	return t.send(gomidi.NoteOff(t.channel, t.key))
}

// Package buzzer plays tones as a square wave on the sound card, the way a
// piezo buzzer driven by a PWM pin sounds.
package buzzer

import (
	"fmt"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/speaker"

	"go-rhythm/song"
)

const (
	SampleRate = beep.SampleRate(44100)
	Volume     = 0.2
)

// square is a streamer producing a square wave at a settable frequency
type square struct {
	rate  beep.SampleRate
	hz    float64
	phase float64
	on    bool
}

func (s *square) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		v := 0.0
		if s.on {
			if s.phase < 0.5 {
				v = Volume
			} else {
				v = -Volume
			}
			s.phase += s.hz / float64(s.rate)
			if s.phase >= 1 {
				s.phase -= 1
			}
		}
		samples[i][0] = v
		samples[i][1] = v
	}
	return len(samples), true
}

func (s *square) Err() error {
	return nil
}

// Buzzer is a tone output backed by the system speaker
type Buzzer struct {
	wave *square
}

// New initialises the speaker and starts an idle square wave on it
func New() (*Buzzer, error) {
	if err := speaker.Init(SampleRate, SampleRate.N(time.Second/30)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	b := &Buzzer{wave: &square{rate: SampleRate}}
	speaker.Play(b.wave)
	return b, nil
}

func (b *Buzzer) Tone(hz song.Frequency) error {
	speaker.Lock()
	defer speaker.Unlock()
	if hz.IsRest() {
		b.wave.on = false
		return nil
	}
	b.wave.hz = float64(hz)
	b.wave.on = true
	return nil
}

func (b *Buzzer) Silence() error {
	speaker.Lock()
	defer speaker.Unlock()
	b.wave.on = false
	b.wave.phase = 0
	return nil
}

// Close stops playback
func (b *Buzzer) Close() {
	speaker.Clear()
}

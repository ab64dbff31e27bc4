// Package sensor measures distance with a trigger/echo ultrasonic ranger.
package sensor

import (
	"errors"

	"go-rhythm/hw"
)

const (
	// RiseTimeout is returned when the echo never rises: nothing answered
	RiseTimeout = -1.0
	// FallTimeout is returned when the echo rises but never falls
	FallTimeout = -2.0

	DefaultPulseWidth = 10     // µs
	DefaultMaxWait    = 100000 // polls of 1µs per phase

	// mm per µs of round trip: 343 m/s halved
	mmPerMicro = 343.0 / 2000.0
)

var (
	ErrNoEcho    = errors.New("no echo")
	ErrEchoStuck = errors.New("echo never fell")
)

// Sampler runs one trigger/echo round trip per call. It keeps no state
// between samples.
type Sampler struct {
	trigger hw.OutputPin
	echo    hw.InputPin
	delay   hw.Delayer

	PulseWidth uint32 // trigger pulse in µs
	MaxWait    int    // ceiling on 1µs polls for each echo phase
}

// New returns a sampler using the default pulse width and wait ceiling
func New(trigger hw.OutputPin, echo hw.InputPin, delay hw.Delayer) *Sampler {
	return &Sampler{
		trigger:    trigger,
		echo:       echo,
		delay:      delay,
		PulseWidth: DefaultPulseWidth,
		MaxWait:    DefaultMaxWait,
	}
}

// Sample blocks for at most about 2*MaxWait µs and returns the distance in
// millimetres, or RiseTimeout / FallTimeout.
func (s *Sampler) Sample() float64 {
	s.trigger.High()
	s.delay.DelayMicros(s.PulseWidth)
	s.trigger.Low()

	count := 0
	for !s.echo.IsHigh() {
		count++
		if count > s.MaxWait {
			return RiseTimeout
		}
		s.delay.DelayMicros(1)
	}

	count = 0
	for s.echo.IsHigh() {
		count++
		if count > s.MaxWait {
			return FallTimeout
		}
		s.delay.DelayMicros(1)
	}

	return float64(count) * mmPerMicro
}

// Valid reports whether d is a measured distance rather than a timeout
func Valid(d float64) bool {
	return d >= 0
}

// Err maps a timeout sentinel to an error, nil for real distances
func Err(d float64) error {
	switch d {
	case RiseTimeout:
		return ErrNoEcho
	case FallTimeout:
		return ErrEchoStuck
	}
	return nil
}

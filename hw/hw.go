// Package hw describes the hardware the game loop talks to: digital pins
// and a blocking delay. Real boards implement these on their GPIO and timer
// peripherals; Rig simulates them.
package hw

import "time"

// OutputPin is a push-pull digital output
type OutputPin interface {
	High()
	Low()
}

// InputPin is a digital input
type InputPin interface {
	IsHigh() bool
}

// Delayer blocks the caller for a fixed time. Nothing else runs meanwhile.
type Delayer interface {
	DelayMicros(us uint32)
	DelayMillis(ms uint32)
}

// SpinDelay busy-waits on the monotonic clock
type SpinDelay struct{}

func (SpinDelay) DelayMicros(us uint32) {
	spin(time.Duration(us) * time.Microsecond)
}

func (SpinDelay) DelayMillis(ms uint32) {
	spin(time.Duration(ms) * time.Millisecond)
}

func spin(d time.Duration) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
	}
}

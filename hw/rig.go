package hw

import (
	"math"
	"sync/atomic"
	"time"
)

const (
	echoNone  = -1
	echoStuck = -2

	// DefaultLatency is the time between the trigger pulse and the echo rising
	DefaultLatency = 200
)

// Latch is an output pin that remembers its level. Safe to read from
// another goroutine.
type Latch struct {
	on atomic.Bool
}

func (l *Latch) High()        { l.on.Store(true) }
func (l *Latch) Low()         { l.on.Store(false) }
func (l *Latch) IsHigh() bool { return l.on.Load() }

// RoundTrip returns the echo time in µs for an object mm millimetres away
func RoundTrip(mm float64) uint32 {
	return uint32(math.Round(mm * 2000 / 343))
}

// Rig simulates an ultrasonic ranger on a virtual microsecond clock. The
// clock only moves when the game loop delays. The object distance may be
// changed from any goroutine; pins and delays belong to the loop goroutine.
type Rig struct {
	Latency uint32

	// Pace, when set, is called with the wall-clock length of every
	// millisecond delay so a simulated game runs in real time.
	Pace func(time.Duration)

	now       uint64
	trigger   bool
	echoFrom  uint64
	echoUntil uint64

	roundTrip atomic.Int64
}

// NewRig returns a rig with nothing in front of the sensor
func NewRig() *Rig {
	r := &Rig{Latency: DefaultLatency}
	r.roundTrip.Store(echoNone)
	return r
}

// SetHand places an object mm millimetres in front of the sensor
func (r *Rig) SetHand(mm float64) {
	r.roundTrip.Store(int64(RoundTrip(mm)))
}

// SetRoundTrip makes the next echoes last exactly us microseconds
func (r *Rig) SetRoundTrip(us uint32) {
	r.roundTrip.Store(int64(us))
}

// RemoveHand leaves nothing in range: the echo never rises
func (r *Rig) RemoveHand() {
	r.roundTrip.Store(echoNone)
}

// Jam makes the echo rise and never fall
func (r *Rig) Jam() {
	r.roundTrip.Store(echoStuck)
}

// HandPresent reports whether an object is in range
func (r *Rig) HandPresent() bool {
	return r.roundTrip.Load() >= 0
}

// Now returns the virtual time in µs
func (r *Rig) Now() uint64 {
	return r.now
}

func (r *Rig) DelayMicros(us uint32) {
	r.now += uint64(us)
}

func (r *Rig) DelayMillis(ms uint32) {
	r.now += uint64(ms) * 1000
	if r.Pace != nil {
		r.Pace(time.Duration(ms) * time.Millisecond)
	}
}

// Trigger returns the sensor's trigger input as an output pin
func (r *Rig) Trigger() OutputPin {
	return rigTrigger{r}
}

// Echo returns the sensor's echo output as an input pin
func (r *Rig) Echo() InputPin {
	return rigEcho{r}
}

func (r *Rig) fire() {
	switch rt := r.roundTrip.Load(); {
	case rt == echoNone:
		r.echoFrom, r.echoUntil = math.MaxUint64, math.MaxUint64
	case rt == echoStuck:
		r.echoFrom, r.echoUntil = r.now+uint64(r.Latency), math.MaxUint64
	default:
		r.echoFrom = r.now + uint64(r.Latency)
		r.echoUntil = r.echoFrom + uint64(rt)
	}
}

type rigTrigger struct{ r *Rig }

func (t rigTrigger) High() { t.r.trigger = true }

// Low fires a measurement on the falling edge
func (t rigTrigger) Low() {
	if t.r.trigger {
		t.r.fire()
	}
	t.r.trigger = false
}

type rigEcho struct{ r *Rig }

func (e rigEcho) IsHigh() bool {
	return e.r.now >= e.r.echoFrom && e.r.now < e.r.echoUntil
}

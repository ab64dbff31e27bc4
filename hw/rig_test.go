package hw

import (
	"testing"
	"time"
)

func TestRigEchoFollowsTrigger(t *testing.T) {
	r := NewRig()
	r.Latency = 5
	r.SetRoundTrip(3)
	trig, echo := r.Trigger(), r.Echo()

	if echo.IsHigh() {
		t.Fatal("echo high before any trigger")
	}
	trig.High()
	r.DelayMicros(10)
	trig.Low()

	var levels []bool
	for i := 0; i < 10; i++ {
		levels = append(levels, echo.IsHigh())
		r.DelayMicros(1)
	}
	want := []bool{false, false, false, false, false, true, true, true, false, false}
	for i := range want {
		if levels[i] != want[i] {
			t.Fatalf("µs %d: expected %v, got %v (%v)", i, want[i], levels[i], levels)
		}
	}
}

func TestRigNoHandNeverEchoes(t *testing.T) {
	r := NewRig()
	r.Trigger().High()
	r.Trigger().Low()
	r.DelayMillis(1000)
	if r.Echo().IsHigh() {
		t.Fatal("expected no echo without a hand")
	}
	if r.HandPresent() {
		t.Fatal("expected no hand")
	}
}

func TestRigPacesMillisecondDelays(t *testing.T) {
	r := NewRig()
	var paced time.Duration
	r.Pace = func(d time.Duration) { paced += d }

	r.DelayMicros(500)
	r.DelayMillis(3)
	if paced != 3*time.Millisecond {
		t.Fatalf("expected 3ms of pacing, got %v", paced)
	}
	if r.Now() != 3500 {
		t.Fatalf("expected virtual time 3500µs, got %d", r.Now())
	}
}

func TestRoundTrip(t *testing.T) {
	if got := RoundTrip(343); got != 2000 {
		t.Fatalf("expected 2000µs, got %d", got)
	}
}

func TestLatch(t *testing.T) {
	var l Latch
	l.High()
	if !l.IsHigh() {
		t.Fatal("expected high")
	}
	l.Low()
	if l.IsHigh() {
		t.Fatal("expected low")
	}
}

package sensor

import (
	"errors"
	"math"
	"testing"

	"go-rhythm/hw"
)

func newRigSampler() (*hw.Rig, *Sampler) {
	rig := hw.NewRig()
	return rig, New(rig.Trigger(), rig.Echo(), rig)
}

func TestSampleRoundTrip(t *testing.T) {
	for _, d := range []uint32{1, 58, 583, 2000, 11661} {
		rig, s := newRigSampler()
		rig.SetRoundTrip(d)

		got := s.Sample()
		want := float64(d) * 343 / 2000
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("round trip %dµs: expected %f, got %f", d, want, got)
		}
		if !Valid(got) || Err(got) != nil {
			t.Fatalf("round trip %dµs: expected a valid distance", d)
		}
	}
}

func TestSampleHandDistance(t *testing.T) {
	rig, s := newRigSampler()
	rig.SetHand(100)
	if got := s.Sample(); math.Abs(got-100) > 0.2 {
		t.Fatalf("expected about 100mm, got %f", got)
	}
}

func TestSampleRiseTimeout(t *testing.T) {
	rig, s := newRigSampler()
	rig.RemoveHand()
	start := rig.Now()

	got := s.Sample()
	if got != RiseTimeout {
		t.Fatalf("expected rise timeout, got %f", got)
	}
	if !errors.Is(Err(got), ErrNoEcho) || Valid(got) {
		t.Fatalf("expected ErrNoEcho, got %v", Err(got))
	}
	if elapsed := rig.Now() - start; elapsed > uint64(DefaultPulseWidth+DefaultMaxWait) {
		t.Fatalf("wait exceeded the ceiling: %dµs", elapsed)
	}
}

func TestSampleFallTimeout(t *testing.T) {
	rig, s := newRigSampler()
	rig.Jam()

	got := s.Sample()
	if got != FallTimeout {
		t.Fatalf("expected fall timeout, got %f", got)
	}
	if !errors.Is(Err(got), ErrEchoStuck) {
		t.Fatalf("expected ErrEchoStuck, got %v", Err(got))
	}
}

func TestSampleCustomCeiling(t *testing.T) {
	rig, s := newRigSampler()
	s.MaxWait = 100
	rig.Latency = 150
	rig.SetRoundTrip(10)

	if got := s.Sample(); got != RiseTimeout {
		t.Fatalf("expected late echo to time out, got %f", got)
	}
}

func TestSampleIsStateless(t *testing.T) {
	rig, s := newRigSampler()
	rig.SetRoundTrip(400)
	first := s.Sample()
	rig.RemoveHand()
	if got := s.Sample(); got != RiseTimeout {
		t.Fatalf("expected timeout after hand removed, got %f", got)
	}
	rig.SetRoundTrip(400)
	if got := s.Sample(); got != first {
		t.Fatalf("expected %f again, got %f", first, got)
	}
}

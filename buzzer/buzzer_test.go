package buzzer

import "testing"

func TestSquareSilentWhenOff(t *testing.T) {
	s := &square{rate: 8, hz: 2}
	buf := make([][2]float64, 8)
	n, ok := s.Stream(buf)
	if n != 8 || !ok {
		t.Fatalf("expected 8 samples, got %d %v", n, ok)
	}
	for i, smp := range buf {
		if smp[0] != 0 || smp[1] != 0 {
			t.Fatalf("sample %d not silent: %v", i, smp)
		}
	}
}

func TestSquarePeriod(t *testing.T) {
	// 2Hz at 8 samples/s: 4 samples per period, 2 high then 2 low
	s := &square{rate: 8, hz: 2, on: true}
	buf := make([][2]float64, 8)
	s.Stream(buf)

	want := []float64{Volume, Volume, -Volume, -Volume, Volume, Volume, -Volume, -Volume}
	for i := range want {
		if buf[i][0] != want[i] || buf[i][1] != want[i] {
			t.Fatalf("sample %d: expected %v, got %v", i, want[i], buf[i])
		}
	}
}

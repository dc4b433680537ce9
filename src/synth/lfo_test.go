package synth

import "testing"

func TestLfoDisabledBelowOneMs(t *testing.T) {
	l := newLfo()
	l.setPeriodMs(0.5)
	for i := 0; i < 100; i++ {
		if l.tick() != 0 {
			t.Fatalf("disabled lfo must output 0")
		}
	}
}

func TestLfoTriangleBounds(t *testing.T) {
	l := newLfo()
	l.setPeriodMs(100) // 10Hz
	min, max := 1.0, -1.0
	for i := 0; i < sampleRate; i++ {
		v := l.tick()
		if v < -1.000001 || v > 1.000001 {
			t.Fatalf("lfo out of range: %f", v)
		}
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max < 0.99 || min > -0.99 {
		t.Errorf("triangle should reach both extremes, got [%f, %f]", min, max)
	}
}

func TestLfoPeriodMatchesSetting(t *testing.T) {
	l := newLfo()
	l.setPeriodMs(10) // 100Hz
	// count rising zero crossings over one second
	crossings := 0
	prev := l.tick()
	for i := 1; i < sampleRate; i++ {
		v := l.tick()
		if prev < 0 && v >= 0 {
			crossings++
		}
		prev = v
	}
	if crossings < 99 || crossings > 101 {
		t.Errorf("expected ~100 cycles per second, got %d", crossings)
	}
}

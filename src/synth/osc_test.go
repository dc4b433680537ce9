package synth

import (
	"math"
	"testing"
)

func TestOscPhaseWraps(t *testing.T) {
	o := newOsc()
	o.freq = 10000
	for i := 0; i < 100000; i++ {
		o.advance()
		if o.phase < 0 || o.phase >= 1 {
			t.Fatalf("phase left [0,1) at sample %d: %f", i, o.phase)
		}
	}
}

func TestOscWaveformsBounded(t *testing.T) {
	o := newOsc()
	o.freq = 440
	for kind := 0; kind < numWaveforms; kind++ {
		for i := 0; i < 10000; i++ {
			s := o.waveform(kind)
			// polyBLEP overshoots the naive wave slightly near an edge
			if math.Abs(s) > 1.2 {
				t.Fatalf("waveform %d out of range at sample %d: %f", kind, i, s)
			}
			o.advance()
		}
	}
}

func TestOscSawIsRampAwayFromEdges(t *testing.T) {
	o := newOsc()
	o.freq = 440
	o.phase = 0.5
	if got := o.saw(); math.Abs(got-0) > 1e-9 {
		t.Errorf("saw at phase 0.5 should be 0, got %f", got)
	}
	o.phase = 0.25
	if got := o.saw(); math.Abs(got+0.5) > 1e-9 {
		t.Errorf("saw at phase 0.25 should be -0.5, got %f", got)
	}
}

func TestOscPulseWidthChangesDuty(t *testing.T) {
	o := newOsc()
	o.freq = 441 // divides the sample rate evenly
	o.pulseWidth = 0.25
	high := 0
	n := sampleRate / 441 * 100
	for i := 0; i < n; i++ {
		if o.pulse() > 0 {
			high++
		}
		o.advance()
	}
	duty := float64(high) / float64(n)
	if math.Abs(duty-0.25) > 0.05 {
		t.Errorf("expected ~25%% duty, got %f", duty)
	}
}

func TestOscTriangleShape(t *testing.T) {
	o := newOsc()
	o.phase = 0.25
	if got := o.triangle(); math.Abs(got-0) > 1e-9 {
		t.Errorf("triangle at phase 0.25 should be 0, got %f", got)
	}
	o.phase = 0.5
	if got := o.triangle(); math.Abs(got-1) > 1e-9 {
		t.Errorf("triangle at phase 0.5 should be 1, got %f", got)
	}
}

func TestPolyblepZeroAwayFromEdges(t *testing.T) {
	dt := 440.0 * invSampleRate
	if polyblep(0.5, dt) != 0 {
		t.Errorf("polyblep should be 0 away from the discontinuity")
	}
	if polyblep(dt/2, dt) == 0 {
		t.Errorf("polyblep should correct just after the wrap")
	}
	if polyblep(1-dt/2, dt) == 0 {
		t.Errorf("polyblep should correct just before the wrap")
	}
}

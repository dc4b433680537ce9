package synth

import "math"

// ----- Wave Kind ----- //

const (
	waveSaw = iota
	wavePulse
	waveTriangle
	waveSine
)

// ----- PolyBLEP ----- //

// polyblep returns the band-limiting residual for a unit step at phase 0,
// where dt is the per-sample phase increment.
func polyblep(phase float64, dt float64) float64 {
	if phase < dt {
		t := phase / dt
		return t + t - t*t - 1
	}
	if phase > 1-dt {
		t := (phase - 1) / dt
		return t*t + t + t + 1
	}
	return 0
}

// ----- OSC ----- //

type osc struct {
	phase      float64 // 0-1
	freq       float64
	pulseWidth float64 // 0-1
}

func newOsc() *osc {
	return &osc{freq: 440, pulseWidth: 0.5}
}

func (o *osc) advance() {
	o.phase += o.freq * invSampleRate
	if o.phase >= 1 {
		o.phase -= 1
	}
}

func (o *osc) saw() float64 {
	dt := o.freq * invSampleRate
	s := 2*o.phase - 1
	return s - polyblep(o.phase, dt)
}

func (o *osc) pulse() float64 {
	dt := o.freq * invSampleRate
	s := -1.0
	if o.phase < o.pulseWidth {
		s = 1.0
	}
	s += polyblep(o.phase, dt) // rising edge at phase=0
	shifted := o.phase - o.pulseWidth
	if shifted < 0 {
		shifted += 1
	}
	return s - polyblep(shifted, dt) // falling edge at phase=pulseWidth
}

func (o *osc) triangle() float64 {
	if o.phase < 0.5 {
		return 4*o.phase - 1
	}
	return 3 - 4*o.phase
}

func (o *osc) sine() float64 {
	return math.Sin(2 * math.Pi * o.phase)
}

func (o *osc) waveform(kind int) float64 {
	switch kind {
	case waveSaw:
		return o.saw()
	case wavePulse:
		return o.pulse()
	case waveTriangle:
		return o.triangle()
	case waveSine:
		return o.sine()
	}
	return o.saw()
}

package synth

// ----- LFO ----- //

// lfo is a triangle oscillator used to modulate pulse width. Its period is
// set in ms from the glide-time knob; below 1ms it is disabled and outputs
// a constant 0.
type lfo struct {
	phase float64
	freq  float64
}

func newLfo() *lfo {
	return &lfo{}
}

func (l *lfo) setPeriodMs(ms float64) {
	if ms < 1 {
		l.freq = 0
		return
	}
	l.freq = 1000 / ms
}

func (l *lfo) tick() float64 {
	if l.freq <= 0 {
		return 0
	}
	l.phase += l.freq * invSampleRate
	if l.phase >= 1 {
		l.phase -= 1
	}
	if l.phase < 0.5 {
		return 4*l.phase - 1
	}
	return 3 - 4*l.phase
}

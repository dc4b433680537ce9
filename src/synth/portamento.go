package synth

import "math"

// ----- Portamento ----- //

// portamento glides between pitches as a one-pole in log2-frequency space.
// Its coefficient is shared with the waveform morph (a deliberate coupling:
// faster glide means faster timbre morph).
type portamento struct {
	target  float64 // log2(freq)
	current float64 // log2(freq)
	coeff   float64 // 1.0 = instant
}

func newPortamento() *portamento {
	return &portamento{coeff: 1}
}

func (p *portamento) setTime(ms float64) {
	p.coeff = timeCoeff(ms)
}

func (p *portamento) setTarget(freq float64) {
	p.target = math.Log2(freq)
}

func (p *portamento) snap(freq float64) {
	p.target = math.Log2(freq)
	p.current = p.target
}

func (p *portamento) tick() float64 {
	p.current += p.coeff * (p.target - p.current)
	return math.Exp2(p.current)
}

// ----- Smoothed Param ----- //

// smoothed follows its target at a fixed rate independent of the glide
// time; used for cutoff, resonance and volume.
type smoothed struct {
	target float64
	value  float64
}

const paramSmoothCoeff = 0.002

func (s *smoothed) init(value float64) {
	s.target = value
	s.value = value
}

func (s *smoothed) step() float64 {
	s.value += paramSmoothCoeff * (s.target - s.value)
	return s.value
}

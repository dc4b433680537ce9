package synth

import "math"

// ----- Filter ----- //

// filter is a two-pole state-variable low-pass with trapezoidal (zero-delay)
// integration, stable across the whole parameter range. setParams is called
// once per sample so the coefficients track the smoothed cutoff exactly.
type filter struct {
	ic1eq float64
	ic2eq float64
	g     float64
	k     float64 // k = 2 - 2*resonance
	a1    float64
	a2    float64
	a3    float64
}

func newFilter() *filter {
	return &filter{k: 2}
}

func (f *filter) setParams(cutoff float64, resonance float64) {
	if cutoff < 20 {
		cutoff = 20
	}
	if cutoff > 20000 {
		cutoff = 20000
	}
	f.g = math.Tan(math.Pi * cutoff * invSampleRate)
	f.k = 2 - 2*resonance
	f.a1 = 1 / (1 + f.g*(f.g+f.k))
	f.a2 = f.g * f.a1
	f.a3 = f.g * f.a2
}

// tick returns the low-pass output.
func (f *filter) tick(v0 float64) float64 {
	v3 := v0 - f.ic2eq
	v1 := f.a1*f.ic1eq + f.a2*v3
	v2 := f.ic2eq + f.a2*f.ic1eq + f.a3*v3
	f.ic1eq = 2*v1 - f.ic1eq
	f.ic2eq = 2*v2 - f.ic2eq
	return v2
}

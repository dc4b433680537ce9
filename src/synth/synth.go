package synth

import "math"

const (
	sampleRate  = 44100
	channelNum  = 2
	blockFrames = 128
)

const invSampleRate = 1.0 / sampleRate

// ~50ms of audio between status pushes
const statusInterval = 2205

const numWaveforms = 4

var waveNames = [numWaveforms]string{"Saw", "PWM", "Tri", "Sine"}
var ledColors = [numWaveforms]int32{1, 2, 3, 4}

// ----- Utility ----- //

func noteToFreq(note int) float64 {
	return 440.0 * math.Exp2(float64(note-69)/12)
}

// one-pole coefficient for a time constant given in ms
func timeCoeff(ms float64) float64 {
	if ms < 1 {
		return 1
	}
	samples := ms * 0.001 * sampleRate
	return 1 - math.Exp(-1/samples)
}

package synth

import "math"

// ----- Voice ----- //

// voice is the single playable signal path: oscillator with waveform
// morphing, portamento, low-pass filter and AR envelope, with last-note
// priority over the note stack.
type voice struct {
	stack          noteStack
	osc            *osc
	porta          *portamento
	filt           *filter
	env            *envelope
	gateOn         bool
	targetWaveform int
	morphPos       float64
}

func newVoice() *voice {
	return &voice{
		osc:   newOsc(),
		porta: newPortamento(),
		filt:  newFilter(),
		env:   newEnvelope(),
	}
}

func (v *voice) noteOn(note int) {
	legato := v.gateOn
	v.stack.push(note)
	freq := noteToFreq(note)
	if legato {
		v.porta.setTarget(freq)
	} else {
		v.porta.snap(freq)
		v.env.gate(true)
	}
	v.gateOn = true
}

func (v *voice) noteOff(note int) {
	v.stack.remove(note)
	if v.stack.empty() {
		v.env.gate(false)
		v.gateOn = false
	} else {
		// glide to the new top note (legato)
		v.porta.setTarget(noteToFreq(v.stack.top()))
	}
}

func (v *voice) nextWaveform() {
	v.targetWaveform = (v.targetWaveform + 1) % numWaveforms
}

// morphIndices returns the two waveforms being crossfaded and the fraction
// of the second one.
func (v *voice) morphIndices() (int, int, float64) {
	lo := int(math.Floor(v.morphPos))
	frac := v.morphPos - float64(lo)
	loIdx := ((lo % numWaveforms) + numWaveforms) % numWaveforms
	return loIdx, (loIdx + 1) % numWaveforms, frac
}

func (v *voice) tick() float64 {
	v.osc.freq = v.porta.tick()
	v.osc.advance()

	// morphPos chases targetWaveform at the portamento rate
	target := float64(v.targetWaveform)
	v.morphPos += v.porta.coeff * (target - v.morphPos)
	if math.Abs(v.morphPos-target) < 0.001 {
		v.morphPos = target
	}

	loIdx, hiIdx, frac := v.morphIndices()
	var s float64
	if frac < 0.001 {
		s = v.osc.waveform(loIdx)
	} else {
		s = v.osc.waveform(loIdx)*(1-frac) + v.osc.waveform(hiIdx)*frac
	}

	s = v.filt.tick(s)
	return s * v.env.tick()
}

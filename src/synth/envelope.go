package synth

import "math"

// ----- Envelope ----- //

const (
	stageIdle = iota
	stageAttack
	stageRelease
)

const defaultAttackMs = 5.0
const defaultReleaseMs = 200.0

// envelope is a two-stage attack/release generator with exponential
// segments. gate(true) always restarts the attack from the current value,
// not from zero, so legato retriggers don't click.
type envelope struct {
	stage        int
	value        float64
	attackCoeff  float64
	releaseCoeff float64
}

func newEnvelope() *envelope {
	e := &envelope{}
	e.setAttack(defaultAttackMs)
	e.setRelease(defaultReleaseMs)
	return e
}

func (e *envelope) setAttack(ms float64) {
	samples := ms * 0.001 * sampleRate
	e.attackCoeff = 1 - math.Exp(-1/samples)
}

func (e *envelope) setRelease(ms float64) {
	if ms < 1 {
		ms = 1
	}
	samples := ms * 0.001 * sampleRate
	e.releaseCoeff = math.Exp(-1 / samples)
}

func (e *envelope) gate(on bool) {
	if on {
		e.stage = stageAttack
	} else if e.stage == stageAttack {
		e.stage = stageRelease
	}
}

func (e *envelope) tick() float64 {
	switch e.stage {
	case stageAttack:
		e.value += e.attackCoeff * (1 - e.value)
		if e.value > 0.999 {
			e.value = 1
		}
	case stageRelease:
		e.value *= e.releaseCoeff
		if e.value < 0.0001 {
			e.value = 0
			e.stage = stageIdle
		}
	}
	return e.value
}

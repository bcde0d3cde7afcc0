package game

import "github.com/djeedai/libracity/engine/core"

// GameSequence is the in-level phase: a short intro, the play phase, then the
// victory jingle before the next level loads.
type GameSequence int

const (
	SequenceIntro GameSequence = iota
	SequencePlay
	SequenceVictory
)

func (s GameSequence) String() string {
	switch s {
	case SequenceIntro:
		return "Intro"
	case SequencePlay:
		return "Play"
	case SequenceVictory:
		return "Victory"
	}
	return "Unknown"
}

const sequencePhaseDuration float64 = 3.0

// Flow tracks the timed in-level sequence. Intro and Victory last
// sequencePhaseDuration seconds; Play ends when the level is cleared.
type Flow struct {
	sequence GameSequence
	timer    float64
}

func NewFlow() *Flow {
	return &Flow{
		sequence: SequenceIntro,
	}
}

func (f *Flow) Sequence() GameSequence {
	return f.sequence
}

// Reset restarts the flow at the intro of a level.
func (f *Flow) Reset() {
	f.sequence = SequenceIntro
	f.timer = 0
}

// Advance moves to the next phase. Advancing past Victory is a programming
// error; Victory resolves through Reset when the next level loads.
func (f *Flow) Advance() GameSequence {
	f.timer = 0
	switch f.sequence {
	case SequenceIntro:
		f.sequence = SequencePlay
	case SequencePlay:
		f.sequence = SequenceVictory
	case SequenceVictory:
		core.LogFatal("cannot advance sequence from last sequence (Victory)")
	}
	return f.sequence
}

// Update advances the phase timer. Returns the current phase and whether a
// timed phase just expired this tick (Intro elapsed, or Victory elapsed).
func (f *Flow) Update(deltaTime float64) (GameSequence, bool) {
	switch f.sequence {
	case SequenceIntro, SequenceVictory:
		f.timer += deltaTime
		if f.timer >= sequencePhaseDuration {
			return f.sequence, true
		}
	case SequencePlay:
		// Play has no timer; the level-cleared check drives it.
	}
	return f.sequence, false
}

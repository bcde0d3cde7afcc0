package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlowStartsAtIntro(t *testing.T) {
	flow := NewFlow()
	assert.Equal(t, SequenceIntro, flow.Sequence())
}

func TestFlowIntroExpires(t *testing.T) {
	flow := NewFlow()

	sequence, expired := flow.Update(1.0)
	assert.Equal(t, SequenceIntro, sequence)
	assert.False(t, expired)

	_, expired = flow.Update(2.5)
	assert.True(t, expired)
	// The flow does not advance by itself; the caller decides.
	assert.Equal(t, SequenceIntro, flow.Sequence())

	assert.Equal(t, SequencePlay, flow.Advance())
}

func TestFlowPlayHasNoTimer(t *testing.T) {
	flow := NewFlow()
	flow.Advance()

	_, expired := flow.Update(100.0)
	assert.False(t, expired)
	assert.Equal(t, SequencePlay, flow.Sequence())
}

func TestFlowVictoryExpires(t *testing.T) {
	flow := NewFlow()
	flow.Advance()
	assert.Equal(t, SequenceVictory, flow.Advance())

	_, expired := flow.Update(1.0)
	assert.False(t, expired)
	_, expired = flow.Update(2.5)
	assert.True(t, expired)
}

func TestFlowReset(t *testing.T) {
	flow := NewFlow()
	flow.Advance()
	flow.Advance()
	flow.Update(1.0)

	flow.Reset()
	assert.Equal(t, SequenceIntro, flow.Sequence())
	_, expired := flow.Update(1.0)
	assert.False(t, expired)
}

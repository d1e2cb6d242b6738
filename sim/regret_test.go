package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegretSequence_Accumulates(t *testing.T) {
	seq := NewRegretSequence(PolicyUCB1, 4)
	assert.Equal(t, 0, seq.Len())
	assert.Equal(t, 0.0, seq.Final())

	seq.Append(0.5)
	seq.Append(0)
	seq.Append(0.25)

	assert.Equal(t, 3, seq.Len())
	assert.Equal(t, PolicyUCB1, seq.Policy())
	assert.Equal(t, 0.5, seq.At(1))
	assert.Equal(t, 0.5, seq.At(2))
	assert.Equal(t, 0.75, seq.At(3))
	assert.Equal(t, 0.75, seq.Final())
	assert.Equal(t, []float64{0.5, 0.5, 0.75}, seq.Values())
}

func TestRegretSequence_NonDecreasing(t *testing.T) {
	seq := NewRegretSequence(PolicyVarUCBKnown, 8)
	for _, instant := range []float64{0.1, 0, 0, 0.7, 0.2, 0, 0.05, 0} {
		seq.Append(instant)
	}
	values := seq.Values()
	for i := 1; i < len(values); i++ {
		require.GreaterOrEqual(t, values[i], values[i-1], "round %d decreased", i+1)
	}
}

func TestRegretSequence_NegativeInstantPanics(t *testing.T) {
	seq := NewRegretSequence(PolicyUCB1, 2)
	seq.Append(0.5)
	assert.Panics(t, func() { seq.Append(-0.001) })
}

func TestRegretTracker_PreservesRegistrationOrder(t *testing.T) {
	tracker := NewRegretTracker()
	known := NewRegretSequence(PolicyVarUCBKnown, 1)
	ucb1 := NewRegretSequence(PolicyUCB1, 1)
	tracker.Track(known)
	tracker.Track(ucb1)

	assert.Equal(t, []string{PolicyVarUCBKnown, PolicyUCB1}, tracker.Policies())
	require.Len(t, tracker.Sequences(), 2)
	assert.Same(t, known, tracker.Sequences()[0])
	assert.Same(t, ucb1, tracker.Sequences()[1])
	assert.Same(t, known, tracker.Sequence(PolicyVarUCBKnown))
	assert.Nil(t, tracker.Sequence(PolicyVarUCBUnknown))
}

func TestRegretTracker_DuplicatePolicyPanics(t *testing.T) {
	tracker := NewRegretTracker()
	tracker.Track(NewRegretSequence(PolicyUCB1, 1))
	assert.Panics(t, func() { tracker.Track(NewRegretSequence(PolicyUCB1, 1)) })
}

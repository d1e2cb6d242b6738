package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStreams_SameNameSameInstance(t *testing.T) {
	streams := NewStreams(42, SourceStandard)

	first := streams.Stream("policy/ucb1")
	second := streams.Stream("policy/ucb1")
	assert.Same(t, first, second)
}

func TestStreams_SameSeedSameDraws(t *testing.T) {
	a := NewStreams(42, "").Stream("policy/ucb1")
	b := NewStreams(42, "").Stream("policy/ucb1")

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Float64(), b.Float64(), "draw %d diverged", i)
	}
}

func TestStreams_DistinctNamesAreIsolated(t *testing.T) {
	// Draining one stream must not shift another stream's sequence.
	solo := NewStreams(7, SourceStandard)
	want := make([]float64, 50)
	wantRNG := solo.Stream("policy/varucb-known")
	for i := range want {
		want[i] = wantRNG.Float64()
	}

	mixed := NewStreams(7, SourceStandard)
	noise := mixed.Stream("policy/ucb1")
	for i := 0; i < 1000; i++ {
		noise.Float64()
	}
	got := mixed.Stream("policy/varucb-known")
	for i := range want {
		require.Equal(t, want[i], got.Float64(), "draw %d perturbed by sibling stream", i)
	}
}

func TestStreams_DifferentNamesDifferentSequences(t *testing.T) {
	streams := NewStreams(42, SourceStandard)

	a := streams.Stream("arms")
	b := streams.Stream("policy/ucb1")
	same := true
	for i := 0; i < 10; i++ {
		if a.Float64() != b.Float64() {
			same = false
			break
		}
	}
	assert.False(t, same, "distinct stream names yielded identical sequences")
}

func TestStreams_MT19937Deterministic(t *testing.T) {
	a := NewStreams(42, SourceMT19937).Stream("arms")
	b := NewStreams(42, SourceMT19937).Stream("arms")

	for i := 0; i < 100; i++ {
		require.Equal(t, a.Uint64(), b.Uint64(), "draw %d diverged", i)
	}
}

func TestStreams_SourcesDiffer(t *testing.T) {
	std := NewStreams(42, SourceStandard).Stream("arms")
	mt := NewStreams(42, SourceMT19937).Stream("arms")

	same := true
	for i := 0; i < 10; i++ {
		if std.Uint64() != mt.Uint64() {
			same = false
			break
		}
	}
	assert.False(t, same, "standard and mt19937 sources yielded identical sequences")
}

func TestNewStreams_UnknownSourcePanics(t *testing.T) {
	assert.Panics(t, func() { NewStreams(1, "xorshift") })
}

func TestStreams_SeedAccessor(t *testing.T) {
	assert.Equal(t, int64(-3), NewStreams(-3, "").Seed())
}

func TestIsValidSource(t *testing.T) {
	assert.True(t, IsValidSource(""))
	assert.True(t, IsValidSource(SourceStandard))
	assert.True(t, IsValidSource(SourceMT19937))
	assert.False(t, IsValidSource("pcg"))
}

func TestStreamNames(t *testing.T) {
	assert.Equal(t, "policy/ucb1", streamPolicy(PolicyUCB1))
	assert.Equal(t, "arms/policy/ucb1", streamPolicyArms(PolicyUCB1))
	assert.Equal(t, "trial_3/policy/varucb-known", streamTrialPolicy(3, PolicyVarUCBKnown))
}

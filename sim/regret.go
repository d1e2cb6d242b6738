package sim

import "fmt"

// RegretSequence is one policy run's cumulative regret, one entry per round,
// append-only: entry t-1 holds the regret accumulated through round t.
// Nothing mutates an entry once appended; plotting consumers read the whole
// series through Values.
type RegretSequence struct {
	policy string
	values []float64
}

// NewRegretSequence creates an empty sequence for one policy, preallocated
// for the run horizon.
func NewRegretSequence(policy string, rounds int64) *RegretSequence {
	return &RegretSequence{policy: policy, values: make([]float64, 0, rounds)}
}

// Append accumulates one round's instantaneous regret. Instantaneous regret
// is bestMean - selectedMean with bestMean the maximum true mean, so a
// negative value can only come from broken regret accounting; it panics
// rather than corrupting the series.
func (rs *RegretSequence) Append(instant float64) {
	if instant < 0 {
		panic(fmt.Sprintf("%s: negative instantaneous regret %g at round %d", rs.policy, instant, len(rs.values)+1))
	}
	total := instant
	if n := len(rs.values); n > 0 {
		total += rs.values[n-1]
	}
	rs.values = append(rs.values, total)
}

// Policy returns the policy name the sequence belongs to.
func (rs *RegretSequence) Policy() string { return rs.policy }

// Len returns the number of completed rounds.
func (rs *RegretSequence) Len() int { return len(rs.values) }

// At returns the cumulative regret through round t (1-based).
func (rs *RegretSequence) At(t int) float64 { return rs.values[t-1] }

// Final returns the cumulative regret after the last completed round, or 0
// before any round completes.
func (rs *RegretSequence) Final() float64 {
	if len(rs.values) == 0 {
		return 0
	}
	return rs.values[len(rs.values)-1]
}

// Values returns the underlying cumulative series, indexed by round-1.
// Callers must treat it as read-only.
func (rs *RegretSequence) Values() []float64 { return rs.values }

// RegretTracker collects one RegretSequence per compared policy, preserving
// registration order for handoff to external consumers.
type RegretTracker struct {
	order []string
	seqs  map[string]*RegretSequence
}

// NewRegretTracker creates an empty tracker.
func NewRegretTracker() *RegretTracker {
	return &RegretTracker{seqs: make(map[string]*RegretSequence)}
}

// Track registers a policy's sequence. Tracking the same policy twice is a
// defect and panics.
func (rt *RegretTracker) Track(seq *RegretSequence) {
	if _, dup := rt.seqs[seq.policy]; dup {
		panic(fmt.Sprintf("regret sequence for %q tracked twice", seq.policy))
	}
	rt.order = append(rt.order, seq.policy)
	rt.seqs[seq.policy] = seq
}

// Sequence returns the tracked sequence for a policy, or nil when the policy
// was never tracked.
func (rt *RegretTracker) Sequence(policy string) *RegretSequence {
	return rt.seqs[policy]
}

// Policies returns the tracked policy names in registration order.
func (rt *RegretTracker) Policies() []string {
	return append([]string(nil), rt.order...)
}

// Sequences returns every tracked sequence in registration order.
func (rt *RegretTracker) Sequences() []*RegretSequence {
	out := make([]*RegretSequence, len(rt.order))
	for i, name := range rt.order {
		out[i] = rt.seqs[name]
	}
	return out
}

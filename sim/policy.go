package sim

import (
	"fmt"
	"math"
)

// Selection policy names accepted by NewSelectionPolicy.
const (
	// PolicyUCB1 explores with a fixed variance proxy shared by every arm.
	PolicyUCB1 = "ucb1"

	// PolicyVarUCBKnown scales exploration by each arm's true variance.
	PolicyVarUCBKnown = "varucb-known"

	// PolicyVarUCBUnknown scales exploration by a per-arm running variance
	// estimate.
	PolicyVarUCBUnknown = "varucb-unknown"
)

var validPolicies = map[string]bool{
	PolicyUCB1:          true,
	PolicyVarUCBKnown:   true,
	PolicyVarUCBUnknown: true,
}

// IsValidPolicy reports whether name is a recognized selection policy.
func IsValidPolicy(name string) bool {
	return validPolicies[name]
}

// AllPolicies returns every registered policy name in canonical comparison
// order: the variance-blind baseline first, then the two variance-aware
// variants.
func AllPolicies() []string {
	return []string{PolicyUCB1, PolicyVarUCBKnown, PolicyVarUCBUnknown}
}

// SelectionPolicy picks which arm to pull each round from its own running
// statistics. Implementations never observe true arm moments through this
// interface (the known-variance policy receives the true variances once, at
// construction) and never consume randomness: selection is a deterministic
// function of the statistics, so a whole run reproduces exactly under a
// seeded reward stream.
type SelectionPolicy interface {
	// Name returns the registry name the policy was constructed under.
	Name() string

	// Select returns the arm to pull at round t (1-based). Arms below their
	// minimum pull count are selected first, in increasing index order;
	// afterwards the arm with the maximal upper confidence bound wins, with
	// exact ties resolved to the lowest index.
	Select(t int64) int

	// Update folds the reward observed for arm into its running statistics.
	Update(arm int, reward float64)

	// Stats returns a copy of the per-arm statistics, in arm order.
	Stats() []ArmStats
}

// NewSelectionPolicy creates the named selection policy for arms.
// varianceProxy configures UCB1's assumed variance (DefaultVarianceProxy when
// non-positive); the variance-aware policies ignore it. Panics on an
// unrecognized name: callers validate through Config.Validate or
// IsValidPolicy before reaching here.
func NewSelectionPolicy(name string, arms *ArmSet, varianceProxy float64) SelectionPolicy {
	switch name {
	case PolicyUCB1:
		if varianceProxy <= 0 {
			varianceProxy = DefaultVarianceProxy
		}
		return NewUCB1(arms.Len(), varianceProxy)
	case PolicyVarUCBKnown:
		return NewVarUCBKnown(arms.Variances())
	case PolicyVarUCBUnknown:
		return NewVarUCBUnknown(arms.Len())
	default:
		panic(fmt.Sprintf("unknown selection policy %q", name))
	}
}

// firstBelow returns the lowest arm index with fewer than minPulls
// observations, or -1 when every arm has at least minPulls. Scanning in index
// order is what makes warm-up sweeps visit arms 0..K-1 in order.
func firstBelow(stats []ArmStats, minPulls int64) int {
	for i := range stats {
		if stats[i].Pulls < minPulls {
			return i
		}
	}
	return -1
}

// argmaxBound returns the index of the highest bound. Ties are broken by
// first occurrence (strict >), so the lowest index wins. A non-finite bound
// is a defect in the bound computation and panics rather than silently
// steering selection.
func argmaxBound(policy string, bounds []float64) int {
	best := 0
	for i, b := range bounds {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			panic(fmt.Sprintf("%s: non-finite confidence bound %v for arm %d", policy, b, i))
		}
		if b > bounds[best] {
			best = i
		}
	}
	return best
}

// copyStats snapshots a policy's statistics table.
func copyStats(stats []ArmStats) []ArmStats {
	out := make([]ArmStats, len(stats))
	copy(out, stats)
	return out
}

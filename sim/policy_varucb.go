package sim

import "math"

// VarUCBKnown scales each arm's exploration bonus by that arm's true
// variance, handed over at construction and never estimated:
//
//	bound(i) = mean_i + sqrt(2 * var_i * ln t / n_i)
//
// It is the oracle end of the variance-awareness comparison: UCB1 knows
// nothing about per-arm variance, VarUCBUnknown has to learn it, VarUCBKnown
// is simply told.
type VarUCBKnown struct {
	stats     []ArmStats
	variances []float64
	bounds    []float64
}

// NewVarUCBKnown creates the known-variance policy from the true per-arm
// variances, in arm order (ArmSet.Variances provides them).
func NewVarUCBKnown(variances []float64) *VarUCBKnown {
	k := len(variances)
	return &VarUCBKnown{
		stats:     make([]ArmStats, k),
		variances: append([]float64(nil), variances...),
		bounds:    make([]float64, k),
	}
}

// Name implements SelectionPolicy.
func (p *VarUCBKnown) Name() string { return PolicyVarUCBKnown }

// Select implements SelectionPolicy.
func (p *VarUCBKnown) Select(t int64) int {
	if i := firstBelow(p.stats, 1); i >= 0 {
		return i
	}
	logT := math.Log(float64(t))
	for i := range p.stats {
		s := &p.stats[i]
		p.bounds[i] = s.Mean + math.Sqrt(2*p.variances[i]*logT/float64(s.Pulls))
	}
	return argmaxBound(PolicyVarUCBKnown, p.bounds)
}

// Update implements SelectionPolicy.
func (p *VarUCBKnown) Update(arm int, reward float64) {
	p.stats[arm].Observe(reward)
}

// Stats implements SelectionPolicy.
func (p *VarUCBKnown) Stats() []ArmStats {
	return copyStats(p.stats)
}

// VarUCBUnknown estimates each arm's variance online from observed rewards
// and uses the unbiased estimate where VarUCBKnown uses the truth:
//
//	bound(i) = mean_i + sqrt(2 * varhat_i * ln t / n_i)
//
// Below two pulls the estimate is undefined, so any arm with n < 2 is
// force-pulled before bounds are consulted: the first K rounds sweep arms
// 0..K-1 in index order, the next K rounds sweep them again.
type VarUCBUnknown struct {
	stats  []ArmStats
	bounds []float64
}

// NewVarUCBUnknown creates the estimated-variance policy over k arms.
func NewVarUCBUnknown(k int) *VarUCBUnknown {
	return &VarUCBUnknown{
		stats:  make([]ArmStats, k),
		bounds: make([]float64, k),
	}
}

// Name implements SelectionPolicy.
func (p *VarUCBUnknown) Name() string { return PolicyVarUCBUnknown }

// Select implements SelectionPolicy.
func (p *VarUCBUnknown) Select(t int64) int {
	if i := firstBelow(p.stats, 1); i >= 0 {
		return i
	}
	if i := firstBelow(p.stats, 2); i >= 0 {
		return i
	}
	logT := math.Log(float64(t))
	for i := range p.stats {
		s := &p.stats[i]
		p.bounds[i] = s.Mean + math.Sqrt(2*s.Variance()*logT/float64(s.Pulls))
	}
	return argmaxBound(PolicyVarUCBUnknown, p.bounds)
}

// Update implements SelectionPolicy.
func (p *VarUCBUnknown) Update(arm int, reward float64) {
	p.stats[arm].Observe(reward)
}

// Stats implements SelectionPolicy.
func (p *VarUCBUnknown) Stats() []ArmStats {
	return copyStats(p.stats)
}

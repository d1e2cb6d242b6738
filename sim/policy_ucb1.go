package sim

import "math"

// UCB1 is the variance-blind baseline. Every arm shares one exploration
// constant derived from a fixed variance proxy, never from observations:
//
//	bound(i) = mean_i + sqrt(2 * proxy * ln t / n_i)
//
// With the default proxy this is the classic mean + sqrt(4 * ln t / n) rule.
type UCB1 struct {
	stats  []ArmStats
	scale  float64 // sqrt(2 * varianceProxy), hoisted out of the round loop
	bounds []float64
}

// NewUCB1 creates a UCB1 policy over k arms that assumes varianceProxy as
// every arm's variance.
func NewUCB1(k int, varianceProxy float64) *UCB1 {
	return &UCB1{
		stats:  make([]ArmStats, k),
		scale:  math.Sqrt(2 * varianceProxy),
		bounds: make([]float64, k),
	}
}

// Name implements SelectionPolicy.
func (p *UCB1) Name() string { return PolicyUCB1 }

// Select implements SelectionPolicy.
func (p *UCB1) Select(t int64) int {
	if i := firstBelow(p.stats, 1); i >= 0 {
		return i
	}
	logT := math.Log(float64(t))
	for i := range p.stats {
		s := &p.stats[i]
		p.bounds[i] = s.Mean + p.scale*math.Sqrt(logT/float64(s.Pulls))
	}
	return argmaxBound(PolicyUCB1, p.bounds)
}

// Update implements SelectionPolicy.
func (p *UCB1) Update(arm int, reward float64) {
	p.stats[arm].Observe(reward)
}

// Stats implements SelectionPolicy.
func (p *UCB1) Stats() []ArmStats {
	return copyStats(p.stats)
}

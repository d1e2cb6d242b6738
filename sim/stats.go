package sim

// ArmStats is the running state a selection policy keeps per arm: the pull
// count, the incremental mean reward, and the Welford M2 accumulator behind
// the unbiased variance estimate. Each policy instance owns one ArmStats per
// arm; nothing is shared across policies and nothing resets mid-run.
type ArmStats struct {
	Pulls int64   // n: rewards observed for this arm
	Mean  float64 // running mean of observed rewards
	m2    float64 // sum of squared deviations from the running mean
}

// Observe folds one reward into the running statistics using Welford's
// update, which stays numerically stable over horizons of 10^6 rounds and
// keeps M2 non-negative.
func (s *ArmStats) Observe(reward float64) {
	s.Pulls++
	delta := reward - s.Mean
	s.Mean += delta / float64(s.Pulls)
	s.m2 += delta * (reward - s.Mean)
}

// Variance returns the unbiased sample variance of the observed rewards.
// The estimate is undefined below two pulls; callers gate on Pulls (the
// estimated-variance policy force-pulls such arms) and this returns 0 there
// rather than dividing by zero.
func (s *ArmStats) Variance() float64 {
	if s.Pulls < 2 {
		return 0
	}
	return s.m2 / float64(s.Pulls-1)
}

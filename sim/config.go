package sim

import (
	"fmt"
	"math"

	"github.com/bandit-sim/bandit-sim/sim/reward"
)

// DefaultVarianceProxy is the fixed per-arm variance UCB1 assumes when the
// configuration does not set one. It yields the classic sqrt(4 * ln t / n)
// exploration bonus.
const DefaultVarianceProxy = 2.0

// Config describes one bandit simulation: the horizon, the arm population to
// generate, and how policy runs are seeded and executed. The engine never
// mutates a Config; the same value can drive any number of runs.
//
// Zero values select defaults where one exists: RewardModel defaults to
// reward.KindGaussian, RNGSource to SourceStandard, Policies to all three
// registered policies, VarianceProxy to DefaultVarianceProxy, and Trials
// to 1.
type Config struct {
	Rounds int64 // T: rounds per policy run; must be positive and >= Arms
	Arms   int   // K: number of arms; must be positive
	Seed   int64 // master seed every RNG stream derives from

	MeanMin float64 // true arm means are drawn uniformly from [MeanMin, MeanMax]
	MeanMax float64

	VarianceMin float64 // true arm variances are drawn uniformly from [VarianceMin, VarianceMax]; must be positive
	VarianceMax float64

	RewardModel string // reward distribution family, one of the reward.Kind* names
	RNGSource   string // SourceStandard or SourceMT19937

	Policies      []string // selection policies to compare, in run order
	VarianceProxy float64  // variance UCB1 assumes for every arm; ignored by the VarUCB policies

	Trials          int  // independent repetitions aggregated by RunExperiment
	Parallel        bool // fan runs out over a worker group; results are identical either way
	IndependentArms bool // draw a private arm population per policy instead of sharing one
}

// Validate checks the configuration the way the engine will consume it.
// Range defects surface as *InvalidRangeError, shape and name defects as
// *ConfigurationError. Every entry point validates before round 1.
func (c Config) Validate() error {
	if err := c.validateRanges(); err != nil {
		return err
	}
	if c.Arms <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("arm count must be positive, got %d", c.Arms)}
	}
	if c.Rounds <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("rounds must be positive, got %d", c.Rounds)}
	}
	if c.Rounds < int64(c.Arms) {
		return &ConfigurationError{Reason: fmt.Sprintf("%d rounds cannot visit all %d arms at least once", c.Rounds, c.Arms)}
	}
	if math.IsNaN(c.VarianceProxy) || math.IsInf(c.VarianceProxy, 0) || c.VarianceProxy < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("variance proxy must be non-negative and finite, got %g", c.VarianceProxy)}
	}
	if c.Trials < 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("trials must be non-negative, got %d", c.Trials)}
	}
	if !reward.IsValidKind(c.RewardModel) {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown reward model %q", c.RewardModel)}
	}
	if !IsValidSource(c.RNGSource) {
		return &ConfigurationError{Reason: fmt.Sprintf("unknown rng source %q", c.RNGSource)}
	}
	seen := make(map[string]bool, len(c.Policies))
	for _, name := range c.Policies {
		if !IsValidPolicy(name) {
			return &ConfigurationError{Reason: fmt.Sprintf("unknown selection policy %q", name)}
		}
		if seen[name] {
			return &ConfigurationError{Reason: fmt.Sprintf("selection policy %q listed twice", name)}
		}
		seen[name] = true
	}
	return nil
}

// validateRanges checks the mean and variance sampling ranges. GenerateArms
// calls this directly so that arm generation stays safe even when handed a
// Config that skipped full validation.
func (c Config) validateRanges() error {
	bounds := []struct {
		field    string
		min, max float64
	}{
		{"mean", c.MeanMin, c.MeanMax},
		{"variance", c.VarianceMin, c.VarianceMax},
	}
	for _, b := range bounds {
		if math.IsNaN(b.min) || math.IsInf(b.min, 0) || math.IsNaN(b.max) || math.IsInf(b.max, 0) {
			return &InvalidRangeError{Field: b.field, Min: b.min, Max: b.max, Reason: "bounds must be finite"}
		}
		if b.min > b.max {
			return &InvalidRangeError{Field: b.field, Min: b.min, Max: b.max, Reason: "minimum exceeds maximum"}
		}
	}
	if c.VarianceMin <= 0 {
		return &InvalidRangeError{Field: "variance", Min: c.VarianceMin, Max: c.VarianceMax, Reason: "variance must be strictly positive"}
	}
	return nil
}

// policyNames returns the configured policy list, defaulting to every
// registered policy in canonical order.
func (c Config) policyNames() []string {
	if len(c.Policies) == 0 {
		return AllPolicies()
	}
	return c.Policies
}

// trialCount returns the configured trial count, defaulting to one.
func (c Config) trialCount() int {
	if c.Trials <= 0 {
		return 1
	}
	return c.Trials
}

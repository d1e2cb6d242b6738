package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/bandit-sim/bandit-sim/sim/reward"
)

// Arm is one arm's ground truth: its index and the true first two moments of
// its reward distribution. Arms are immutable once generated. Only regret
// accounting reads the true moments; policies see sampled rewards alone.
type Arm struct {
	Index    int
	Mean     float64
	Variance float64
}

// ArmSet owns the K generated arms and their reward models. It produces
// reward samples on demand and knows which arm an oracle would always pull.
type ArmSet struct {
	arms   []Arm
	models []reward.Model
	best   int // index of the arm with the maximal true mean, lowest on ties
}

// GenerateArms draws cfg.Arms arms with true means uniform in
// [MeanMin, MeanMax] and true variances uniform in [VarianceMin, VarianceMax],
// then equips each with a cfg.RewardModel reward model. Range defects surface
// as *InvalidRangeError before anything is drawn.
//
// Generation consumes exactly 2K uniform draws from rng (mean then variance,
// per arm in index order), so a fixed seed reproduces the same population
// regardless of what runs afterwards.
func GenerateArms(cfg Config, rng *rand.Rand) (*ArmSet, error) {
	if err := cfg.validateRanges(); err != nil {
		return nil, err
	}
	if cfg.Arms <= 0 {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("arm count must be positive, got %d", cfg.Arms)}
	}
	if rng == nil {
		return nil, &ConfigurationError{Reason: "arm generation requires a non-nil rng"}
	}

	meanDist := distuv.Uniform{Min: cfg.MeanMin, Max: cfg.MeanMax, Src: rng}
	varianceDist := distuv.Uniform{Min: cfg.VarianceMin, Max: cfg.VarianceMax, Src: rng}

	means := make([]float64, cfg.Arms)
	variances := make([]float64, cfg.Arms)
	for i := range means {
		means[i] = meanDist.Rand()
		variances[i] = varianceDist.Rand()
	}
	set, err := NewArmSet(means, variances, cfg.RewardModel)
	if err != nil {
		return nil, err
	}
	logrus.Debugf("generated %d arms, best arm %d (mean=%.4f, variance=%.4f)",
		set.Len(), set.best, set.arms[set.best].Mean, set.arms[set.best].Variance)
	return set, nil
}

// NewArmSet builds an ArmSet from explicit true means and variances, one
// reward model of the given kind per arm. Used when the arm population is
// fixed upfront rather than drawn from ranges.
func NewArmSet(means, variances []float64, kind string) (*ArmSet, error) {
	if len(means) == 0 {
		return nil, &ConfigurationError{Reason: "arm count must be positive, got 0"}
	}
	if len(means) != len(variances) {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("got %d means but %d variances", len(means), len(variances))}
	}

	set := &ArmSet{
		arms:   make([]Arm, len(means)),
		models: make([]reward.Model, len(means)),
	}
	for i := range means {
		model, err := reward.New(kind, means[i], variances[i])
		if err != nil {
			return nil, fmt.Errorf("arm %d: %w", i, err)
		}
		set.arms[i] = Arm{Index: i, Mean: means[i], Variance: variances[i]}
		set.models[i] = model
		if means[i] > set.arms[set.best].Mean {
			set.best = i
		}
	}
	return set, nil
}

// Len returns K, the number of arms.
func (s *ArmSet) Len() int { return len(s.arms) }

// Arm returns the ground truth for arm i.
func (s *ArmSet) Arm(i int) Arm { return s.arms[i] }

// BestArm returns the index of the arm with the highest true mean.
// Ties resolve to the lowest index.
func (s *ArmSet) BestArm() int { return s.best }

// BestMean returns the highest true mean, the baseline regret is measured
// against.
func (s *ArmSet) BestMean() float64 { return s.arms[s.best].Mean }

// Variances returns a copy of the true per-arm variances in arm order.
// This is what the known-variance policy is constructed from.
func (s *ArmSet) Variances() []float64 {
	variances := make([]float64, len(s.arms))
	for i, arm := range s.arms {
		variances[i] = arm.Variance
	}
	return variances
}

// Sample draws one reward from arm i. The only side effect is advancing rng.
func (s *ArmSet) Sample(i int, rng *rand.Rand) float64 {
	return s.models[i].Sample(rng)
}

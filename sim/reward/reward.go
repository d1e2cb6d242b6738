// Package reward defines the reward distribution families bandit arms draw
// from. A Model is parameterized by the true first two moments of one arm;
// selection policies only ever react to those moments, so any family that
// honors them is interchangeable with the Gaussian default.
package reward

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Model kinds accepted by New.
const (
	KindGaussian = "gaussian"
	KindUniform  = "uniform"
	KindConstant = "constant"
)

var validKinds = map[string]bool{
	"":           true,
	KindGaussian: true,
	KindUniform:  true,
	KindConstant: true,
}

// IsValidKind reports whether kind names a known reward model family.
// The empty string selects KindGaussian.
func IsValidKind(kind string) bool {
	return validKinds[kind]
}

// Model draws rewards from a fixed distribution and reports its true moments.
// Sampling has no side effect beyond advancing the supplied generator, so a
// seeded *rand.Rand reproduces a draw sequence exactly.
type Model interface {
	// Sample draws one reward.
	Sample(rng *rand.Rand) float64
	// Mean returns the true mean of the distribution.
	Mean() float64
	// Variance returns the true variance of the distribution.
	Variance() float64
}

// Gaussian is a Normal(mean, variance) reward model, the default family.
type Gaussian struct {
	mean     float64
	variance float64
	sigma    float64 // standard deviation, precomputed for sampling
}

// NewGaussian creates a Gaussian model. mean must be finite; variance must be
// finite and positive.
func NewGaussian(mean, variance float64) (*Gaussian, error) {
	if err := checkMoments(mean, variance); err != nil {
		return nil, err
	}
	if variance <= 0 {
		return nil, fmt.Errorf("gaussian variance must be positive, got %g", variance)
	}
	return &Gaussian{mean: mean, variance: variance, sigma: math.Sqrt(variance)}, nil
}

func (g *Gaussian) Sample(rng *rand.Rand) float64 {
	return distuv.Normal{Mu: g.mean, Sigma: g.sigma, Src: rng}.Rand()
}

func (g *Gaussian) Mean() float64     { return g.mean }
func (g *Gaussian) Variance() float64 { return g.variance }

// Uniform matches a requested mean and variance with a uniform distribution
// of width sqrt(12 * variance) centered on the mean. Handy when rewards must
// stay within a bounded support.
type Uniform struct {
	min, max float64
}

// NewUniform creates a moment-matched Uniform model. mean must be finite;
// variance must be finite and positive.
func NewUniform(mean, variance float64) (*Uniform, error) {
	if err := checkMoments(mean, variance); err != nil {
		return nil, err
	}
	if variance <= 0 {
		return nil, fmt.Errorf("uniform variance must be positive, got %g", variance)
	}
	halfWidth := math.Sqrt(12*variance) / 2
	return &Uniform{min: mean - halfWidth, max: mean + halfWidth}, nil
}

func (u *Uniform) Sample(rng *rand.Rand) float64 {
	return distuv.Uniform{Min: u.min, Max: u.max, Src: rng}.Rand()
}

func (u *Uniform) Mean() float64 { return (u.min + u.max) / 2 }

func (u *Uniform) Variance() float64 {
	width := u.max - u.min
	return width * width / 12
}

// Bounds returns the support [min, max] of the distribution.
func (u *Uniform) Bounds() (float64, float64) { return u.min, u.max }

// Constant always returns the same reward (zero variance). Selecting it
// collapses reward noise entirely, which makes selection loops exactly
// predictable when exercising policy arithmetic.
type Constant struct {
	value float64
}

// NewConstant creates a Constant model. value must be finite.
func NewConstant(value float64) (*Constant, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("constant reward must be a finite number, got %g", value)
	}
	return &Constant{value: value}, nil
}

func (c *Constant) Sample(_ *rand.Rand) float64 { return c.value }
func (c *Constant) Mean() float64               { return c.value }
func (c *Constant) Variance() float64           { return 0 }

// New creates a Model of the named kind with the given true moments. The
// empty kind selects KindGaussian; KindConstant ignores variance.
func New(kind string, mean, variance float64) (Model, error) {
	switch kind {
	case KindGaussian, "":
		return NewGaussian(mean, variance)

	case KindUniform:
		return NewUniform(mean, variance)

	case KindConstant:
		return NewConstant(mean)

	default:
		return nil, fmt.Errorf("unknown reward model %q", kind)
	}
}

// checkMoments rejects non-finite moment parameters.
func checkMoments(mean, variance float64) error {
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return fmt.Errorf("mean must be a finite number, got %g", mean)
	}
	if math.IsNaN(variance) || math.IsInf(variance, 0) {
		return fmt.Errorf("variance must be a finite number, got %g", variance)
	}
	return nil
}

package sim

import (
	"fmt"
	"math"
	"math/rand"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"
)

// AggregateCurve is one policy's cumulative regret aggregated across trials:
// the per-round mean and the per-round population standard deviation.
// Plotting consumers render Mean as the line and Std as the band around it.
type AggregateCurve struct {
	Mean []float64
	Std  []float64
}

// PolicySummary condenses one policy's final cumulative regret across trials.
type PolicySummary struct {
	Policy    string
	FinalMean float64
	FinalStd  float64
}

// ExperimentResult aggregates a repeated-trial comparison. Per-trial regret
// curves are folded into Curves in trial order; only the final regrets are
// kept per trial.
type ExperimentResult struct {
	Config   Config
	Policies []string
	Trials   int

	// Arms is the fixed ground truth every trial ran against. Nil when
	// Config.IndependentArms drew a private instance per policy, in which
	// case PolicyArms holds them.
	Arms       *ArmSet
	PolicyArms map[string]*ArmSet

	Curves map[string]*AggregateCurve
	Finals map[string][]float64 // final cumulative regret, indexed by trial
}

// RunExperiment repeats cfg's comparison cfg.Trials times over one fixed arm
// population and aggregates the regret curves across trials. Trials differ
// only in their reward draws: trial i's run of a policy consumes the stream
// named "trial_i/policy/<name>", so any single trial can be reproduced in
// isolation.
//
// Aggregation always folds trials in index order, so the result is identical
// whether cfg.Parallel fans the trials out over a worker group or not.
func RunExperiment(cfg Config) (*ExperimentResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policies := cfg.policyNames()
	trials := cfg.trialCount()
	streams := NewStreams(cfg.Seed, cfg.RNGSource)

	shared, byPolicy, err := generateInstances(cfg, streams, policies)
	if err != nil {
		return nil, err
	}

	// Derive all trials x policies reward streams up front; see RunComparison.
	rngs := make([][]*rand.Rand, trials)
	for i := range rngs {
		rngs[i] = make([]*rand.Rand, len(policies))
		for j, name := range policies {
			rngs[i][j] = streams.Stream(streamTrialPolicy(i, name))
		}
	}

	logrus.Infof("experiment: %d trials x %d policies, K=%d T=%d seed=%d",
		trials, len(policies), cfg.Arms, cfg.Rounds, cfg.Seed)

	outputs := make([][]*RegretSequence, trials)
	runTrial := func(trial int) error {
		seqs := make([]*RegretSequence, len(policies))
		for j, name := range policies {
			arms := instanceFor(shared, byPolicy, name)
			policy := NewSelectionPolicy(name, arms, cfg.VarianceProxy)
			res, err := RunPolicy(policy, arms, cfg.Rounds, rngs[trial][j])
			if err != nil {
				return fmt.Errorf("trial %d, policy %s: %w", trial, name, err)
			}
			seqs[j] = res.Regret
		}
		outputs[trial] = seqs
		logrus.Debugf("trial %d/%d complete", trial+1, trials)
		return nil
	}

	if cfg.Parallel && trials > 1 {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := 0; i < trials; i++ {
			g.Go(func() error { return runTrial(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := 0; i < trials; i++ {
			if err := runTrial(i); err != nil {
				return nil, err
			}
		}
	}

	result := &ExperimentResult{
		Config:     cfg,
		Policies:   append([]string(nil), policies...),
		Trials:     trials,
		Arms:       shared,
		PolicyArms: byPolicy,
		Curves:     make(map[string]*AggregateCurve, len(policies)),
		Finals:     make(map[string][]float64, len(policies)),
	}
	accumulators := make([]*curveAccumulator, len(policies))
	for j, name := range policies {
		accumulators[j] = newCurveAccumulator(cfg.Rounds)
		result.Finals[name] = make([]float64, trials)
	}
	for trial, seqs := range outputs {
		for j, seq := range seqs {
			accumulators[j].add(seq.Values())
			result.Finals[policies[j]][trial] = seq.Final()
		}
		outputs[trial] = nil // trial curves are folded in; release them
	}
	for j, name := range policies {
		result.Curves[name] = accumulators[j].curve()
	}
	return result, nil
}

// Summaries condenses each policy's final regrets into mean and population
// standard deviation across trials, in comparison order.
func (r *ExperimentResult) Summaries() []PolicySummary {
	out := make([]PolicySummary, 0, len(r.Policies))
	for _, name := range r.Policies {
		finals := r.Finals[name]
		out = append(out, PolicySummary{
			Policy:    name,
			FinalMean: stat.Mean(finals, nil),
			FinalStd:  stat.PopStdDev(finals, nil),
		})
	}
	return out
}

// WinCount reports in how many trials policy a finished with final cumulative
// regret no greater than policy b's.
func (r *ExperimentResult) WinCount(a, b string) int {
	finalsA, finalsB := r.Finals[a], r.Finals[b]
	wins := 0
	for i := range finalsA {
		if finalsA[i] <= finalsB[i] {
			wins++
		}
	}
	return wins
}

// curveAccumulator folds equal-length series into per-index running mean and
// M2, one Welford update per trial per round.
type curveAccumulator struct {
	n    int
	mean []float64
	m2   []float64
}

func newCurveAccumulator(rounds int64) *curveAccumulator {
	return &curveAccumulator{
		mean: make([]float64, rounds),
		m2:   make([]float64, rounds),
	}
}

func (c *curveAccumulator) add(series []float64) {
	c.n++
	inv := 1 / float64(c.n)
	for i, v := range series {
		delta := v - c.mean[i]
		c.mean[i] += delta * inv
		c.m2[i] += delta * (v - c.mean[i])
	}
}

// curve finalizes the per-round mean and population standard deviation.
func (c *curveAccumulator) curve() *AggregateCurve {
	std := make([]float64, len(c.m2))
	if c.n > 0 {
		inv := 1 / float64(c.n)
		for i, m2 := range c.m2 {
			std[i] = math.Sqrt(m2 * inv)
		}
	}
	return &AggregateCurve{Mean: c.mean, Std: std}
}

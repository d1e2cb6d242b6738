package sim

import (
	"math/rand"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ComparisonResult bundles the outputs of one multi-policy comparison: the
// ground truth the policies ran against, each policy's run result, and the
// regret tracker handed to plotting consumers.
type ComparisonResult struct {
	// Arms is the shared ground-truth instance every policy ran against.
	// Nil when Config.IndependentArms drew a private instance per policy.
	Arms *ArmSet

	// PolicyArms maps policy name to its private instance under
	// Config.IndependentArms. Nil otherwise.
	PolicyArms map[string]*ArmSet

	Results map[string]*PolicyResult
	Tracker *RegretTracker
}

// RunComparison runs every configured policy once over cfg's bandit instance
// and collects their regret sequences. Policies run as separate,
// non-interacting simulations: each draws rewards from its own RNG stream
// and owns its statistics, so results are bit-for-bit identical whether
// cfg.Parallel is set or not.
func RunComparison(cfg Config) (*ComparisonResult, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	policies := cfg.policyNames()
	streams := NewStreams(cfg.Seed, cfg.RNGSource)

	shared, byPolicy, err := generateInstances(cfg, streams, policies)
	if err != nil {
		return nil, err
	}

	// Derive every reward stream before any run starts: Streams is not safe
	// for concurrent use, and stream identity must not depend on run order.
	runs := make([]policyRun, len(policies))
	for i, name := range policies {
		arms := instanceFor(shared, byPolicy, name)
		runs[i] = policyRun{
			policy: NewSelectionPolicy(name, arms, cfg.VarianceProxy),
			arms:   arms,
			rng:    streams.Stream(streamPolicy(name)),
		}
	}

	logrus.Infof("comparing %d policies: K=%d T=%d seed=%d", len(policies), cfg.Arms, cfg.Rounds, cfg.Seed)

	results := make([]*PolicyResult, len(runs))
	execute := func(i int) error {
		res, err := RunPolicy(runs[i].policy, runs[i].arms, cfg.Rounds, runs[i].rng)
		if err != nil {
			return err
		}
		results[i] = res
		return nil
	}
	if cfg.Parallel {
		var g errgroup.Group
		for i := range runs {
			g.Go(func() error { return execute(i) })
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for i := range runs {
			if err := execute(i); err != nil {
				return nil, err
			}
		}
	}

	out := &ComparisonResult{
		Arms:       shared,
		PolicyArms: byPolicy,
		Results:    make(map[string]*PolicyResult, len(results)),
		Tracker:    NewRegretTracker(),
	}
	for _, res := range results {
		out.Results[res.Policy] = res
		out.Tracker.Track(res.Regret)
	}
	return out, nil
}

// policyRun is one pre-wired policy execution: everything derived up front so
// the run itself touches no shared state.
type policyRun struct {
	policy SelectionPolicy
	arms   *ArmSet
	rng    *rand.Rand
}

// generateInstances draws the ground-truth arm population(s) for a run: one
// shared instance by default, or one private instance per policy when
// cfg.IndependentArms is set. Exactly one of the two returns is non-nil.
func generateInstances(cfg Config, streams *Streams, policies []string) (*ArmSet, map[string]*ArmSet, error) {
	if !cfg.IndependentArms {
		shared, err := GenerateArms(cfg, streams.Stream(streamArms))
		if err != nil {
			return nil, nil, err
		}
		return shared, nil, nil
	}
	byPolicy := make(map[string]*ArmSet, len(policies))
	for _, name := range policies {
		arms, err := GenerateArms(cfg, streams.Stream(streamPolicyArms(name)))
		if err != nil {
			return nil, nil, err
		}
		byPolicy[name] = arms
	}
	return nil, byPolicy, nil
}

// instanceFor picks the ground truth a policy runs against.
func instanceFor(shared *ArmSet, byPolicy map[string]*ArmSet, policy string) *ArmSet {
	if shared != nil {
		return shared
	}
	return byPolicy[policy]
}

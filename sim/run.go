package sim

import (
	"fmt"
	"math/rand"

	"github.com/sirupsen/logrus"
)

// PolicyResult is everything one policy's closed loop produced: the arm
// chosen at each round and the cumulative regret sequence. Together with the
// round index they form the full per-round record; raw rewards are folded
// into the policy's statistics and not retained.
type PolicyResult struct {
	Policy     string
	Selections []int
	Regret     *RegretSequence
}

// RunPolicy drives one selection policy for the given number of rounds
// against arms. Each round it asks the policy for an arm, draws that arm's
// reward from rng, feeds the reward back, and accrues instantaneous regret
// measured against the best true mean. The policy never observes true
// moments; regret accounting never observes estimates.
//
// Shape defects (no arms, non-positive rounds, a horizon shorter than the
// arm count, nil rng) surface as *ConfigurationError before round 1. After
// round 1 starts the loop is total: it cannot fail, only finish.
func RunPolicy(policy SelectionPolicy, arms *ArmSet, rounds int64, rng *rand.Rand) (*PolicyResult, error) {
	if err := checkRunnable(arms, rounds); err != nil {
		return nil, err
	}
	if rng == nil {
		return nil, &ConfigurationError{Reason: "policy run requires a non-nil rng"}
	}

	bestMean := arms.BestMean()
	result := &PolicyResult{
		Policy:     policy.Name(),
		Selections: make([]int, 0, rounds),
		Regret:     NewRegretSequence(policy.Name(), rounds),
	}
	for t := int64(1); t <= rounds; t++ {
		arm := policy.Select(t)
		reward := arms.Sample(arm, rng)
		policy.Update(arm, reward)
		result.Selections = append(result.Selections, arm)
		result.Regret.Append(bestMean - arms.Arm(arm).Mean)
	}
	logrus.Debugf("%s: %d rounds complete, final regret %.4f", policy.Name(), rounds, result.Regret.Final())
	return result, nil
}

// checkRunnable rejects simulation shapes that cannot complete a run.
func checkRunnable(arms *ArmSet, rounds int64) error {
	if arms == nil || arms.Len() == 0 {
		return &ConfigurationError{Reason: "arm set is empty"}
	}
	if rounds <= 0 {
		return &ConfigurationError{Reason: fmt.Sprintf("rounds must be positive, got %d", rounds)}
	}
	if rounds < int64(arms.Len()) {
		return &ConfigurationError{Reason: fmt.Sprintf("%d rounds cannot visit all %d arms at least once", rounds, arms.Len())}
	}
	return nil
}

// Package sim provides a stochastic multi-armed bandit simulator that
// compares the cumulative regret of upper-confidence-bound selection
// policies over a shared, seeded problem instance.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - arms.go: ground-truth arm populations (true means and variances) and reward sampling
//   - policy.go: the SelectionPolicy contract, registry, and shared selection rules
//   - run.go: the closed select/sample/update loop that drives one policy for T rounds
//
// Then the layers on top:
//   - regret.go: append-only cumulative regret sequences and the per-policy tracker
//   - comparison.go: running several policies against one instance
//   - experiment.go: repeating a comparison across trials and aggregating curves
//   - spec.go: the YAML experiment format external callers configure runs with
//
// # Policies
//
// Three policies are built in, differing only in the variance that scales the
// exploration bonus sqrt(2 * v * ln t / n):
//   - ucb1: a fixed variance proxy, identical for every arm
//   - varucb-known: each arm's true variance, handed over at construction
//   - varucb-unknown: a per-arm running estimate (Welford, unbiased)
//
// # Determinism
//
// All randomness flows through named streams derived from one master seed
// (rng.go). Policies themselves never draw random numbers, so a run is a pure
// function of (configuration, seed) and reproduces bit for bit, sequentially
// or with Config.Parallel set.
//
// Reward distribution families live in the sim/reward sub-package.
package sim

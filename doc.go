// Package regret simulates repeated play of n-player normal-form games
// in which every player learns by regret matching.
//
// A Game holds an immutable payoff tensor and is shared by all of the
// Players in a Simulation. Each round, every player samples an action
// profile from the current strategies, measures how much better each of
// its own actions would have done against the others' realized actions,
// and shifts its strategy toward the actions it regrets not playing.
// The time-averaged strategies converge toward a correlated equilibrium.
package regret

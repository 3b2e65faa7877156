// Package ldbstore persists regret-matching simulations in a LevelDB
// database: checkpoints of the full simulation state, and the average
// strategy of every player after each round.
package ldbstore

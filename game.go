package regret

import (
	"math"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-regret/internal/f64"
	"github.com/timpalpant/go-regret/internal/sampling"
)

// DefaultTolerance is the maximum deviation from 1 allowed in the sum
// of a mixed strategy.
const DefaultTolerance = 1e-9

// Rand is a source of uniformly distributed random numbers in [0, 1).
// *rand.Rand from both golang.org/x/exp/rand and math/rand satisfy Rand.
type Rand interface {
	Float64() float64
}

// Game is an n-player normal-form game.
//
// Its payoff tensor has shape (d_1, ..., d_n, n): axis i < n is indexed by
// the action of player i, and the trailing axis holds the payoff to each
// player for that action profile.
//
// The zero value is an uninitialized game. Once initialized, a Game is
// immutable and may be shared freely.
type Game struct {
	payoffs       *Tensor
	numStrategies []int
	tolerance     float64
}

// GameOption configures a Game created with NewGame.
type GameOption func(g *Game)

// WithTolerance sets the tolerance used to check that mixed strategies sum to 1.
func WithTolerance(eps float64) GameOption {
	return func(g *Game) {
		g.tolerance = eps
	}
}

// NewGame creates a Game from the given payoff tensor.
// See Initialize for the accepted values.
func NewGame(payoffs interface{}, opts ...GameOption) (*Game, error) {
	g := &Game{}
	for _, opt := range opts {
		opt(g)
	}

	if err := g.Initialize(payoffs); err != nil {
		return nil, err
	}

	return g, nil
}

// Initialize sets the payoff tensor of an uninitialized game. The payoffs may be
// a *Tensor or any array-like value accepted by ParseTensor.
func (g *Game) Initialize(payoffs interface{}) error {
	if g.IsInitialized() {
		return ErrGameAlreadySet
	}

	t, err := ParseTensor(payoffs)
	if err != nil {
		return err
	}

	shape := t.Shape()
	if len(shape) < 2 {
		return errors.Wrapf(ErrInvalidShape,
			"payoff tensor must have at least 2 axes, got shape %v", shape)
	}

	numPlayers := len(shape) - 1
	if shape[numPlayers] != numPlayers {
		return errors.Wrapf(ErrInvalidShape,
			"payoff vectors have length %d but there are %d players (shape %v)",
			shape[numPlayers], numPlayers, shape)
	}

	if numPlayers < 2 {
		return errors.Wrapf(ErrInvalidShape,
			"a normal-form game must have at least 2 players, got %d", numPlayers)
	}

	if g.tolerance <= 0 {
		g.tolerance = DefaultTolerance
	}

	g.payoffs = t
	g.numStrategies = shape[:numPlayers]
	return nil
}

// IsInitialized returns true if the payoff tensor has been set.
func (g *Game) IsInitialized() bool {
	return g != nil && g.payoffs != nil
}

// NumPlayers returns the number of players, or 0 if the game is not set.
func (g *Game) NumPlayers() int {
	if !g.IsInitialized() {
		return 0
	}

	return len(g.numStrategies)
}

// NumStrategies returns the number of actions available to each player.
func (g *Game) NumStrategies() []int {
	if !g.IsInitialized() {
		return nil
	}

	return append([]int(nil), g.numStrategies...)
}

// Payoffs returns the payoff tensor.
func (g *Game) Payoffs() *Tensor {
	return g.payoffs
}

// Tolerance returns the tolerance used to validate mixed strategies.
func (g *Game) Tolerance() float64 {
	return g.tolerance
}

// PlayPureStrategy returns the payoff to every player when each player
// i plays actions[i].
func (g *Game) PlayPureStrategy(actions []int) ([]float64, error) {
	if !g.IsInitialized() {
		return nil, ErrGameNotSet
	}

	if len(actions) != len(g.numStrategies) {
		return nil, errors.Wrapf(ErrDimensionMismatch,
			"got %d actions for a %d player game", len(actions), len(g.numStrategies))
	}

	for player, a := range actions {
		if a < 0 || a >= g.numStrategies[player] {
			return nil, errors.Wrapf(ErrActionOutOfRange,
				"player %d has %d actions, got action %d", player, g.numStrategies[player], a)
		}
	}

	return g.payoffs.lastAxis(actions), nil
}

// PlayMixedStrategy samples one action for each player independently from
// its mixed strategy and plays the resulting action profile. It returns the
// payoff to every player along with the sampled actions.
//
// Exactly one value is drawn from rng per player, in player order, and only
// once all strategies have been validated.
func (g *Game) PlayMixedStrategy(rng Rand, strategies [][]float64) ([]float64, []int, error) {
	if !g.IsInitialized() {
		return nil, nil, ErrGameNotSet
	}

	if len(strategies) > len(g.numStrategies) {
		return nil, nil, errors.Wrapf(ErrPlayerIndex,
			"got strategies for %d players, game has %d", len(strategies), len(g.numStrategies))
	} else if len(strategies) < len(g.numStrategies) {
		return nil, nil, errors.Wrapf(ErrDimensionMismatch,
			"got strategies for %d players, game has %d", len(strategies), len(g.numStrategies))
	}

	for player, strategy := range strategies {
		if err := g.checkDistribution(player, strategy); err != nil {
			return nil, nil, err
		}
	}

	actions := make([]int, len(strategies))
	for player, strategy := range strategies {
		actions[player] = sampling.SampleOne(strategy, rng.Float64())
	}

	payoffs, err := g.PlayPureStrategy(actions)
	if err != nil {
		return nil, nil, err
	}

	return payoffs, actions, nil
}

func (g *Game) checkDistribution(player int, strategy []float64) error {
	if len(strategy) != g.numStrategies[player] {
		return errors.Wrapf(ErrDimensionMismatch,
			"player %d has %d actions, got a strategy over %d", player, g.numStrategies[player], len(strategy))
	}

	for action, p := range strategy {
		if p < 0 || math.IsNaN(p) {
			return errors.Wrapf(ErrNotProbabilityDistribution,
				"player %d plays action %d with probability %v", player, action, p)
		}
	}

	if total := f64.Sum(strategy); math.Abs(total-1.0) > g.tolerance {
		return errors.Wrapf(ErrNotProbabilityDistribution,
			"player %d strategy %v sums to %v", player, strategy, total)
	}

	return nil
}

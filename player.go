package regret

import (
	"github.com/pkg/errors"

	"github.com/timpalpant/go-regret/internal/f64"
	"github.com/timpalpant/go-regret/internal/policy"
)

// Player is one participant in a Game that learns a mixed strategy
// by regret matching.
//
// Each round proceeds in two phases: SimulateRound plays the game against
// the other participants, then AccumulateRegret and UpdateStrategy fold
// the realized outcome into the player's strategy.
type Player struct {
	game   *Game
	params Params
	index  int

	policy *policy.Policy
	// Scratch action profile used to evaluate counterfactuals.
	profile []int
}

// NewPlayer creates the player with the given index in game.
// The game must already be initialized.
func NewPlayer(game *Game, index int, params Params) (*Player, error) {
	if !game.IsInitialized() {
		return nil, ErrGameNotSet
	}

	if index < 0 || index >= game.NumPlayers() {
		return nil, errors.Wrapf(ErrPlayerIndex,
			"player %d in a %d player game", index, game.NumPlayers())
	}

	return &Player{
		game:    game,
		params:  params,
		index:   index,
		policy:  policy.New(game.numStrategies[index]),
		profile: make([]int, game.NumPlayers()),
	}, nil
}

// Index returns the player's position in the game.
func (p *Player) Index() int {
	return p.index
}

// NumActions returns the number of actions available to the player.
func (p *Player) NumActions() int {
	return p.policy.NumActions()
}

// Game returns the game this player participates in.
func (p *Player) Game() *Game {
	return p.game
}

// Params returns the regret accumulation parameters of the player.
func (p *Player) Params() Params {
	return p.params
}

// Strategy returns the player's current mixed strategy.
// The returned slice must not be modified.
func (p *Player) Strategy() []float64 {
	return p.policy.GetStrategy()
}

// CumulativeRegret returns a copy of the player's accumulated regret.
func (p *Player) CumulativeRegret() []float64 {
	return append([]float64(nil), p.policy.GetRegretSum()...)
}

// CumulativeStrategy returns a copy of the sum of the strategies played so far.
func (p *Player) CumulativeStrategy() []float64 {
	return append([]float64(nil), p.policy.GetStrategySum()...)
}

// PlayCount returns the number of rounds simulated by this player.
func (p *Player) PlayCount() int {
	return p.policy.PlayCount()
}

// AverageStrategy returns the time-averaged strategy over all simulated
// rounds. It is all zeros before the first round.
func (p *Player) AverageStrategy() []float64 {
	return p.policy.GetAverageStrategy()
}

// SimulateRound plays one round of the game between this player and others,
// each playing its current strategy. others must hold exactly one Player of
// the same game for every other player index, in any order.
//
// It returns the realized payoff to every player and the realized action
// profile, and records the played strategy towards the average strategy.
func (p *Player) SimulateRound(rng Rand, others []*Player) ([]float64, []int, error) {
	if !p.game.IsInitialized() {
		return nil, nil, ErrGameNotSet
	}

	strategies, err := p.strategyProfile(others)
	if err != nil {
		return nil, nil, err
	}

	payoffs, actions, err := p.game.PlayMixedStrategy(rng, strategies)
	if err != nil {
		return nil, nil, err
	}

	p.policy.AddStrategyWeight(1.0)
	return payoffs, actions, nil
}

// strategyProfile places the strategy of every participant at its player
// index, since the axes of the payoff tensor are addressed by player index.
func (p *Player) strategyProfile(others []*Player) ([][]float64, error) {
	numPlayers := p.game.NumPlayers()
	if len(others)+1 > numPlayers {
		return nil, errors.Wrapf(ErrPlayerIndex,
			"%d participants in a %d player game", len(others)+1, numPlayers)
	}

	strategies := make([][]float64, numPlayers)
	strategies[p.index] = p.Strategy()
	for _, other := range others {
		if other == nil {
			return nil, errors.Wrap(ErrInvalidParticipant, "nil player")
		} else if other == p {
			return nil, errors.Wrapf(ErrInvalidParticipant, "player %d cannot play itself", p.index)
		} else if other.game != p.game {
			return nil, errors.Wrapf(ErrInvalidParticipant, "player %d belongs to a different game", other.index)
		} else if strategies[other.index] != nil {
			return nil, errors.Wrapf(ErrInvalidParticipant, "more than one participant for player %d", other.index)
		}

		strategies[other.index] = other.Strategy()
	}

	for player, strategy := range strategies {
		if strategy == nil {
			return nil, errors.Wrapf(ErrPlayerIndex, "no participant for player %d", player)
		}
	}

	return strategies, nil
}

// ComputeRegrets returns, for each of this player's actions, how much more it
// would have received by playing that action instead while all other players'
// actions are held fixed.
func (p *Player) ComputeRegrets(actions []int) ([]float64, error) {
	if !p.game.IsInitialized() {
		return nil, ErrGameNotSet
	}

	payoffs, err := p.game.PlayPureStrategy(actions)
	if err != nil {
		return nil, err
	}

	baseUtility := payoffs[p.index]
	copy(p.profile, actions)
	regrets := make([]float64, p.NumActions())
	for a := range regrets {
		p.profile[p.index] = a
		cfPayoffs, err := p.game.PlayPureStrategy(p.profile)
		if err != nil {
			return nil, err
		}

		regrets[a] = cfPayoffs[p.index] - baseUtility
	}

	return regrets, nil
}

// AccumulateRegret adds the counterfactual regrets of the given realized action
// profile to the player's cumulative regret.
func (p *Player) AccumulateRegret(actions []int) error {
	regrets, err := p.ComputeRegrets(actions)
	if err != nil {
		return err
	}

	if !p.params.AccumulateRawRegret {
		f64.MakePositive(regrets)
	}

	p.policy.AddRegret(regrets)
	if p.params.UseRegretMatchingPlus {
		p.policy.ClampRegretSum()
	}

	return nil
}

// UpdateStrategy recomputes the player's strategy from its cumulative regret:
// each action is played in proportion to its positive regret, or uniformly
// at random if no action has positive regret.
func (p *Player) UpdateStrategy() ([]float64, error) {
	if !p.game.IsInitialized() {
		return nil, ErrGameNotSet
	}

	return p.policy.NextStrategy(), nil
}

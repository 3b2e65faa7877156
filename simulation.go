package regret

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// Observer is notified after every round of a Simulation.
type Observer interface {
	Observe(s *Simulation) error
}

// ObserverFunc adapts an ordinary function to an Observer.
type ObserverFunc func(s *Simulation) error

// Observe implements Observer.
func (f ObserverFunc) Observe(s *Simulation) error {
	return f(s)
}

// Simulation drives repeated play of a Game between regret-matching Players,
// one per player index. A Simulation is not safe for concurrent use, but
// independent Simulations may be run in parallel.
type Simulation struct {
	game    *Game
	players []*Player
	rng     Rand
	iter    int
}

// NewSimulation creates a Player for every player in game.
func NewSimulation(game *Game, params Params, rng Rand) (*Simulation, error) {
	if !game.IsInitialized() {
		return nil, ErrGameNotSet
	}

	players := make([]*Player, game.NumPlayers())
	for i := range players {
		player, err := NewPlayer(game, i, params)
		if err != nil {
			return nil, err
		}

		players[i] = player
	}

	return &Simulation{
		game:    game,
		players: players,
		rng:     rng,
	}, nil
}

// RestoreSimulation rebuilds a Simulation that has already completed iter
// rounds from previously saved players, e.g. ones reloaded with gob.
func RestoreSimulation(game *Game, players []*Player, iter int, rng Rand) (*Simulation, error) {
	if !game.IsInitialized() {
		return nil, ErrGameNotSet
	}

	if len(players) != game.NumPlayers() {
		return nil, errors.Wrapf(ErrPlayerIndex,
			"got %d players for a %d player game", len(players), game.NumPlayers())
	}

	for i, player := range players {
		if player == nil || player.index != i {
			return nil, errors.Wrapf(ErrInvalidParticipant, "expected player %d in position %d", i, i)
		}

		if err := player.attach(game); err != nil {
			return nil, err
		}
	}

	return &Simulation{
		game:    game,
		players: players,
		rng:     rng,
		iter:    iter,
	}, nil
}

// Game returns the game being played.
func (s *Simulation) Game() *Game {
	return s.game
}

// Players returns the players, ordered by index.
func (s *Simulation) Players() []*Player {
	return s.players
}

// Iter returns the number of completed rounds.
func (s *Simulation) Iter() int {
	return s.iter
}

// AverageStrategies returns the average strategy of every player.
func (s *Simulation) AverageStrategies() [][]float64 {
	result := make([][]float64, len(s.players))
	for i, player := range s.players {
		result[i] = player.AverageStrategy()
	}

	return result
}

// Step plays one round: each player in turn simulates the game against all
// of the others, accumulates its regret and updates its strategy.
func (s *Simulation) Step() error {
	others := make([]*Player, 0, len(s.players)-1)
	for _, player := range s.players {
		others = others[:0]
		for _, other := range s.players {
			if other != player {
				others = append(others, other)
			}
		}

		payoffs, actions, err := player.SimulateRound(s.rng, others)
		if err != nil {
			return err
		}

		glog.V(3).Infof("[iter=%d] player %d: actions %v, payoffs %v",
			s.iter+1, player.index, actions, payoffs)
		if err := player.AccumulateRegret(actions); err != nil {
			return err
		}

		if _, err := player.UpdateStrategy(); err != nil {
			return err
		}
	}

	s.iter++
	return nil
}

// Run plays nIter rounds, notifying every observer after each one.
func (s *Simulation) Run(nIter int, observers ...Observer) error {
	for i := 1; i <= nIter; i++ {
		if err := s.Step(); err != nil {
			return errors.Wrapf(err, "round %d", s.iter+1)
		}

		for _, o := range observers {
			if err := o.Observe(s); err != nil {
				return errors.Wrapf(err, "observing round %d", s.iter)
			}
		}

		if nIter >= 10 && i%(nIter/10) == 0 {
			for _, player := range s.players {
				glog.Infof("[iter=%d] Player %d average strategy: %.4f",
					s.iter, player.index, player.AverageStrategy())
			}
		}
	}

	return nil
}

// History is an Observer that records the average strategy of every player
// after each round.
type History struct {
	strategies [][][]float64
}

// NewHistory returns an empty History.
func NewHistory() *History {
	return &History{}
}

// Observe implements Observer.
func (h *History) Observe(s *Simulation) error {
	if h.strategies == nil {
		h.strategies = make([][][]float64, len(s.players))
	} else if len(h.strategies) != len(s.players) {
		return errors.Errorf("history has %d players, simulation has %d",
			len(h.strategies), len(s.players))
	}

	for i, player := range s.players {
		h.strategies[i] = append(h.strategies[i], player.AverageStrategy())
	}

	return nil
}

// Len returns the number of rounds recorded.
func (h *History) Len() int {
	if len(h.strategies) == 0 {
		return 0
	}

	return len(h.strategies[0])
}

// NumPlayers returns the number of players recorded.
func (h *History) NumPlayers() int {
	return len(h.strategies)
}

// Player returns the recorded average strategies of the given player,
// one per round.
func (h *History) Player(player int) [][]float64 {
	return h.strategies[player]
}

// Matrix returns the recorded average strategies of the given player
// as a row-major (rounds x actions) matrix.
func (h *History) Matrix(player int) (rows, cols int, data []float32) {
	strategies := h.strategies[player]
	rows = len(strategies)
	if rows == 0 {
		return 0, 0, nil
	}

	cols = len(strategies[0])
	data = make([]float32, 0, rows*cols)
	for _, strategy := range strategies {
		for _, x := range strategy {
			data = append(data, float32(x))
		}
	}

	return rows, cols, data
}

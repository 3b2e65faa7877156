package regret

import (
	"bytes"
	"encoding/gob"
	"io"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-regret/internal/policy"
)

// GobEncode implements gob.GobEncoder.
func (g *Game) GobEncode() ([]byte, error) {
	if !g.IsInitialized() {
		return nil, ErrGameNotSet
	}

	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(g.payoffs.shape); err != nil {
		return nil, err
	}

	if err := enc.Encode(g.payoffs.data); err != nil {
		return nil, err
	}

	if err := enc.Encode(g.tolerance); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (g *Game) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	var shape []int
	if err := dec.Decode(&shape); err != nil {
		return err
	}

	var data []float64
	if err := dec.Decode(&data); err != nil {
		return err
	}

	var tolerance float64
	if err := dec.Decode(&tolerance); err != nil {
		return err
	}

	t, err := NewTensor(shape, data)
	if err != nil {
		return err
	}

	if err := g.Initialize(t); err != nil {
		return err
	}

	if tolerance > 0 {
		g.tolerance = tolerance
	}

	return nil
}

// GobEncode implements gob.GobEncoder. The game is not included;
// a decoded Player must be passed to RestoreSimulation before use.
func (p *Player) GobEncode() ([]byte, error) {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)

	if err := enc.Encode(p.index); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.params); err != nil {
		return nil, err
	}

	if err := enc.Encode(p.policy); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (p *Player) GobDecode(buf []byte) error {
	r := bytes.NewReader(buf)
	dec := gob.NewDecoder(r)

	if err := dec.Decode(&p.index); err != nil {
		return err
	}

	if err := dec.Decode(&p.params); err != nil {
		return err
	}

	var policy policy.Policy
	if err := dec.Decode(&policy); err != nil {
		return err
	}

	p.policy = &policy
	p.game = nil
	return nil
}

func (p *Player) attach(game *Game) error {
	if p.index < 0 || p.index >= game.NumPlayers() {
		return errors.Wrapf(ErrPlayerIndex,
			"player %d in a %d player game", p.index, game.NumPlayers())
	}

	if p.policy == nil || p.policy.NumActions() != game.numStrategies[p.index] {
		return errors.Wrapf(ErrDimensionMismatch,
			"player %d has %d actions in the game", p.index, game.numStrategies[p.index])
	}

	p.game = game
	p.profile = make([]int, game.NumPlayers())
	return nil
}

// MarshalTo writes the game, the number of completed rounds, and the state
// of every player to w. The random source is not saved.
func (s *Simulation) MarshalTo(w io.Writer) error {
	enc := gob.NewEncoder(w)
	if err := enc.Encode(s.game); err != nil {
		return err
	}

	if err := enc.Encode(s.iter); err != nil {
		return err
	}

	if err := enc.Encode(s.players); err != nil {
		return err
	}

	return nil
}

// LoadSimulation reloads a Simulation saved with MarshalTo,
// drawing subsequent rounds from rng.
func LoadSimulation(r io.Reader, rng Rand) (*Simulation, error) {
	dec := gob.NewDecoder(r)
	var game Game
	if err := dec.Decode(&game); err != nil {
		return nil, err
	}

	var iter int
	if err := dec.Decode(&iter); err != nil {
		return nil, err
	}

	var players []*Player
	if err := dec.Decode(&players); err != nil {
		return nil, err
	}

	return RestoreSimulation(&game, players, iter, rng)
}

package regret

import (
	"bytes"
	"math"
	"testing"

	"github.com/pkg/errors"
	"golang.org/x/exp/rand"
)

func TestSimulation_RockPaperScissors(t *testing.T) {
	game := mustNewGame(t, rockPaperScissors)
	rng := rand.New(rand.NewSource(1234))
	sim, err := NewSimulation(game, Params{}, rng)
	if err != nil {
		t.Fatal(err)
	}

	nIter := 10000
	if err := sim.Run(nIter); err != nil {
		t.Fatal(err)
	}

	if sim.Iter() != nIter {
		t.Errorf("expected %d rounds, got %d", nIter, sim.Iter())
	}

	for i, strat := range sim.AverageStrategies() {
		t.Logf("Player %d average strategy: %v", i, strat)
		checkDistribution(t, strat, 3)
		for _, x := range strat {
			if math.Abs(x-1.0/3) > 0.05 {
				t.Errorf("player %d: expected average strategy near uniform, got %v", i, strat)
				break
			}
		}
	}
}

func TestSimulation_Chicken(t *testing.T) {
	chicken := [][][]float64{
		{{6, 6}, {2, 7}},
		{{7, 2}, {0, 0}},
	}

	game := mustNewGame(t, chicken)
	rng := rand.New(rand.NewSource(4321))
	sim, err := NewSimulation(game, Params{}, rng)
	if err != nil {
		t.Fatal(err)
	}

	if err := sim.Run(5000); err != nil {
		t.Fatal(err)
	}

	for i, player := range sim.Players() {
		t.Logf("Player %d average strategy: %v", i, player.AverageStrategy())
		checkDistribution(t, player.AverageStrategy(), 2)
		if player.PlayCount() != 5000 {
			t.Errorf("player %d: expected 5000 plays, got %d", i, player.PlayCount())
		}
	}
}

func TestSimulation_Deterministic(t *testing.T) {
	run := func() [][]float64 {
		game := mustNewGame(t, rockPaperScissors)
		sim, err := NewSimulation(game, Params{}, rand.New(rand.NewSource(77)))
		if err != nil {
			t.Fatal(err)
		}

		if err := sim.Run(500); err != nil {
			t.Fatal(err)
		}

		return sim.AverageStrategies()
	}

	first, second := run(), run()
	for i := range first {
		for j := range first[i] {
			if first[i][j] != second[i][j] {
				t.Fatalf("runs with the same seed differ: %v != %v", first, second)
			}
		}
	}
}

func TestSimulation_History(t *testing.T) {
	game := mustNewGame(t, battleOfTheSexes)
	sim, err := NewSimulation(game, Params{}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}

	history := NewHistory()
	nCalls := 0
	counter := ObserverFunc(func(s *Simulation) error {
		nCalls++
		if s.Iter() != nCalls {
			t.Errorf("observer called at round %d, expected %d", s.Iter(), nCalls)
		}
		return nil
	})

	if err := sim.Run(20, history, counter); err != nil {
		t.Fatal(err)
	}

	if history.Len() != 20 || history.NumPlayers() != 2 || nCalls != 20 {
		t.Fatalf("expected 20 rounds for 2 players, got %d rounds for %d players (%d calls)",
			history.Len(), history.NumPlayers(), nCalls)
	}

	last := history.Player(0)[19]
	checkVector(t, last, sim.Players()[0].AverageStrategy())

	rows, cols, data := history.Matrix(1)
	if rows != 20 || cols != 2 || len(data) != 40 {
		t.Errorf("expected a 20x2 matrix, got %dx%d with %d elements", rows, cols, len(data))
	}
}

func TestSimulation_ObserverError(t *testing.T) {
	game := mustNewGame(t, rockPaperScissors)
	sim, err := NewSimulation(game, Params{}, rand.New(rand.NewSource(3)))
	if err != nil {
		t.Fatal(err)
	}

	errStop := errors.New("stop")
	err = sim.Run(10, ObserverFunc(func(s *Simulation) error {
		if s.Iter() == 3 {
			return errStop
		}
		return nil
	}))

	if errors.Cause(err) != errStop {
		t.Errorf("expected observer error, got %v", err)
	}

	if sim.Iter() != 3 {
		t.Errorf("expected simulation to stop after round 3, got %d", sim.Iter())
	}
}

func TestNewSimulation_GameNotSet(t *testing.T) {
	if _, err := NewSimulation(&Game{}, Params{}, rand.New(rand.NewSource(1))); errors.Cause(err) != ErrGameNotSet {
		t.Errorf("expected ErrGameNotSet, got %v", err)
	}
}

func TestSimulation_LoadSave(t *testing.T) {
	game := mustNewGame(t, rockPaperScissors)
	sim, err := NewSimulation(game, Params{AccumulateRawRegret: true}, rand.New(rand.NewSource(11)))
	if err != nil {
		t.Fatal(err)
	}

	if err := sim.Run(100); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := sim.MarshalTo(&buf); err != nil {
		t.Fatal(err)
	}

	reloaded, err := LoadSimulation(&buf, rand.New(rand.NewSource(12)))
	if err != nil {
		t.Fatal(err)
	}

	if reloaded.Iter() != 100 {
		t.Errorf("expected 100 rounds, got %d", reloaded.Iter())
	}

	if reloaded.Game().NumPlayers() != 2 || reloaded.Game().Payoffs().At(0, 1, 0) != -1 {
		t.Errorf("failed to reload game")
	}

	for i, player := range reloaded.Players() {
		prev := sim.Players()[i]
		if player.PlayCount() != prev.PlayCount() || !player.Params().AccumulateRawRegret {
			t.Errorf("player %d: failed to reload state", i)
		}

		checkVector(t, player.Strategy(), prev.Strategy())
		checkVector(t, player.CumulativeRegret(), prev.CumulativeRegret())
		checkVector(t, player.AverageStrategy(), prev.AverageStrategy())
	}

	if err := reloaded.Run(10); err != nil {
		t.Fatal(err)
	}
}

func TestRestoreSimulation_Errors(t *testing.T) {
	game := mustNewGame(t, rockPaperScissors)
	players := mustNewPlayers(t, game, Params{})
	rng := rand.New(rand.NewSource(1))

	if _, err := RestoreSimulation(game, players[:1], 0, rng); errors.Cause(err) != ErrPlayerIndex {
		t.Errorf("expected ErrPlayerIndex, got %v", err)
	}

	swapped := []*Player{players[1], players[0]}
	if _, err := RestoreSimulation(game, swapped, 0, rng); errors.Cause(err) != ErrInvalidParticipant {
		t.Errorf("expected ErrInvalidParticipant, got %v", err)
	}

	bos := mustNewGame(t, battleOfTheSexes)
	if _, err := RestoreSimulation(bos, players, 0, rng); errors.Cause(err) != ErrDimensionMismatch {
		t.Errorf("expected ErrDimensionMismatch, got %v", err)
	}
}

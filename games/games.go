// Package games provides a catalog of classic normal-form games
// for use with regret matching.
package games

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/timpalpant/go-regret"
)

// Options parameterize games in the catalog.
type Options struct {
	// Units is the number of soldiers each player allocates in Colonel Blotto.
	Units int
	// Battlefields is the number of battlefields in Colonel Blotto.
	Battlefields int
}

// DefaultOptions are used for any unset fields of Options.
var DefaultOptions = Options{
	Units:        5,
	Battlefields: 3,
}

var catalog = map[string]func(Options) (*regret.Tensor, error){
	"rock-paper-scissors": fixed(RockPaperScissors),
	"battle-of-the-sexes": fixed(BattleOfTheSexes),
	"chicken":             fixed(Chicken),
	"matching-pennies":    fixed(MatchingPennies),
	"prisoners-dilemma":   fixed(PrisonersDilemma),
	"colonel-blotto": func(opts Options) (*regret.Tensor, error) {
		return ColonelBlotto(opts.Units, opts.Battlefields)
	},
}

// Names returns the names of all games in the catalog, sorted.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}

	sort.Strings(names)
	return names
}

// Lookup returns the payoff tensor of the named game.
func Lookup(name string, opts Options) (*regret.Tensor, error) {
	build, ok := catalog[name]
	if !ok {
		return nil, errors.Errorf("unknown game %q (available: %v)", name, Names())
	}

	if opts.Units == 0 {
		opts.Units = DefaultOptions.Units
	}

	if opts.Battlefields == 0 {
		opts.Battlefields = DefaultOptions.Battlefields
	}

	return build(opts)
}

// RockPaperScissors: 0 = rock, 1 = paper, 2 = scissors.
func RockPaperScissors() [][][]float64 {
	return [][][]float64{
		{{0, 0}, {-1, 1}, {1, -1}},
		{{1, -1}, {0, 0}, {-1, 1}},
		{{-1, 1}, {1, -1}, {0, 0}},
	}
}

// BattleOfTheSexes: both players prefer to coordinate, but player 0 prefers
// action 0 and player 1 prefers action 1.
func BattleOfTheSexes() [][][]float64 {
	return [][][]float64{
		{{2, 1}, {0, 0}},
		{{0, 0}, {1, 2}},
	}
}

// Chicken: 0 = swerve, 1 = straight.
func Chicken() [][][]float64 {
	return [][][]float64{
		{{6, 6}, {2, 7}},
		{{7, 2}, {0, 0}},
	}
}

// MatchingPennies: player 0 wins if the pennies match.
func MatchingPennies() [][][]float64 {
	return [][][]float64{
		{{1, -1}, {-1, 1}},
		{{-1, 1}, {1, -1}},
	}
}

// PrisonersDilemma: 0 = cooperate, 1 = defect.
func PrisonersDilemma() [][][]float64 {
	return [][][]float64{
		{{-1, -1}, {-3, 0}},
		{{0, -3}, {-2, -2}},
	}
}

func fixed(payoffs func() [][][]float64) func(Options) (*regret.Tensor, error) {
	return func(Options) (*regret.Tensor, error) {
		return regret.ParseTensor(payoffs())
	}
}

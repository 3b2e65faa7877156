package games

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/timpalpant/go-regret"
)

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			tensor, err := Lookup(name, Options{})
			require.NoError(t, err)

			game, err := regret.NewGame(tensor)
			require.NoError(t, err)
			require.Equal(t, 2, game.NumPlayers())
		})
	}
}

func TestLookup_Unknown(t *testing.T) {
	_, err := Lookup("tic-tac-toe", Options{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "rock-paper-scissors")
}

func TestBattleOfTheSexes(t *testing.T) {
	game, err := regret.NewGame(BattleOfTheSexes())
	require.NoError(t, err)

	payoffs, err := game.PlayPureStrategy([]int{0, 0})
	require.NoError(t, err)
	require.Equal(t, []float64{2, 1}, payoffs)

	payoffs, err = game.PlayPureStrategy([]int{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{1, 2}, payoffs)
}

func TestBlottoAllocations(t *testing.T) {
	testCases := []struct {
		units, battlefields, expected int
	}{
		{1, 1, 1},
		{3, 2, 4},
		{5, 3, 21},  // C(7, 2)
		{6, 4, 84},  // C(9, 3)
		{10, 3, 66}, // C(12, 2)
	}

	for _, tc := range testCases {
		allocations := BlottoAllocations(tc.units, tc.battlefields)
		require.Len(t, allocations, tc.expected)
		for _, a := range allocations {
			require.Len(t, a, tc.battlefields)
			total := 0
			for _, n := range a {
				require.True(t, n >= 0)
				total += n
			}
			require.Equal(t, tc.units, total)
		}
	}

	require.Equal(t, [][]int{{0, 2}, {1, 1}, {2, 0}}, BlottoAllocations(2, 2))
}

func TestColonelBlotto(t *testing.T) {
	tensor, err := Lookup("colonel-blotto", Options{Units: 4})
	require.NoError(t, err)

	allocations := BlottoAllocations(4, 3)
	require.Equal(t, []int{len(allocations), len(allocations), 2}, tensor.Shape())

	index := func(a []int) int {
		for i, b := range allocations {
			if a[0] == b[0] && a[1] == b[1] && a[2] == b[2] {
				return i
			}
		}
		t.Fatalf("allocation %v not found", a)
		return -1
	}

	// [2 1 1] beats [4 0 0] on two of three battlefields.
	i, j := index([]int{2, 1, 1}), index([]int{4, 0, 0})
	require.Equal(t, 1.0, tensor.At(i, j, 0))
	require.Equal(t, -1.0, tensor.At(i, j, 1))
	require.Equal(t, -1.0, tensor.At(j, i, 0))

	// Identical allocations tie.
	require.Equal(t, 0.0, tensor.At(i, i, 0))

	_, err = ColonelBlotto(0, 3)
	require.Error(t, err)
}

func TestLoad(t *testing.T) {
	def, err := Load(strings.NewReader(`
name: stag-hunt
players: [hunter-1, hunter-2]
payoffs:
  - [[4, 4], [1, 3]]
  - [[3, 1], [2.5, 2.5]]
`))
	require.NoError(t, err)
	require.Equal(t, "stag-hunt", def.Name)

	game, err := regret.NewGame(def.Tensor())
	require.NoError(t, err)

	payoffs, err := game.PlayPureStrategy([]int{1, 1})
	require.NoError(t, err)
	require.Equal(t, []float64{2.5, 2.5}, payoffs)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load(strings.NewReader("name: empty\n"))
	require.Error(t, err)

	_, err = Load(strings.NewReader(`
name: ragged
payoffs:
  - [[1, 1], [0, 0]]
  - [[0, 0]]
`))
	require.Error(t, err)
	require.Equal(t, regret.ErrInvalidShape, errors.Cause(err))

	_, err = Load(strings.NewReader(`
name: three-names
players: [a, b, c]
payoffs: [[[1, 1]]]
`))
	require.Error(t, err)
}

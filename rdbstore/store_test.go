//go:build rocksdb
// +build rocksdb

package rdbstore

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"github.com/timpalpant/go-regret"
	"github.com/timpalpant/go-regret/games"
)

func TestStore_LoadSave(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "regret-test-")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	opts := DefaultOptions(tmpDir)
	defer opts.Destroy()
	store, err := New(opts)
	require.NoError(t, err)
	defer store.Close()

	_, err = store.Load(rand.New(rand.NewSource(1)))
	require.Error(t, err)

	game, err := regret.NewGame(games.Chicken())
	require.NoError(t, err)
	sim, err := regret.NewSimulation(game, regret.Params{}, rand.New(rand.NewSource(123)))
	require.NoError(t, err)
	require.NoError(t, sim.Run(50))
	require.NoError(t, store.Save(sim))

	reloaded, err := store.Load(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Equal(t, 50, reloaded.Iter())
	require.Equal(t, sim.AverageStrategies(), reloaded.AverageStrategies())
}

func TestStore_SaveFewerPlayers(t *testing.T) {
	tmpDir, err := ioutil.TempDir("", "regret-test-")
	require.NoError(t, err)
	defer os.RemoveAll(tmpDir)

	opts := DefaultOptions(tmpDir)
	defer opts.Destroy()
	store, err := New(opts)
	require.NoError(t, err)
	defer store.Close()

	threePlayer := [][][][]float64{
		{{{1, 0, 0}, {0, 1, 0}}, {{0, 0, 1}, {1, 1, 1}}},
		{{{0, 1, 1}, {1, 0, 1}}, {{1, 1, 0}, {0, 0, 0}}},
	}
	game, err := regret.NewGame(threePlayer)
	require.NoError(t, err)
	sim, err := regret.NewSimulation(game, regret.Params{}, rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.NoError(t, sim.Run(10))
	require.NoError(t, store.Save(sim))

	game, err = regret.NewGame(games.Chicken())
	require.NoError(t, err)
	sim, err = regret.NewSimulation(game, regret.Params{}, rand.New(rand.NewSource(8)))
	require.NoError(t, err)
	require.NoError(t, sim.Run(20))
	require.NoError(t, store.Save(sim))

	reloaded, err := store.Load(rand.New(rand.NewSource(1)))
	require.NoError(t, err)
	require.Len(t, reloaded.Players(), 2)
	require.Equal(t, 20, reloaded.Iter())
}

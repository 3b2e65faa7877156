package ldbstore

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/timpalpant/go-regret"
)

const (
	gameKey       = "game"
	iterKey       = "iter"
	playerPrefix  = "player:"
	historyPrefix = "avg:"
)

// Store keeps simulation checkpoints and strategy histories in a LevelDB
// database. Store implements regret.Observer.
type Store struct {
	path string

	db    *leveldb.DB
	rOpts *opt.ReadOptions
	wOpts *opt.WriteOptions
}

// New opens (or creates) a Store backed by a LevelDB database at the given path.
func New(path string, opts *opt.Options) (*Store, error) {
	db, err := leveldb.OpenFile(path, opts)
	if err != nil {
		return nil, err
	}

	return &Store{
		path: path,
		db:   db,
	}, nil
}

// Close implements io.Closer.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save checkpoints the game, round count, and all player state of sim,
// replacing any previous checkpoint.
func (s *Store) Save(sim *regret.Simulation) error {
	batch := new(leveldb.Batch)
	if err := s.deletePlayers(batch); err != nil {
		return err
	}

	buf, err := sim.Game().GobEncode()
	if err != nil {
		return err
	}
	batch.Put([]byte(gameKey), buf)

	var iterBuf [8]byte
	binary.LittleEndian.PutUint64(iterBuf[:], uint64(sim.Iter()))
	batch.Put([]byte(iterKey), iterBuf[:])

	for _, player := range sim.Players() {
		buf, err := player.GobEncode()
		if err != nil {
			return err
		}

		batch.Put(playerKey(player.Index()), buf)
	}

	if err := s.db.Write(batch, s.wOpts); err != nil {
		return err
	}

	glog.V(1).Infof("Saved checkpoint of round %d to %v", sim.Iter(), s.path)
	return nil
}

// Load restores the most recently saved simulation, which will draw
// subsequent rounds from rng.
func (s *Store) Load(rng regret.Rand) (*regret.Simulation, error) {
	buf, err := s.db.Get([]byte(gameKey), s.rOpts)
	if err == leveldb.ErrNotFound {
		return nil, errors.Errorf("no checkpoint saved in %v", s.path)
	} else if err != nil {
		return nil, err
	}

	var game regret.Game
	if err := game.GobDecode(buf); err != nil {
		return nil, errors.Wrap(err, "decoding game")
	}

	iterBuf, err := s.db.Get([]byte(iterKey), s.rOpts)
	if err != nil {
		return nil, err
	}
	iter := int(binary.LittleEndian.Uint64(iterBuf))

	var players []*regret.Player
	it := s.db.NewIterator(util.BytesPrefix([]byte(playerPrefix)), s.rOpts)
	for it.Next() {
		player := new(regret.Player)
		if err := player.GobDecode(it.Value()); err != nil {
			it.Release()
			return nil, errors.Wrapf(err, "decoding %s", it.Key())
		}

		players = append(players, player)
	}

	it.Release()
	if err := it.Error(); err != nil {
		return nil, err
	}

	glog.V(1).Infof("Loaded checkpoint of round %d from %v", iter, s.path)
	return regret.RestoreSimulation(&game, players, iter, rng)
}

// deletePlayers adds deletes of every saved player to batch, so that a
// checkpoint with fewer players does not inherit stale ones.
func (s *Store) deletePlayers(batch *leveldb.Batch) error {
	it := s.db.NewIterator(util.BytesPrefix([]byte(playerPrefix)), s.rOpts)
	defer it.Release()
	for it.Next() {
		batch.Delete(append([]byte(nil), it.Key()...))
	}

	return it.Error()
}

// Observe records the average strategy of every player after the latest round.
func (s *Store) Observe(sim *regret.Simulation) error {
	batch := new(leveldb.Batch)
	for _, player := range sim.Players() {
		key := historyKey(player.Index(), sim.Iter())
		batch.Put(key, encodeF64s(player.AverageStrategy()))
	}

	return s.db.Write(batch, s.wOpts)
}

// AverageStrategies returns the recorded average strategies of the given
// player, in round order.
func (s *Store) AverageStrategies(player int) ([][]float64, error) {
	prefix := fmt.Sprintf("%s%04d:", historyPrefix, player)
	it := s.db.NewIterator(util.BytesPrefix([]byte(prefix)), s.rOpts)
	defer it.Release()

	var result [][]float64
	for it.Next() {
		v, err := decodeF64s(it.Value())
		if err != nil {
			return nil, errors.Wrapf(err, "decoding %s", it.Key())
		}

		result = append(result, v)
	}

	return result, it.Error()
}

// Keys are zero-padded so that lexicographic order matches numeric order.
func playerKey(player int) []byte {
	return []byte(fmt.Sprintf("%s%04d", playerPrefix, player))
}

func historyKey(player, iter int) []byte {
	return []byte(fmt.Sprintf("%s%04d:%012d", historyPrefix, player, iter))
}

func encodeF64s(v []float64) []byte {
	result := make([]byte, 8*len(v))
	for i, x := range v {
		bits := math.Float64bits(x)
		binary.LittleEndian.PutUint64(result[8*i:8*(i+1)], bits)
	}

	return result
}

func decodeF64s(buf []byte) ([]float64, error) {
	if len(buf)%8 != 0 {
		return nil, errors.Errorf("invalid encoded buffer of floats has len %d", len(buf))
	}

	result := make([]float64, len(buf)/8)
	for i := range result {
		bits := binary.LittleEndian.Uint64(buf[8*i : 8*(i+1)])
		result[i] = math.Float64frombits(bits)
	}

	return result, nil
}

//go:build rocksdb
// +build rocksdb

package rdbstore

import (
	"encoding/binary"
	"fmt"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	rocksdb "github.com/tecbot/gorocksdb"

	"github.com/timpalpant/go-regret"
)

const (
	gameKey      = "game"
	iterKey      = "iter"
	playerPrefix = "player:"
)

// Store keeps simulation checkpoints in a RocksDB database.
type Store struct {
	opts Options
	db   *rocksdb.DB
}

// New opens (or creates) a Store with the given options.
func New(opts Options) (*Store, error) {
	db, err := rocksdb.OpenDb(opts.DB, opts.Path)
	if err != nil {
		return nil, err
	}

	return &Store{
		opts: opts,
		db:   db,
	}, nil
}

// Close implements io.Closer.
func (s *Store) Close() error {
	s.db.Close()
	return nil
}

// Save checkpoints the game, round count, and all player state of sim,
// replacing any previous checkpoint.
func (s *Store) Save(sim *regret.Simulation) error {
	wb := rocksdb.NewWriteBatch()
	defer wb.Destroy()

	if err := s.deletePlayers(wb); err != nil {
		return err
	}

	buf, err := sim.Game().GobEncode()
	if err != nil {
		return err
	}
	wb.Put([]byte(gameKey), buf)

	var iterBuf [8]byte
	binary.LittleEndian.PutUint64(iterBuf[:], uint64(sim.Iter()))
	wb.Put([]byte(iterKey), iterBuf[:])

	for _, player := range sim.Players() {
		buf, err := player.GobEncode()
		if err != nil {
			return err
		}

		key := fmt.Sprintf("%s%04d", playerPrefix, player.Index())
		wb.Put([]byte(key), buf)
	}

	if err := s.db.Write(s.opts.Write, wb); err != nil {
		return err
	}

	glog.V(1).Infof("Saved checkpoint of round %d to %v", sim.Iter(), s.opts.Path)
	return nil
}

// Load restores the most recently saved simulation, which will draw
// subsequent rounds from rng.
func (s *Store) Load(rng regret.Rand) (*regret.Simulation, error) {
	buf, err := s.get(gameKey)
	if err != nil {
		return nil, err
	} else if buf == nil {
		return nil, errors.Errorf("no checkpoint saved in %v", s.opts.Path)
	}

	var game regret.Game
	if err := game.GobDecode(buf); err != nil {
		return nil, errors.Wrap(err, "decoding game")
	}

	iterBuf, err := s.get(iterKey)
	if err != nil {
		return nil, err
	} else if len(iterBuf) != 8 {
		return nil, errors.Errorf("invalid round count in %v", s.opts.Path)
	}
	iter := int(binary.LittleEndian.Uint64(iterBuf))

	var players []*regret.Player
	prefix := []byte(playerPrefix)
	it := s.db.NewIterator(s.opts.Read)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		value := it.Value()
		player := new(regret.Player)
		err := player.GobDecode(value.Data())
		value.Free()
		if err != nil {
			return nil, err
		}

		players = append(players, player)
	}

	if err := it.Err(); err != nil {
		return nil, err
	}

	return regret.RestoreSimulation(&game, players, iter, rng)
}

// deletePlayers adds deletes of every saved player to wb, so that a
// checkpoint with fewer players does not inherit stale ones.
func (s *Store) deletePlayers(wb *rocksdb.WriteBatch) error {
	prefix := []byte(playerPrefix)
	it := s.db.NewIterator(s.opts.Read)
	defer it.Close()
	for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
		key := it.Key()
		wb.Delete(append([]byte(nil), key.Data()...))
		key.Free()
	}

	return it.Err()
}

// get returns a copy of the value at key, or nil if it does not exist.
func (s *Store) get(key string) ([]byte, error) {
	value, err := s.db.Get(s.opts.Read, []byte(key))
	if err != nil {
		return nil, err
	}
	defer value.Free()

	if !value.Exists() {
		return nil, nil
	}

	return append([]byte(nil), value.Data()...), nil
}

//go:build rocksdb
// +build rocksdb

package main

import (
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/timpalpant/go-regret"
	"github.com/timpalpant/go-regret/rdbstore"
)

func init() {
	flags := rootCmd.Flags()
	flags.String("rocksdb", "", "RocksDB directory to save the final checkpoint in")
	if err := viper.BindPFlag("rocksdb", flags.Lookup("rocksdb")); err != nil {
		panic(err)
	}

	finalSavers = append(finalSavers, saveRocksDB)
}

func saveRocksDB(sim *regret.Simulation) error {
	path := viper.GetString("rocksdb")
	if path == "" {
		return nil
	}

	opts := rdbstore.DefaultOptions(path)
	defer opts.Destroy()
	store, err := rdbstore.New(opts)
	if err != nil {
		return errors.Wrapf(err, "opening rocksdb store %v", path)
	}
	defer store.Close()

	if err := store.Save(sim); err != nil {
		return errors.Wrapf(err, "saving checkpoint to %v", path)
	}

	glog.Infof("Saved checkpoint to %v", path)
	return nil
}

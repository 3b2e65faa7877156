//go:build rocksdb
// +build rocksdb

// Package rdbstore persists regret-matching simulation checkpoints in a
// RocksDB database. It requires cgo and the RocksDB C library, and is only
// built with the rocksdb build tag.
package rdbstore

import (
	rocksdb "github.com/tecbot/gorocksdb"
)

// Options configure how a Store opens and writes its database.
// They wrap C allocations and must be released with Destroy.
type Options struct {
	// Path is the directory holding the database.
	Path string

	DB    *rocksdb.Options
	Read  *rocksdb.ReadOptions
	Write *rocksdb.WriteOptions
}

// DefaultOptions creates the database at path if it does not exist.
// Checkpoints are LZ4 compressed and every write is synced.
func DefaultOptions(path string) Options {
	opts := rocksdb.NewDefaultOptions()
	opts.SetCreateIfMissing(true)
	opts.SetCompression(rocksdb.LZ4Compression)

	wOpts := rocksdb.NewDefaultWriteOptions()
	wOpts.SetSync(true)

	return Options{
		Path:  path,
		DB:    opts,
		Read:  rocksdb.NewDefaultReadOptions(),
		Write: wOpts,
	}
}

// Destroy releases the options. Close any Store using them first.
func (o Options) Destroy() {
	o.DB.Destroy()
	o.Read.Destroy()
	o.Write.Destroy()
}

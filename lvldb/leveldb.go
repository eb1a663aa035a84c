// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package lvldb backs the ledger's kv store with goleveldb.
package lvldb

import (
	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/storage"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/vechain/nftstaking/kv"
)

const minCapacity = 16

var _ kv.StoreCloser = (*DB)(nil)

// Options tunes a persistent database.
type Options struct {
	// CacheMB is shared between the block cache and the write buffers.
	CacheMB   int
	OpenFiles int
	// NoSync skips the fsync of committed batches.
	NoSync bool
}

// DB is a kv.Store on leveldb. Single puts are buffered by the OS; batches
// carry committed transactions and are synced unless NoSync is set.
type DB struct {
	ldb    *leveldb.DB
	commit *opt.WriteOptions
}

// New opens the database at path, creating it when missing.
func New(path string, opts Options) (*DB, error) {
	stg, err := storage.OpenFile(path, false)
	if err != nil {
		return nil, errors.Wrap(err, "open storage")
	}
	return open(stg, opts)
}

// NewMem returns a database kept in memory.
func NewMem() (*DB, error) {
	return open(storage.NewMemStorage(), Options{NoSync: true})
}

func open(stg storage.Storage, opts Options) (*DB, error) {
	cacheMB := max(opts.CacheMB, minCapacity)
	ldb, err := leveldb.Open(stg, &opt.Options{
		OpenFilesCacheCapacity: max(opts.OpenFiles, minCapacity),
		BlockCacheCapacity:     cacheMB / 2 * opt.MiB,
		WriteBuffer:            cacheMB / 4 * opt.MiB,
		Filter:                 filter.NewBloomFilter(10),
	})
	if err != nil {
		return nil, errors.Wrap(err, "open leveldb")
	}
	return &DB{ldb: ldb, commit: &opt.WriteOptions{Sync: !opts.NoSync}}, nil
}

func (db *DB) IsNotFound(err error) bool { return errors.Is(err, leveldb.ErrNotFound) }

func (db *DB) Get(key []byte) ([]byte, error) { return db.ldb.Get(key, nil) }

func (db *DB) Has(key []byte) (bool, error) { return db.ldb.Has(key, nil) }

func (db *DB) Put(key, value []byte) error { return db.ldb.Put(key, value, nil) }

func (db *DB) Delete(key []byte) error { return db.ldb.Delete(key, nil) }

func (db *DB) Close() error { return db.ldb.Close() }

func (db *DB) NewIterator(r kv.Range) kv.Iterator {
	return db.ldb.NewIterator(&util.Range{Start: r.Start, Limit: r.Limit}, nil)
}

// NewBatch starts a batch that is written atomically.
func (db *DB) NewBatch() kv.Batch {
	return &batch{db: db}
}

type batch struct {
	db  *DB
	ops leveldb.Batch
}

func (b *batch) Put(key, value []byte) error {
	b.ops.Put(key, value)
	return nil
}

func (b *batch) Delete(key []byte) error {
	b.ops.Delete(key)
	return nil
}

func (b *batch) Len() int { return b.ops.Len() }

func (b *batch) Write() error {
	return b.db.ldb.Write(&b.ops, b.db.commit)
}

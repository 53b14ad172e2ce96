package store

import (
	"path/filepath"

	"github.com/dgraph-io/badger/v4"
	"github.com/rockpool-network/rockpool/lib"
)

/*
	The Store is a thin abstraction over a single BadgerDB instance holding the pool state:
	params, reserves, deposits, and asset metadata under lexicographically prefixed keys.
	The node is single-writer, so every read and write runs in its own transaction.
*/

var _ lib.StoreI = &Store{} // enforce the StoreI interface

// Store is the badger-backed implementation of lib.StoreI
type Store struct {
	db  *badger.DB  // underlying database
	log lib.LoggerI // logger
}

// New() creates a new instance of a StoreI either in memory or an actual disk DB
func New(config lib.Config, l lib.LoggerI) (lib.StoreI, lib.ErrorI) {
	if config.StoreConfig.InMemory {
		return NewStoreInMemory(l)
	}
	return NewStore(filepath.Join(config.DataDirPath, config.DBName), config.GetValueLogSize(), l)
}

// NewStore() creates a new instance of a disk DB
func NewStore(path string, valueLogSize int64, l lib.LoggerI) (lib.StoreI, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions(path).
		WithValueLogFileSize(valueLogSize).
		WithLogger(nil))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return &Store{db: db, log: l}, nil
}

// NewStoreInMemory() creates a new instance of a memory DB
func NewStoreInMemory(l lib.LoggerI) (lib.StoreI, lib.ErrorI) {
	db, err := badger.Open(badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil))
	if err != nil {
		return nil, ErrOpenDB(err)
	}
	return &Store{db: db, log: l}, nil
}

// Get() returns the value for a key; nil with no error when the key is absent
func (s *Store) Get(key []byte) (value []byte, err lib.ErrorI) {
	e := s.db.View(func(txn *badger.Txn) error {
		item, getErr := txn.Get(key)
		if getErr != nil {
			return getErr
		}
		value, getErr = item.ValueCopy(nil)
		return getErr
	})
	if e != nil {
		// an absent key is not an error; reads default to zero values upstream
		if e == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, ErrStoreGet(e)
	}
	return value, nil
}

// Set() writes a value under a key
func (s *Store) Set(key, value []byte) lib.ErrorI {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	}); err != nil {
		return ErrStoreSet(err)
	}
	return nil
}

// Delete() removes a key
func (s *Store) Delete(key []byte) lib.ErrorI {
	if err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	}); err != nil {
		return ErrStoreDelete(err)
	}
	return nil
}

// Close() releases the underlying database handle
func (s *Store) Close() lib.ErrorI {
	if err := s.db.Close(); err != nil {
		return ErrCloseDB(err)
	}
	return nil
}

// Copyright 2026 The golisp Authors.  All rights reserved.
// Use of this source code is governed by an Apache2
// license that can be found in the LICENSE file.

// Package session persists a REPL's defined globals across process
// invocations using an embedded Badger key-value store, so
// "golisp --session-store ./sess" can restore a prior session's
// top-level bindings at startup. This is pure text-in/text-out
// persistence: stored values are re-parsed and re-evaluated through
// the ordinary reader/eval path, never deserialized as raw memory.
package session

import (
	badger "github.com/dgraph-io/badger/v4"
)

const namePrefix = "global:"

// Store wraps a Badger database directory dedicated to one
// interpreter session-store path.
type Store struct {
	db *badger.DB
}

// Open opens (creating if absent) the Badger database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir).WithLoggingLevel(badger.WARNING)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Put records name's printed definition source, e.g.
// "(define square (lambda (x) (* x x)))", keyed by name so a later
// redefinition simply overwrites the stored form.
func (s *Store) Put(name, definitionSource string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(namePrefix+name), []byte(definitionSource))
	})
}

// Delete removes a previously stored definition, mirroring undefine!.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(namePrefix + name))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		return err
	})
}

// All returns every stored definition source, in no particular order,
// for replay through the reader/eval path at startup.
func (s *Store) All() ([]string, error) {
	var out []string
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		prefix := []byte(namePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			err := item.Value(func(val []byte) error {
				out = append(out, string(val))
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	return out, err
}

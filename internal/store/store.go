// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

// Package store persists users, preferences, AHP records and comparison
// lists in BadgerDB.
//
// Key layout:
//
//	user:<id>              -> models.User
//	user_email:<email>     -> <id>
//	prefs:<userID>         -> models.Preferences
//	ahp:<userID>           -> models.AHPRecord
//	cmp:<userID>:<id>      -> models.Comparison
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"

	"github.com/aterii/practice-4/internal/metrics"
)

var (
	// ErrNotFound is returned when a record does not exist.
	ErrNotFound = errors.New("store: not found")

	// ErrUserExists is returned when registering an email twice.
	ErrUserExists = errors.New("store: user already exists")
)

const (
	prefixUser       = "user:"
	prefixUserEmail  = "user_email:"
	prefixPrefs      = "prefs:"
	prefixAHP        = "ahp:"
	prefixComparison = "cmp:"
)

// Options configures Open.
type Options struct {
	// Path is the BadgerDB directory. Ignored when InMemory is set.
	Path string

	// InMemory keeps all data in RAM.
	InMemory bool
}

// Store is a BadgerDB backed repository. It is safe for concurrent use.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) the database described by opts.
func Open(opts Options) (*Store, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	}
	bopts = bopts.WithLogger(newBadgerLogger())

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return New(db), nil
}

// New wraps an already open database.
func New(db *badger.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// RunValueLogGC reclaims value log space until badger reports nothing left
// to rewrite.
func (s *Store) RunValueLogGC(ctx context.Context, discardRatio float64) error {
	if s.db.Opts().InMemory {
		return nil
	}
	rewrites := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		err := s.db.RunValueLogGC(discardRatio)
		if errors.Is(err, badger.ErrNoRewrite) {
			if rewrites == 0 {
				metrics.RecordStoreGC("noop")
			}
			return nil
		}
		if err != nil {
			metrics.RecordStoreGC("error")
			return fmt.Errorf("value log gc: %w", err)
		}
		rewrites++
		metrics.RecordStoreGC("rewritten")
	}
}

// getJSON decodes the value at key into v.
func getJSON(txn *badger.Txn, key string, v interface{}) error {
	item, err := txn.Get([]byte(key))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("get %s: %w", key, err)
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, v)
	})
}

// setJSON encodes v and stores it at key.
func setJSON(txn *badger.Txn, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", key, err)
	}
	return txn.Set([]byte(key), data)
}

// update runs fn in a read-write transaction, retrying on conflicts.
func (s *Store) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	const maxAttempts = 3
	var err error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		err = s.db.Update(fn)
		if !errors.Is(err, badger.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *Store) view(ctx context.Context, fn func(txn *badger.Txn) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(fn)
}

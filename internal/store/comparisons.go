// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/aterii/practice-4/internal/models"
)

func comparisonKey(userID, id string) string {
	return prefixComparison + userID + ":" + id
}

// ListComparisons returns the user's comparison list, oldest first. Entry
// ids are UUIDv7, so key order is creation order.
func (s *Store) ListComparisons(ctx context.Context, userID string) ([]models.Comparison, error) {
	out := []models.Comparison{}
	err := s.view(ctx, func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		prefix := []byte(prefixComparison + userID + ":")
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			var c models.Comparison
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &c)
			}); err != nil {
				return fmt.Errorf("decode comparison: %w", err)
			}
			out = append(out, c)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AddComparison appends a car to the user's list.
func (s *Store) AddComparison(ctx context.Context, userID string, carID int, score float64) (*models.Comparison, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate comparison id: %w", err)
	}
	now := time.Now().UTC()
	c := &models.Comparison{
		ID:        id.String(),
		UserID:    userID,
		CarID:     carID,
		Score:     score,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err = s.update(ctx, func(txn *badger.Txn) error {
		return setJSON(txn, comparisonKey(userID, c.ID), c)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// UpdateComparisonScore sets the score of an entry owned by userID.
func (s *Store) UpdateComparisonScore(ctx context.Context, userID, id string, score float64) (*models.Comparison, error) {
	var c models.Comparison
	err := s.update(ctx, func(txn *badger.Txn) error {
		key := comparisonKey(userID, id)
		if err := getJSON(txn, key, &c); err != nil {
			return err
		}
		c.Score = score
		c.UpdatedAt = time.Now().UTC()
		return setJSON(txn, key, &c)
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// DeleteComparison removes an entry owned by userID.
func (s *Store) DeleteComparison(ctx context.Context, userID, id string) error {
	return s.update(ctx, func(txn *badger.Txn) error {
		key := []byte(comparisonKey(userID, id))
		if _, err := txn.Get(key); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return ErrNotFound
			}
			return err
		}
		return txn.Delete(key)
	})
}

// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package store

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/aterii/practice-4/internal/models"
)

// GetPreferences returns the user's preferences, or (nil, nil) when none
// have been saved.
func (s *Store) GetPreferences(ctx context.Context, userID string) (*models.Preferences, error) {
	var p models.Preferences
	err := s.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, prefixPrefs+userID, &p)
	})
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdatePreferences loads the user's preferences (defaults when absent),
// passes them to fn and stores the result in the same transaction.
func (s *Store) UpdatePreferences(ctx context.Context, userID string, fn func(p *models.Preferences) error) (*models.Preferences, error) {
	var out *models.Preferences
	err := s.update(ctx, func(txn *badger.Txn) error {
		p := models.DefaultPreferences(userID)
		if err := getJSON(txn, prefixPrefs+userID, p); err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		if err := fn(p); err != nil {
			return err
		}
		p.UserID = userID
		p.UpdatedAt = time.Now().UTC()
		if err := setJSON(txn, prefixPrefs+userID, p); err != nil {
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

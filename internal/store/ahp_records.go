// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package store

import (
	"context"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/aterii/practice-4/internal/models"
)

// GetByUser returns the stored AHP record of userID or ErrNotFound.
func (s *Store) GetByUser(ctx context.Context, userID string) (*models.AHPRecord, error) {
	var rec models.AHPRecord
	err := s.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, prefixAHP+userID, &rec)
	})
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

// Upsert replaces the AHP record of userID.
func (s *Store) Upsert(ctx context.Context, userID string, rec *models.AHPRecord) error {
	rec.UserID = userID
	rec.UpdatedAt = time.Now().UTC()
	return s.update(ctx, func(txn *badger.Txn) error {
		return setJSON(txn, prefixAHP+userID, rec)
	})
}

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
	"github.com/google/uuid"

	"github.com/aterii/practice-4/internal/models"
)

// CreateUser stores a new user. The email is normalized and must be unique.
// ID and CreatedAt are assigned when empty.
func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	u.Email = models.NormalizeEmail(u.Email)
	if u.Email == "" {
		return fmt.Errorf("create user: empty email")
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		emailKey := []byte(prefixUserEmail + u.Email)
		_, err := txn.Get(emailKey)
		if err == nil {
			return ErrUserExists
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return fmt.Errorf("check email: %w", err)
		}

		if err := setJSON(txn, prefixUser+u.ID, u); err != nil {
			return err
		}
		return txn.Set(emailKey, []byte(u.ID))
	})
}

// GetUserByID returns the user with id.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	var u models.User
	err := s.view(ctx, func(txn *badger.Txn) error {
		return getJSON(txn, prefixUser+id, &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetUserByEmail resolves the email index and returns the user.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.view(ctx, func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(prefixUserEmail + models.NormalizeEmail(email)))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get email index: %w", err)
		}
		id, err := item.ValueCopy(nil)
		if err != nil {
			return fmt.Errorf("read email index: %w", err)
		}
		return getJSON(txn, prefixUser+string(id), &u)
	})
	if err != nil {
		return nil, err
	}
	return &u, nil
}

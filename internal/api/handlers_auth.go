// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/aterii/practice-4/internal/auth"
	"github.com/aterii/practice-4/internal/logging"
	"github.com/aterii/practice-4/internal/models"
	"github.com/aterii/practice-4/internal/store"
)

// Register creates an account and returns it with a fresh token.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadRequest(w, r, "Email and password are required")
		return
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		respondBadRequest(w, r, "Email and password are required")
		return
	}
	if apiErr := validateRequest(&req); apiErr != nil {
		respondValidation(w, r, apiErr)
		return
	}

	ctx := r.Context()
	if _, err := h.users.GetUserByEmail(ctx, req.Email); err == nil {
		respondBadRequest(w, r, "User already exists")
		return
	} else if !errors.Is(err, store.ErrNotFound) {
		respondDatabaseError(w, r, err)
		return
	}

	hash, err := h.hasher.HashPassword(req.Password)
	if err != nil {
		respondInternal(w, r, "Failed to hash password", err)
		return
	}

	user := &models.User{
		Email:        req.Email,
		Name:         strings.TrimSpace(req.Name),
		PasswordHash: hash,
	}
	if err := h.users.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrUserExists) {
			respondBadRequest(w, r, "User already exists")
			return
		}
		respondDatabaseError(w, r, err)
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		respondInternal(w, r, "Failed to issue token", err)
		return
	}

	logging.Ctx(ctx).Info().Str("user_id", user.ID).Msg("User registered")
	respondCreated(w, &AuthResponse{User: user.Public(), Token: token})
}

// Login exchanges credentials for a token. Unknown emails and wrong
// passwords are indistinguishable to the client.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondBadRequest(w, r, "Email and password are required")
		return
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		respondBadRequest(w, r, "Email and password are required")
		return
	}

	ctx := r.Context()
	user, err := h.users.GetUserByEmail(ctx, req.Email)
	if errors.Is(err, store.ErrNotFound) {
		respondAuthError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}
	if err != nil {
		respondDatabaseError(w, r, err)
		return
	}

	if err := h.hasher.CheckPassword(user.PasswordHash, req.Password); err != nil {
		if !errors.Is(err, auth.ErrPasswordMismatch) {
			logging.Ctx(ctx).Warn().Err(err).Msg("Password check failed")
		}
		respondAuthError(w, r, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := h.jwt.GenerateToken(user.ID, user.Email)
	if err != nil {
		respondInternal(w, r, "Failed to issue token", err)
		return
	}
	respondOK(w, &AuthResponse{User: user.Public(), Token: token})
}

// requireUser returns the authenticated user id, writing a 401 when the
// request carries none.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok || claims.UserID == "" {
		respondAuthError(w, r, http.StatusUnauthorized, "Access token required")
		return "", false
	}
	return claims.UserID, true
}

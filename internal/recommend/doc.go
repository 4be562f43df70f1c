// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

// Package recommend ranks catalog cars for a user.
//
// # Pipeline
//
// A request loads three inputs concurrently: the car catalog, the user's
// preferences and the user's last AHP record. Cars are then filtered by the
// hard preference constraints (budget, body type, fuel type, transmission,
// drive type, minimum power, maximum fuel consumption) and ranked with
// ahp.Rank against the bounds of the filtered set.
//
// # Weights
//
// Criteria weights come from the preferences when they hold all five
// criteria, otherwise from a 5×5 AHP record. Without a complete weight set
// cars are listed cheapest first and every score is partial.
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), catalogClient, st, st)
//	resp, err := engine.Recommend(ctx, recommend.Request{UserID: id, Limit: 10})
package recommend

// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

/*
Package models defines the records exchanged between the HTTP layer, the
BadgerDB store and the external car catalog.

JSON field names follow the camelCase contract of the web frontend (carId,
maxBudget, criteriaWeights, ...). The one exception is AHPRecord.CR, which the
frontend reads as an upper-case "CR".
*/
package models

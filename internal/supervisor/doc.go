// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

/*
Package supervisor runs the long-lived parts of the server under a suture
supervisor tree.

The tree has two layers below the root:

	carselect
	├── data-layer   BadgerDB value log GC
	└── api-layer    HTTP server

A service that returns an error or panics is restarted by its layer. When
failures exceed the threshold the layer backs off before trying again, so a
crash looping GC pass never takes the HTTP server down with it.

Suture events are logged through zerolog using sutureslog with the
logging.SlogHandler bridge.
*/
package supervisor

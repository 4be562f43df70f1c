// CarSelect - AHP Car Recommendation Backend
// Copyright 2026 aterii
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/aterii/practice-4

package store

import (
	"strings"

	"github.com/rs/zerolog"

	"github.com/aterii/practice-4/internal/logging"
)

// badgerLogger routes badger's printf logging into zerolog. Info output is
// demoted to debug; badger is chatty during compaction.
type badgerLogger struct {
	log zerolog.Logger
}

func newBadgerLogger() *badgerLogger {
	return &badgerLogger{log: logging.WithComponent("badger")}
}

func (l *badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(trimNewline(format), args...)
}

func (l *badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(trimNewline(format), args...)
}

func (l *badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(trimNewline(format), args...)
}

func (l *badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Trace().Msgf(trimNewline(format), args...)
}

func trimNewline(s string) string {
	return strings.TrimRight(s, "\n")
}

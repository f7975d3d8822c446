// Package log provides the structured logging facade used across the module.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// Field type for structured context. Records are routed through log/slog via
// a bridge handler that hands them to a Formatter and one or more Outputs, so
// the slog ecosystem can be adopted without changing call sites.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("changelog"), log.Str("table", "wallet"))
//	l.Info("log recovered", log.Uint64("next_seq", 42))
//
// # Configuration
//
// ApplyConfig builds a logger from a declarative Config (level, text or JSON
// format, console or null output). Libraries default to NewNopLogger and
// accept a Logger through their options.
//
// # Interop
//
// RedirectStdLog routes the standard library logger (used by Pebble) through
// a Logger. ToStdLogger returns a *log.Logger for APIs that require one.
package log

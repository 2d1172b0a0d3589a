// Package log is seqid's structured logging facade.
//
// A Logger has leveled methods taking Field values. Records are routed
// through a log/slog handler into a Formatter and one or more Outputs, so
// libraries that speak slog or the standard logger end up in the same
// stream.
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormatter(&log.TextFormatter{}),
//	    log.WithOutput(log.NewConsoleOutput()),
//	)
//	l = l.With(log.Component("http"))
//	l.Info("listening", log.Str("addr", ":8080"))
//
// ApplyConfig builds a logger from a declarative Config. RedirectStdLog sends
// the standard library logger (used by pebble and net/http) through a Logger.
package log

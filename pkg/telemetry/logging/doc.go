// Package logging configures the process-wide structured logger.
//
// The relay logs with log/slog throughout; this package owns handler
// construction and level parsing so every entry point (the run command,
// tests, the validate command) builds the same logger.
//
// Credentials never reach the log stream: the relay logs worker names
// from authorization frames but never the password parameter, and frame
// bodies are logged only by length, not content.
package logging

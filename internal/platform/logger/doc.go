// Package logger provides structured logging functionality for the application.
//
// It utilizes Go's standard library log/slog package to implement structured JSON logging
// with configurable log levels, a text format for local development, and a CI
// format that stamps every record with pipeline metadata.
package logger

// Package logger provides structured logging functionality for the application.
//
// It uses the standard library log/slog package with a JSON handler and carries
// request-scoped loggers through context.Context so that every log line emitted
// while serving a request shares the request's trace ID.
package logger

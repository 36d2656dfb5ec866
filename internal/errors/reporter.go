package errors

import (
	"context"
	"log/slog"
)

// Reporter receives failures that should reach an operator or end user.
// The core never formats error pages; it hands a title and the error over.
type Reporter interface {
	Report(ctx context.Context, title string, err error)
}

// LogReporter reports errors through slog.
type LogReporter struct {
	logger *slog.Logger
}

// NewLogReporter creates a reporter writing to logger (slog.Default when nil).
func NewLogReporter(logger *slog.Logger) *LogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogReporter{logger: logger}
}

// Report logs the error with its message and status code. Server-side
// failures go out at error level, caller mistakes at warn.
func (r *LogReporter) Report(ctx context.Context, title string, err error) {
	if err == nil {
		return
	}
	message := err.Error()
	if appErr := GetAppError(err); appErr != nil {
		message = appErr.Message
	}
	code := StatusCode(err)

	level := slog.LevelWarn
	if code >= 500 {
		level = slog.LevelError
	}
	r.logger.Log(ctx, level, title,
		"message", message,
		"code", code,
		"error", err,
	)
}

// ReporterFunc adapts a function to the Reporter interface.
type ReporterFunc func(ctx context.Context, title string, err error)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, title string, err error) {
	f(ctx, title, err)
}

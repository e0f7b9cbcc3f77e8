package logging

import "log/slog"

// SlogReporter forwards event reports to a slog.Logger.
type SlogReporter struct {
	logger *slog.Logger
}

// NewSlogReporter creates a reporter backed by the given logger.
// A nil logger falls back to slog.Default().
func NewSlogReporter(logger *slog.Logger) *SlogReporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogReporter{logger: logger}
}

// Report logs the event at the matching slog level.
func (r *SlogReporter) Report(component string, level Level, module, message string, data map[string]any) {
	attrs := []any{
		slog.String("component", component),
		slog.String("module", module),
	}
	for k, v := range data {
		attrs = append(attrs, slog.Any(k, v))
	}

	switch level {
	case LevelError:
		r.logger.Error(message, attrs...)
	case LevelWarning:
		r.logger.Warn(message, attrs...)
	default:
		r.logger.Info(message, attrs...)
	}
}

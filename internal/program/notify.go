package program

import "log/slog"

// Notifier surfaces human-readable warnings, such as a rejected delete.
type Notifier interface {
	Warn(msg string)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Warn(msg string) { f(msg) }

// NoopNotifier drops every message.
type NoopNotifier struct{}

func (NoopNotifier) Warn(string) {}

type logNotifier struct {
	logger *slog.Logger
}

// NewLogNotifier writes warnings to logger at warn level.
func NewLogNotifier(logger *slog.Logger) Notifier {
	if logger == nil {
		return NoopNotifier{}
	}
	return &logNotifier{logger: logger}
}

func (n *logNotifier) Warn(msg string) {
	n.logger.Warn("program_warning", "message", msg)
}

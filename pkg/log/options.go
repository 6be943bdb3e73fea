package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Option configures a logger instance.
type Option func(l *logger)

// WithLevel sets the minimum level of messages the logger emits.
func WithLevel(level Level) Option {
	return func(l *logger) {
		l.Entry.Logger.SetLevel(level.ToLogrusLevel())
	}
}

// WithOutput sets the destination the logger writes to.
func WithOutput(output io.Writer) Option {
	return func(l *logger) {
		l.Entry.Logger.SetOutput(output)
	}
}

// WithFormatter sets the logger formatter.
func WithFormatter(formatter logrus.Formatter) Option {
	return func(l *logger) {
		l.Entry.Logger.SetFormatter(formatter)
	}
}

// WithHooks adds the given hooks to the logger.
func WithHooks(hooks ...logrus.Hook) Option {
	return func(l *logger) {
		for _, hook := range hooks {
			l.Entry.Logger.AddHook(hook)
		}
	}
}

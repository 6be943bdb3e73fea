package log

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps the logrus package to have full control over the exposed functionality,
// such as the supported log levels, and to give collaborating packages a narrow
// interface that is easy to replace in tests.
type Logger interface {
	// Level returns the log level.
	Level() Level

	// SetLevel parses and sets the log level.
	SetLevel(str string) error

	// SetOptions sets the given options on the instance.
	SetOptions(opts ...Option)

	// WithOptions clones the instance and sets the given options on the clone.
	WithOptions(opts ...Option) Logger

	// WithField adds a single field to the Logger. The field is added to the
	// returned instance only.
	WithField(key string, value any) Logger

	// WithFields adds a map of fields to the Logger. All it does is call
	// `WithField` for each field.
	WithFields(fields Fields) Logger

	// WithError adds an error as a single field to the Logger. The error is
	// added to the returned instance only.
	WithError(err error) Logger

	// Tracef logs a message at level Trace on the Logger.
	Tracef(format string, args ...any)

	// Debugf logs a message at level Debug on the Logger.
	Debugf(format string, args ...any)

	// Infof logs a message at level Info on the Logger.
	Infof(format string, args ...any)

	// Warnf logs a message at level Warn on the Logger.
	Warnf(format string, args ...any)

	// Errorf logs a message at level Error on the Logger.
	Errorf(format string, args ...any)

	// Trace logs a message at level Trace on the Logger.
	Trace(args ...any)

	// Debug logs a message at level Debug on the Logger.
	Debug(args ...any)

	// Info logs a message at level Info on the Logger.
	Info(args ...any)

	// Warn logs a message at level Warn on the Logger.
	Warn(args ...any)

	// Error logs a message at level Error on the Logger.
	Error(args ...any)
}

type logger struct {
	*logrus.Entry
}

// New returns a new Logger instance with the given options.
func New(opts ...Option) Logger {
	parent := logrus.New()
	parent.SetLevel(InfoLevel.ToLogrusLevel())

	l := &logger{Entry: logrus.NewEntry(parent)}
	l.SetOptions(opts...)

	return l
}

func (l *logger) Level() Level {
	return FromLogrusLevel(l.Entry.Logger.GetLevel())
}

func (l *logger) SetLevel(str string) error {
	level, err := ParseLevel(str)
	if err != nil {
		return err
	}

	l.Entry.Logger.SetLevel(level.ToLogrusLevel())

	return nil
}

func (l *logger) SetOptions(opts ...Option) {
	for _, opt := range opts {
		opt(l)
	}
}

func (l *logger) WithOptions(opts ...Option) Logger {
	clone := l.clone()
	clone.SetOptions(opts...)

	return clone
}

func (l *logger) WithField(key string, value any) Logger {
	return &logger{Entry: l.Entry.WithField(key, value)}
}

func (l *logger) WithFields(fields Fields) Logger {
	fields.fixKeyClashes()

	return &logger{Entry: l.Entry.WithFields(logrus.Fields(fields))}
}

func (l *logger) WithError(err error) Logger {
	return &logger{Entry: l.Entry.WithError(err)}
}

// clone copies the underlying logrus logger so that option changes on the copy
// do not leak back into the parent instance.
func (l *logger) clone() *logger {
	parent := logrus.New()
	parent.SetLevel(l.Entry.Logger.GetLevel())
	parent.SetOutput(l.Entry.Logger.Out)
	parent.SetFormatter(l.Entry.Logger.Formatter)

	return &logger{Entry: parent.WithFields(l.Entry.Data)}
}

// Writer returns an io.Writer that writes to the Logger at the info log level.
func (l *logger) Writer() *io.PipeWriter {
	return l.Entry.Writer()
}

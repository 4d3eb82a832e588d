package logging

import (
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

type Format int

const (
	FormatConsole Format = iota
	FormatJSON
)

type Field struct {
	Key   string
	Value any
}

type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

type zerologLogger struct {
	zl     zerolog.Logger
	level  Level
	fields []Field
}

// New returns a logger writing human-readable key=value lines to out.
func New(out io.Writer, level Level) Logger {
	return NewWithFormat(out, level, FormatConsole)
}

func NewWithFormat(out io.Writer, level Level, format Format) Logger {
	if out == nil {
		out = os.Stdout
	}
	w := out
	if format == FormatConsole {
		w = zerolog.ConsoleWriter{Out: out, NoColor: true, TimeFormat: time.RFC3339Nano}
	}
	zl := zerolog.New(w).Level(zerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{zl: zl, level: level}
}

func Nop() Logger {
	return &zerologLogger{zl: zerolog.Nop(), level: Error + 1}
}

func (l *zerologLogger) Enabled(level Level) bool {
	if l == nil {
		return false
	}
	return level >= l.level
}

func (l *zerologLogger) With(fields ...Field) Logger {
	if l == nil {
		return Nop()
	}
	return &zerologLogger{
		zl:     l.zl,
		level:  l.level,
		fields: append(append([]Field{}, l.fields...), fields...),
	}
}

func (l *zerologLogger) Debug(msg string, fields ...Field) { l.log(Debug, msg, fields...) }
func (l *zerologLogger) Info(msg string, fields ...Field)  { l.log(Info, msg, fields...) }
func (l *zerologLogger) Warn(msg string, fields ...Field)  { l.log(Warn, msg, fields...) }
func (l *zerologLogger) Error(msg string, fields ...Field) { l.log(Error, msg, fields...) }

func (l *zerologLogger) log(level Level, msg string, fields ...Field) {
	if l == nil || !l.Enabled(level) {
		return
	}
	event := l.zl.WithLevel(zerologLevel(level))
	if event == nil {
		return
	}
	for _, field := range l.fields {
		event = appendField(event, field)
	}
	for _, field := range fields {
		event = appendField(event, field)
	}
	event.Msg(msg)
}

func appendField(event *zerolog.Event, field Field) *zerolog.Event {
	switch v := field.Value.(type) {
	case nil:
		return event.Interface(field.Key, nil)
	case string:
		return event.Str(field.Key, v)
	case []string:
		return event.Strs(field.Key, v)
	case error:
		return event.AnErr(field.Key, v)
	case time.Duration:
		return event.Dur(field.Key, v)
	case time.Time:
		return event.Time(field.Key, v)
	case bool:
		return event.Bool(field.Key, v)
	case int:
		return event.Int(field.Key, v)
	case int64:
		return event.Int64(field.Key, v)
	case float64:
		return event.Float64(field.Key, v)
	default:
		return event.Interface(field.Key, v)
	}
}

func zerologLevel(level Level) zerolog.Level {
	switch level {
	case Debug:
		return zerolog.DebugLevel
	case Info:
		return zerolog.InfoLevel
	case Warn:
		return zerolog.WarnLevel
	case Error:
		return zerolog.ErrorLevel
	default:
		return zerolog.Disabled
	}
}

func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func ParseFormat(raw string) Format {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "json":
		return FormatJSON
	default:
		return FormatConsole
	}
}

// OpenFile opens path for appending and returns a logger writing to it along
// with the closer for the underlying file.
func OpenFile(path string, level Level, format Format) (Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, errors.New("log path is required")
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return NewWithFormat(zerolog.SyncWriter(file), level, format), file, nil
}

func NewRequestID() string {
	return uuid.NewString()
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

package log

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultTimeFormat = "2006-01-02 15:04:05"

// Logger writes leveled lines for one component. Loggers derived through
// Named and With share the writer of their parent and its lock.
type Logger struct {
	mu     *sync.Mutex
	writer io.Writer
	fields []field

	Name  string
	Level LogLevel

	TimeFormat string
	File       string
	NoColor    bool
	JSON       bool
	NoTerminal bool
	Rotation   *LoggerRotation
}

type LoggerRotation struct {
	MaxSize    int
	MaxBackups int
	MaxAge     int
	Compress   bool
}

// field is a key/value pair attached to every line of a scoped logger.
type field struct {
	key   string
	value string
}

type logEntry struct {
	Timestamp string            `json:"timestamp"`
	Level     string            `json:"level"`
	Service   string            `json:"service,omitempty"`
	Message   string            `json:"message"`
	Fields    map[string]string `json:"fields,omitempty"`
}

func NewLogger(name string, level LogLevel, file string, noTerminal bool) *Logger {
	l := &Logger{
		mu:         &sync.Mutex{},
		Name:       name,
		Level:      level,
		File:       file,
		NoTerminal: noTerminal,
		TimeFormat: defaultTimeFormat,
		Rotation: &LoggerRotation{
			MaxSize:    128,
			MaxBackups: 5,
			MaxAge:     16,
		},
	}
	l.writer = l.openWriter()

	return l
}

// NewWriterLogger creates a logger writing plain lines to w, without colors.
func NewWriterLogger(name string, level LogLevel, w io.Writer) *Logger {
	return &Logger{
		mu:         &sync.Mutex{},
		writer:     w,
		Name:       name,
		Level:      level,
		TimeFormat: defaultTimeFormat,
		NoColor:    true,
		NoTerminal: true,
	}
}

// Discard returns a logger that drops every entry.
func Discard() *Logger {
	return NewWriterLogger("", Fatal+1, io.Discard)
}

func (l *Logger) openWriter() io.Writer {
	var writers []io.Writer
	if !l.NoTerminal {
		writers = append(writers, os.Stdout)
	}

	if l.File != "" {
		writers = append(writers, &lumberjack.Logger{
			Filename:   l.File,
			MaxSize:    l.Rotation.MaxSize,
			MaxBackups: l.Rotation.MaxBackups,
			MaxAge:     l.Rotation.MaxAge,
			Compress:   l.Rotation.Compress,
		})
	}

	switch len(writers) {
	case 0:
		// NoTerminal without a file is a silent logger
		return io.Discard
	case 1:
		return writers[0]
	default:
		return io.MultiWriter(writers...)
	}
}

func (l *Logger) log(level LogLevel, msg string, args ...any) {
	if level < l.Level {
		return
	}

	timestamp := time.Now().Format(l.TimeFormat)
	message := fmt.Sprintf(msg, args...)

	var line string
	if l.JSON {
		line = l.jsonLine(timestamp, level, message)
	} else {
		line = l.textLine(timestamp, level, message)
	}

	l.mu.Lock()
	io.WriteString(l.writer, line)
	l.mu.Unlock()

	if level == Fatal {
		os.Exit(1)
	}
}

func (l *Logger) jsonLine(timestamp string, level LogLevel, message string) string {
	entry := logEntry{
		Timestamp: timestamp,
		Level:     level.String(),
		Service:   l.Name,
		Message:   message,
	}

	if len(l.fields) > 0 {
		entry.Fields = make(map[string]string, len(l.fields))
		for _, f := range l.fields {
			entry.Fields[f.key] = f.value
		}
	}

	b, _ := json.Marshal(entry)
	return string(b) + "\n"
}

func (l *Logger) textLine(timestamp string, level LogLevel, message string) string {
	var sb strings.Builder

	colored := !l.NoTerminal && !l.NoColor
	if colored {
		sb.WriteString(Color(level))
	}

	fmt.Fprintf(&sb, "[%s] %-5s", timestamp, level)
	if l.Name != "" {
		fmt.Fprintf(&sb, " [%s]", l.Name)
	}
	sb.WriteString(" ")
	sb.WriteString(message)

	for _, f := range l.fields {
		fmt.Fprintf(&sb, " %s=%s", f.key, f.value)
	}

	if colored {
		sb.WriteString(reset)
	}
	sb.WriteString("\n")

	return sb.String()
}

func (l *Logger) Debug(msg string, args ...any) {
	l.log(Debug, msg, args...)
}

func (l *Logger) Info(msg string, args ...any) {
	l.log(Info, msg, args...)
}

func (l *Logger) Warn(msg string, args ...any) {
	l.log(Warn, msg, args...)
}

func (l *Logger) Error(msg string, args ...any) {
	l.log(Error, msg, args...)
}

func (l *Logger) Fatal(msg string, args ...any) {
	l.log(Fatal, msg, args...)
}

// Named returns a child logger whose name is appended to this one as "parent/name".
func (l *Logger) Named(name string) *Logger {
	child := l.derive()
	if l.Name != "" {
		child.Name = l.Name + "/" + name
	} else {
		child.Name = name
	}

	return child
}

// With returns a child logger that appends key=value to every line.
// A later value for the same key replaces the earlier one.
func (l *Logger) With(key string, value any) *Logger {
	child := l.derive()

	child.fields = make([]field, 0, len(l.fields)+1)
	for _, f := range l.fields {
		if f.key != key {
			child.fields = append(child.fields, f)
		}
	}
	child.fields = append(child.fields, field{key: key, value: fmt.Sprint(value)})

	return child
}

func (l *Logger) derive() *Logger {
	child := *l
	child.fields = l.fields[:len(l.fields):len(l.fields)]
	return &child
}

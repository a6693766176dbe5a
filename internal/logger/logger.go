// Package logger provides a small component logger writing to stderr.
// Debug and Info are gated on verbose mode; Warn and Error always emit.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Logger is a component-scoped logger.
type Logger struct {
	component string
	verbose   func() bool
	writer    io.Writer
}

// Field is a key-value pair for structured log lines.
type Field struct {
	Key   string
	Value interface{}
}

// F builds a field.
func F(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

// Err builds an error field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// New creates a logger for a component. verbose may be nil; Debug and Info
// are then suppressed.
func New(component string, verbose func() bool) *Logger {
	return &Logger{component: component, verbose: verbose, writer: os.Stderr}
}

// WithComponent derives a logger for another component sharing the same
// verbosity and destination.
func (l *Logger) WithComponent(component string) *Logger {
	return &Logger{component: component, verbose: l.verbose, writer: l.writer}
}

// SetWriter redirects output; used by tests.
func (l *Logger) SetWriter(w io.Writer) {
	l.writer = w
}

// Debug logs only in verbose mode.
func (l *Logger) Debug(msg string, fields ...Field) {
	if l.isVerbose() {
		l.log("DEBUG", msg, fields)
	}
}

// Info logs only in verbose mode.
func (l *Logger) Info(msg string, fields ...Field) {
	if l.isVerbose() {
		l.log("INFO", msg, fields)
	}
}

// Warn always logs.
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log("WARN", msg, fields)
}

// Error always logs.
func (l *Logger) Error(msg string, fields ...Field) {
	l.log("ERROR", msg, fields)
}

func (l *Logger) isVerbose() bool {
	return l.verbose != nil && l.verbose()
}

func (l *Logger) log(level, msg string, fields []Field) {
	component := l.component
	if component == "" {
		component = "main"
	}

	var fieldsStr string
	if len(fields) > 0 {
		parts := make([]string, 0, len(fields))
		for _, f := range fields {
			parts = append(parts, fmt.Sprintf("%s=%v", f.Key, f.Value))
		}
		fieldsStr = " [" + strings.Join(parts, " ") + "]"
	}

	line := fmt.Sprintf("[%s] %s [%s] %s%s\n",
		time.Now().Format("15:04:05.000"), level, component, msg, fieldsStr)
	// Nothing useful to do if the log write itself fails.
	_, _ = fmt.Fprint(l.writer, line)
}

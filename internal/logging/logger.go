// Package logging provides leveled, structured logging with an optional
// JSON format and an operation ID carried through context, so every line
// of an install run can be correlated.
package logging

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a log level.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel parses a log level string.
func ParseLevel(s string) Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	default:
		return LevelInfo
	}
}

type contextKey string

const operationIDKey contextKey = "operation_id"

// Logger is a structured logger with level support.
type Logger struct {
	mu     sync.Mutex
	output io.Writer
	level  Level
	json   bool
	fields map[string]interface{}
}

// Entry represents a single log entry in JSON mode.
type Entry struct {
	Timestamp   string                 `json:"ts"`
	Level       string                 `json:"level"`
	Message     string                 `json:"msg"`
	OperationID string                 `json:"operation_id,omitempty"`
	Fields      map[string]interface{} `json:"fields,omitempty"`
}

var defaultLogger = New()

// New creates a new logger configured from LOG_LEVEL and LOG_FORMAT.
func New() *Logger {
	level := LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		level = ParseLevel(lvl)
	}

	return &Logger{
		output: os.Stderr,
		level:  level,
		json:   os.Getenv("LOG_FORMAT") == "json",
		fields: make(map[string]interface{}),
	}
}

// SetOutput sets the output destination for the logger.
func (l *Logger) SetOutput(w io.Writer) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.output = w
}

// SetLevel sets the minimum log level.
func (l *Logger) SetLevel(level Level) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.level = level
}

// SetJSON enables or disables JSON output format.
func (l *Logger) SetJSON(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.json = enabled
}

// WithField returns a new logger with the given field added.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make(map[string]interface{}, len(l.fields)+1)
	for k, v := range l.fields {
		newFields[k] = v
	}
	newFields[key] = value

	return &Logger{
		output: l.output,
		level:  l.level,
		json:   l.json,
		fields: newFields,
	}
}

// WithFields returns a new logger with the given fields added.
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	l.mu.Lock()
	defer l.mu.Unlock()

	newFields := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		newFields[k] = v
	}
	for k, v := range fields {
		newFields[k] = v
	}

	return &Logger{
		output: l.output,
		level:  l.level,
		json:   l.json,
		fields: newFields,
	}
}

func (l *Logger) log(ctx context.Context, level Level, format string, args ...interface{}) {
	if level < l.level {
		return
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}

	var operationID string
	if ctx != nil {
		if id, ok := ctx.Value(operationIDKey).(string); ok {
			operationID = id
		}
	}

	if l.json {
		entry := Entry{
			Timestamp:   time.Now().UTC().Format(time.RFC3339),
			Level:       level.String(),
			Message:     msg,
			OperationID: operationID,
		}
		if len(l.fields) > 0 {
			entry.Fields = l.fields
		}

		data, err := json.Marshal(entry)
		if err != nil {
			fmt.Fprintf(l.output, "ERROR: failed to marshal log entry: %v\n", err)
			return
		}
		fmt.Fprintln(l.output, string(data))
		return
	}

	// Human-readable format
	timestamp := time.Now().Format("2006/01/02 15:04:05")
	var parts []string

	if operationID != "" && len(operationID) >= 8 {
		parts = append(parts, fmt.Sprintf("[%s]", operationID[:8]))
	}

	parts = append(parts, fmt.Sprintf("[%s]", level.String()), msg)

	if len(l.fields) > 0 {
		fieldParts := make([]string, 0, len(l.fields))
		for k, v := range l.fields {
			fieldParts = append(fieldParts, fmt.Sprintf("%s=%v", k, v))
		}
		parts = append(parts, fmt.Sprintf("{%s}", strings.Join(fieldParts, ", ")))
	}

	fmt.Fprintf(l.output, "%s %s\n", timestamp, strings.Join(parts, " "))
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) {
	l.log(context.Background(), LevelDebug, format, args...)
}

// Info logs an info message.
func (l *Logger) Info(format string, args ...interface{}) {
	l.log(context.Background(), LevelInfo, format, args...)
}

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) {
	l.log(context.Background(), LevelWarn, format, args...)
}

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) {
	l.log(context.Background(), LevelError, format, args...)
}

// DebugContext logs a debug message with the context's operation ID.
func (l *Logger) DebugContext(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelDebug, format, args...)
}

// InfoContext logs an info message with the context's operation ID.
func (l *Logger) InfoContext(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelInfo, format, args...)
}

// WarnContext logs a warning message with the context's operation ID.
func (l *Logger) WarnContext(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelWarn, format, args...)
}

// ErrorContext logs an error message with the context's operation ID.
func (l *Logger) ErrorContext(ctx context.Context, format string, args ...interface{}) {
	l.log(ctx, LevelError, format, args...)
}

// WithOperationID returns a new context carrying the install run's ID.
func WithOperationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, operationIDKey, id)
}

// OperationID retrieves the operation ID from context, if any.
func OperationID(ctx context.Context) string {
	if id, ok := ctx.Value(operationIDKey).(string); ok {
		return id
	}
	return ""
}

// Default returns the default logger.
func Default() *Logger {
	return defaultLogger
}

// SetDefault sets the default logger.
func SetDefault(l *Logger) {
	defaultLogger = l
}

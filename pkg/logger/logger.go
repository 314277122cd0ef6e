package logger

import (
	"context"
	"time"
)

// Logger is the logging abstraction used across the service.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	Fatal(msg string, fields ...Field)

	// WithContext returns a logger carrying the request id stored in ctx, if any.
	WithContext(ctx context.Context) Logger

	// WithFields returns a logger with additional fields.
	WithFields(fields ...Field) Logger

	// Sync flushes any buffered log entries
	Sync() error
}

type Field struct {
	Key   string
	Value interface{}
}

func String(key, value string) Field {
	return Field{Key: key, Value: value}
}

func Strings(key string, value []string) Field {
	return Field{Key: key, Value: value}
}

func Int(key string, value int) Field {
	return Field{Key: key, Value: value}
}

func Bool(key string, value bool) Field {
	return Field{Key: key, Value: value}
}

func Duration(key string, value time.Duration) Field {
	return Field{Key: key, Value: value}
}

func Error(err error) Field {
	return Field{Key: "error", Value: err}
}

func Any(key string, value interface{}) Field {
	return Field{Key: key, Value: value}
}

type requestIDKey struct{}

// ContextWithRequestID stores a request id for WithContext to pick up.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Nop discards everything. Handy in tests and for optional components.
type Nop struct{}

func (Nop) Debug(string, ...Field)               {}
func (Nop) Info(string, ...Field)                {}
func (Nop) Warn(string, ...Field)                {}
func (Nop) Error(string, ...Field)               {}
func (Nop) Fatal(string, ...Field)               {}
func (n Nop) WithContext(context.Context) Logger { return n }
func (n Nop) WithFields(...Field) Logger         { return n }
func (Nop) Sync() error                          { return nil }

package logger

import (
	"sync"

	"github.com/rs/zerolog"
)

// LogMessage is a single entry captured by TestLogger
type LogMessage struct {
	Level   string
	Message string
	Fields  map[string]interface{}
}

// TestLogger captures log messages for assertions in tests. Loggers
// derived via WithField/WithFields/WithError record into the same root,
// so a test holding the root sees everything.
type TestLogger struct {
	root   *testLogSink
	fields map[string]interface{}
	nop    zerolog.Logger
}

type testLogSink struct {
	mu       sync.Mutex
	messages []LogMessage
}

// NewTestLogger creates an empty capturing logger
func NewTestLogger() *TestLogger {
	return &TestLogger{root: &testLogSink{}, nop: zerolog.Nop()}
}

func (l *TestLogger) record(level, msg string, fields map[string]interface{}) {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	l.root.mu.Lock()
	defer l.root.mu.Unlock()
	l.root.messages = append(l.root.messages, LogMessage{Level: level, Message: msg, Fields: merged})
}

func (l *TestLogger) Debug(msg string) { l.record("DEBUG", msg, nil) }
func (l *TestLogger) Info(msg string)  { l.record("INFO", msg, nil) }
func (l *TestLogger) Warn(msg string)  { l.record("WARN", msg, nil) }
func (l *TestLogger) Error(msg string) { l.record("ERROR", msg, nil) }

func (l *TestLogger) DebugWithFields(msg string, fields map[string]interface{}) {
	l.record("DEBUG", msg, fields)
}

func (l *TestLogger) InfoWithFields(msg string, fields map[string]interface{}) {
	l.record("INFO", msg, fields)
}

func (l *TestLogger) WarnWithFields(msg string, fields map[string]interface{}) {
	l.record("WARN", msg, fields)
}

func (l *TestLogger) ErrorWithFields(msg string, fields map[string]interface{}) {
	l.record("ERROR", msg, fields)
}

// WithField returns a logger that attaches key=value to every record
func (l *TestLogger) WithField(key string, value interface{}) Logger {
	return l.WithFields(map[string]interface{}{key: value})
}

// WithFields returns a logger that attaches fields to every record
func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &TestLogger{root: l.root, fields: merged, nop: l.nop}
}

// WithError attaches the error text to every record
func (l *TestLogger) WithError(err error) Logger {
	return l.WithField("error", err.Error())
}

// GetZerolog returns a no-op zerolog instance
func (l *TestLogger) GetZerolog() *zerolog.Logger {
	return &l.nop
}

// Messages returns a copy of everything captured so far
func (l *TestLogger) Messages() []LogMessage {
	l.root.mu.Lock()
	defer l.root.mu.Unlock()
	out := make([]LogMessage, len(l.root.messages))
	copy(out, l.root.messages)
	return out
}

// HasMessage reports whether a message with the given text was logged
func (l *TestLogger) HasMessage(text string) bool {
	for _, m := range l.Messages() {
		if m.Message == text {
			return true
		}
	}
	return false
}

// MessagesByLevel returns captured messages of one level
func (l *TestLogger) MessagesByLevel(level string) []LogMessage {
	var out []LogMessage
	for _, m := range l.Messages() {
		if m.Level == level {
			out = append(out, m)
		}
	}
	return out
}

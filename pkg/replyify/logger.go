package replyify

import (
	"sort"

	"github.com/go-logr/logr"
)

// NoopLogger discards everything.
type NoopLogger struct{}

func (NoopLogger) Debug(string, map[string]interface{}) {}
func (NoopLogger) Info(string, map[string]interface{})  {}
func (NoopLogger) Warn(string, map[string]interface{})  {}
func (NoopLogger) Error(string, map[string]interface{}) {}

// LogrLogger adapts a logr.Logger to Logger. Debug messages are logged at
// verbosity 1.
type LogrLogger struct {
	log logr.Logger
}

// NewLogrLogger wraps log.
func NewLogrLogger(log logr.Logger) *LogrLogger {
	return &LogrLogger{log: log}
}

func (l *LogrLogger) Debug(msg string, fields map[string]interface{}) {
	l.log.V(1).Info(msg, keysAndValues(fields)...)
}

func (l *LogrLogger) Info(msg string, fields map[string]interface{}) {
	l.log.Info(msg, keysAndValues(fields)...)
}

func (l *LogrLogger) Warn(msg string, fields map[string]interface{}) {
	l.log.Info(msg, append(keysAndValues(fields), "severity", "warning")...)
}

func (l *LogrLogger) Error(msg string, fields map[string]interface{}) {
	var cause error
	if err, ok := fields["error"].(error); ok {
		cause = err
	}

	l.log.Error(cause, msg, keysAndValues(fields)...)
}

func keysAndValues(fields map[string]interface{}) []interface{} {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	kv := make([]interface{}, 0, len(fields)*2)
	for _, key := range keys {
		kv = append(kv, key, fields[key])
	}

	return kv
}

package log

// noopLogger discards everything. Useful in tests and for callers who want
// Coordinator's default colorized logger silenced entirely.
type noopLogger struct{}

// NewNoopLogger returns a Logger that discards every call.
func NewNoopLogger() Logger { return noopLogger{} }

func (noopLogger) Debug(msg string, fields ...interface{}) {}
func (noopLogger) Warn(msg string, fields ...interface{})  {}
func (noopLogger) Error(msg string, fields ...interface{}) {}
func (noopLogger) Panic(msg string, fields ...interface{}) {}

func (n noopLogger) With(fields ...interface{}) Logger { return n }

var _ Logger = noopLogger{}

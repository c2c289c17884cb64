package logging

// nopLogger discards everything. Used as the default in components where
// the caller did not wire a logger.
type nopLogger struct{}

// NewNopLogger returns a logger that discards all messages.
func NewNopLogger() Logger {
	return nopLogger{}
}

func (nopLogger) Debug(string, ...Field)        {}
func (nopLogger) Info(string, ...Field)         {}
func (nopLogger) Warn(string, ...Field)         {}
func (nopLogger) Error(string, error, ...Field) {}
func (n nopLogger) WithFields(...Field) Logger  { return n }

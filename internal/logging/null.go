package logging

import "context"

// NullLogger discards everything. Handy default for tests and for callers
// that have not wired a real logger yet.
type NullLogger struct{}

func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (n *NullLogger) Debug(ctx context.Context, msg string, args ...any) {}
func (n *NullLogger) Info(ctx context.Context, msg string, args ...any)  {}
func (n *NullLogger) Warn(ctx context.Context, msg string, args ...any)  {}
func (n *NullLogger) Error(ctx context.Context, msg string, args ...any) {}
func (n *NullLogger) With(args ...any) Logger                            { return n }

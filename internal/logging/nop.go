package logging

import "github.com/nik45114/upkeep/types"

// NopLogger implements a no-op logger that discards all messages.
//
// Useful as the default when callers do not provide a logger.
type NopLogger struct{}

// Compile-time assertion that NopLogger implements Logger.
var _ types.Logger = (*NopLogger)(nil)

// NewNop creates a new no-op logger.
//
// Returns:
//   - *NopLogger: A new no-op logger instance
func NewNop() *NopLogger {
	return &NopLogger{}
}

// Debug discards the message.
func (n *NopLogger) Debug(_ string, _ ...any) {}

// Info discards the message.
func (n *NopLogger) Info(_ string, _ ...any) {}

// Warn discards the message.
func (n *NopLogger) Warn(_ string, _ ...any) {}

// Error discards the message.
func (n *NopLogger) Error(_ string, _ ...any) {}

// Fatal discards the message and does not exit.
//
// Unlike real Fatal implementations, the no-op logger never terminates the
// program; components must not rely on Fatal for control flow.
func (n *NopLogger) Fatal(_ string, _ ...any) {}

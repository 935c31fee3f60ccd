package logging

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// ZerologLogger adapts a zerolog.Logger to the Logger interface.
type ZerologLogger struct {
	l zerolog.Logger
}

func NewZerologLogger(l zerolog.Logger) *ZerologLogger {
	return &ZerologLogger{l: l}
}

// NewNop returns a Logger that discards everything. Useful in tests.
func NewNop() *ZerologLogger {
	return &ZerologLogger{l: zerolog.Nop()}
}

func (z *ZerologLogger) Debug(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Debug(), args).Msg(msg)
}

func (z *ZerologLogger) Info(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Info(), args).Msg(msg)
}

func (z *ZerologLogger) Warn(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Warn(), args).Msg(msg)
}

func (z *ZerologLogger) Error(ctx context.Context, msg string, args ...any) {
	withFields(z.l.Error(), args).Msg(msg)
}

func (z *ZerologLogger) With(args ...any) Logger {
	c := z.l.With()
	for i := 0; i+1 < len(args); i += 2 {
		c = c.Interface(keyAt(args, i), args[i+1])
	}
	return &ZerologLogger{l: c.Logger()}
}

// withFields attaches key–value args to a pending event. A trailing key
// without a value is logged under the key itself with a nil value.
func withFields(ev *zerolog.Event, args []any) *zerolog.Event {
	for i := 0; i < len(args); i += 2 {
		if i+1 >= len(args) {
			ev = ev.Interface(keyAt(args, i), nil)
			break
		}
		ev = ev.Interface(keyAt(args, i), args[i+1])
	}
	return ev
}

func keyAt(args []any, i int) string {
	if s, ok := args[i].(string); ok {
		return s
	}
	return fmt.Sprintf("%v", args[i])
}

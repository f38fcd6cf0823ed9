// Package cli implements the stepwall command-line interface.
//
// Commands log through a charmbracelet/log logger that is stored in the
// command context. --verbose lowers its level to debug and, for serve, also
// logs every pipeline, cache and HTTP event. Human-readable status lines go
// to stderr so that `stepwall render > wall.png` stays clean.
//
//	c := cli.New(os.Stderr, cli.LogInfo)
//	err := c.RootCommand().ExecuteContext(ctx)
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// logElapsed logs an info line ending in the time passed since start,
// e.g. "Rendered 1179x2556 png (84ms)".
func logElapsed(l *log.Logger, start time.Time, format string, args ...any) {
	args = append(args, time.Since(start).Round(time.Millisecond))
	l.Infof(format+" (%s)", args...)
}

type loggerKey struct{}

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, l)
}

// loggerFromContext returns the logger set by the root command, or
// log.Default outside a command.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

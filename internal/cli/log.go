package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/graphplot/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Rendered heatmap (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Bridge
// =============================================================================

// logHooks forwards library events to the CLI logger at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.PlotHooks = logHooks{}
	_ observability.IOHooks   = logHooks{}
)

func (h logHooks) OnPlotStart(kind string, size int) {
	h.logger.Debug("plotting", "kind", kind, "size", size)
}

func (h logHooks) OnPlotComplete(kind string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("plot failed", "kind", kind, "err", err)
		return
	}
	h.logger.Debug("plotted", "kind", kind, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnEncode(format string, bytes int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("encode failed", "format", format, "err", err)
		return
	}
	h.logger.Debug("encoded", "format", format, "bytes", bytes, "took", d.Round(time.Millisecond))
}

func (h logHooks) OnRead(path, kind string, err error) {
	if err != nil {
		h.logger.Debug("read failed", "path", path, "kind", kind, "err", err)
		return
	}
	h.logger.Debug("read", "path", path, "kind", kind)
}

func (h logHooks) OnWrite(path string, bytes int, err error) {
	if err != nil {
		h.logger.Debug("write failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("wrote", "path", path, "bytes", bytes)
}

// installHooks routes plot and IO events to l.
func installHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetPlotHooks(h)
	observability.SetIOHooks(h)
}

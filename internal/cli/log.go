package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w at level, with timestamps like
// "14:32:01.45".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Run complete (412ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks turns pipeline and asset events into debug logs.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnResolve(_ context.Context, dir string, created bool, err error) {
	if err != nil {
		h.logger.Debug("resolve output directory failed", "err", err)
		return
	}
	h.logger.Debug("resolved output directory", "path", dir, "created", created)
}

func (h *logHooks) OnLoadStart(_ context.Context, path, kind string) {
	h.logger.Debug("loading input", "path", path, "kind", kind)
}

func (h *logHooks) OnLoadComplete(_ context.Context, path string, width, height int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("load failed", "path", path, "err", err)
		return
	}
	h.logger.Debug("load finished", "path", path, "width", width, "height", height, "duration", d)
}

func (h *logHooks) OnAssetStart(_ context.Context, name string) {
	h.logger.Debug("generating", "asset", name)
}

func (h *logHooks) OnAssetComplete(_ context.Context, name string, size int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("asset failed", "asset", name, "err", err)
		return
	}
	h.logger.Debug("asset written", "asset", name, "bytes", size, "duration", d.Round(time.Millisecond))
}

func (h *logHooks) OnQualityAttempt(_ context.Context, quality, size int, accepted bool) {
	h.logger.Debug("jpeg quality attempt", "quality", quality, "bytes", size, "accepted", accepted)
}

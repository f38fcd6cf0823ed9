package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks implements every hook interface by writing debug-level log lines.
// stepwall serve registers it when running with --verbose.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{Logger: logger}
}

func (h *LogHooks) OnLayoutStart(_ context.Context, width, height int) {
	h.Logger.Debug("layout start", "width", width, "height", height)
}

func (h *LogHooks) OnLayoutComplete(_ context.Context, cells int, d time.Duration) {
	h.Logger.Debug("layout complete", "cells", cells, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, format string, width, height int) {
	h.Logger.Debug("render start", "format", format, "width", width, "height", height)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, format string, size int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("render failed", "format", format, "duration", d, "err", err)
		return
	}
	h.Logger.Debug("render complete", "format", format, "bytes", size, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.Logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.Logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.Logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *LogHooks) OnCacheError(_ context.Context, op string, err error) {
	h.Logger.Warn("cache error", "op", op, "err", err)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.Logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status, size int, d time.Duration) {
	h.Logger.Debug("response", "method", method, "path", path, "status", status, "bytes", size, "duration", d)
}

var _ Hooks = (*LogHooks)(nil)

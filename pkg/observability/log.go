package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every pipeline and cache event to a logger at debug level.
// Failures are logged at warn level.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks that log to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

func (h *LogHooks) done(stage string, err error, kv ...any) {
	if err != nil {
		h.logger.Warn(stage+" failed", append(kv, "err", err)...)
		return
	}
	h.logger.Debug(stage+" done", kv...)
}

func (h *LogHooks) OnLoadStart(_ context.Context, path string) {
	h.logger.Debug("load", "path", path)
}

func (h *LogHooks) OnLoadComplete(_ context.Context, path string, tables int, d time.Duration, err error) {
	h.done("load", err, "path", path, "tables", tables, "duration", d)
}

func (h *LogHooks) OnResolveStart(_ context.Context, tables int) {
	h.logger.Debug("resolve", "tables", tables)
}

func (h *LogHooks) OnResolveComplete(_ context.Context, tables int, d time.Duration, err error) {
	h.done("resolve", err, "tables", tables, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	h.done("render", err, "formats", formats, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *LogHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
)

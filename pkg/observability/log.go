package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks writes every event to a structured logger at debug level, and
// failures at warn level. It implements all three hook interfaces.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks returns hooks logging to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	return &LogHooks{logger: logger}
}

// Register installs h for pipeline, cache and HTTP events.
func (h *LogHooks) Register() {
	SetPipelineHooks(h)
	SetCacheHooks(h)
	SetHTTPHooks(h)
}

func (h *LogHooks) OnParseStart(_ context.Context, formula string) {
	h.logger.Debug("parse started", "formula", formula)
}

func (h *LogHooks) OnParseComplete(_ context.Context, formula string, vars int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("parse failed", "formula", formula, "error", err)
		return
	}
	h.logger.Debug("parse complete", "vars", vars, "duration", d)
}

func (h *LogHooks) OnBuildStart(_ context.Context, strategy string, vars int) {
	h.logger.Debug("build started", "strategy", strategy, "vars", vars)
}

func (h *LogHooks) OnBuildComplete(_ context.Context, nodes, evaluations int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("build failed", "error", err, "duration", d)
		return
	}
	h.logger.Debug("build complete", "nodes", nodes, "oracle_calls", evaluations, "duration", d)
}

func (h *LogHooks) OnRenderStart(_ context.Context, formats []string) {
	h.logger.Debug("render started", "formats", formats)
}

func (h *LogHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("render failed", "formats", formats, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "duration", d)
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

func (h *LogHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "error", err)
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

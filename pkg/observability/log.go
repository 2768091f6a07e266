package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line.
type LogHooks struct {
	Logger *log.Logger
}

// NewLogHooks returns hooks writing to l, or to log.Default() when l is nil.
func NewLogHooks(l *log.Logger) *LogHooks {
	if l == nil {
		l = log.Default()
	}
	return &LogHooks{Logger: l}
}

func (h *LogHooks) OnPlace(_ context.Context, board, block string, exhausted bool) {
	h.Logger.Debug("placed block", "board", board, "block", block, "exhausted", exhausted)
}

func (h *LogHooks) OnResolve(_ context.Context, board, block string, collided, unresolved int, d time.Duration) {
	h.Logger.Debug("resolved move", "board", board, "block", block,
		"collided", collided, "unresolved", unresolved, "duration", d)
}

func (h *LogHooks) OnRemove(_ context.Context, board, block string) {
	h.Logger.Debug("removed block", "board", board, "block", block)
}

func (h *LogHooks) OnLoad(_ context.Context, backend, board string, blocks int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("load failed", "backend", backend, "board", board, "err", err)
		return
	}
	h.Logger.Debug("loaded board", "backend", backend, "board", board, "blocks", blocks, "duration", d)
}

func (h *LogHooks) OnSave(_ context.Context, backend, board string, blocks int, d time.Duration, err error) {
	if err != nil {
		h.Logger.Debug("save failed", "backend", backend, "board", board, "err", err)
		return
	}
	h.Logger.Debug("saved board", "backend", backend, "board", board, "blocks", blocks, "duration", d)
}

func (h *LogHooks) OnRequest(_ context.Context, method, route string, status int, d time.Duration) {
	h.Logger.Debug("request", "method", method, "route", route, "status", status, "duration", d)
}

var (
	_ EngineHooks = (*LogHooks)(nil)
	_ StoreHooks  = (*LogHooks)(nil)
	_ APIHooks    = (*LogHooks)(nil)
)

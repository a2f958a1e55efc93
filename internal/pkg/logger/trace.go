package logger

import (
	"context"
	log "log/slog"
)

// TraceIDKey 定义 Context 中的 Key。
// HTTP 请求由中间件注入，采集轮由 ScrapeJob 以 "job-scrape-" 前缀注入。
const TraceIDKey = "trace_id"

// ContextHandler 包装器，把 ctx 中的 trace_id 附到每条日志上，
// 让一轮采集里所有账号的日志可以按轮次聚合
type ContextHandler struct {
	log.Handler
}

func (h *ContextHandler) Handle(ctx context.Context, r log.Record) error {
	if ctx != nil {
		if traceID, ok := ctx.Value(TraceIDKey).(string); ok {
			r.AddAttrs(log.String("trace_id", traceID))
		}
	}
	return h.Handler.Handle(ctx, r)
}

package api

import "Pulse/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	WatchlistHandler *handler.WatchlistHandler
	DashboardHandler *handler.DashboardHandler
	ScrapeHandler    *handler.ScrapeHandler
}

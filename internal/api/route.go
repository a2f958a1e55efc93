package api

import (
	"Pulse/internal/api/middleware"
	"Pulse/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		watchlistGroup := apiGroup.Group("/watchlist")
		{
			watchlistGroup.GET("", group.WatchlistHandler.List)
			watchlistGroup.POST("", group.WatchlistHandler.Add)
			watchlistGroup.DELETE("", group.WatchlistHandler.Remove)
		}

		dashboardGroup := apiGroup.Group("/dashboard")
		{
			dashboardGroup.GET("/overview", group.DashboardHandler.GetOverview)
			dashboardGroup.GET("/profile/:profile_id", group.DashboardHandler.GetProfileDetail)
			dashboardGroup.GET("/post/:post_id/trend", group.DashboardHandler.GetPostTrend)
			dashboardGroup.GET("/top", group.DashboardHandler.ListTopPosts)
			dashboardGroup.GET("/platforms", group.DashboardHandler.ListPlatformRollup)
			dashboardGroup.GET("/viral", group.DashboardHandler.ListViral)
			dashboardGroup.GET("/alerts", group.DashboardHandler.ListAlerts)
		}

		scrapeGroup := apiGroup.Group("/scrape")
		{
			scrapeGroup.POST("/run", group.ScrapeHandler.RunNow)
		}
	}

	return r
}

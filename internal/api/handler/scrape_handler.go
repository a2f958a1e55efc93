package handler

import (
	"Pulse/internal/ingest"
	"Pulse/internal/job"
	"Pulse/internal/pkg/response"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
)

type ScrapeHandler struct {
	scrapeJob *job.ScrapeJob
}

func NewScrapeHandler(scrapeJob *job.ScrapeJob) *ScrapeHandler {
	return &ScrapeHandler{scrapeJob: scrapeJob}
}

// RunNow 手动触发一轮采集，与定时触发共用全局锁。
// 采集在后台执行，接口立即返回已受理。
func (s *ScrapeHandler) RunNow(c *gin.Context) {
	if ingest.IsCycleRunning(c.Request.Context()) {
		response.Error(c, service.ErrCycleRunning)
		return
	}

	go s.scrapeJob.Run()
	response.Success(c, map[string]string{"status": "accepted"})
}

package cron

import (
	"Pulse/internal/api/config"
	"Pulse/internal/job"
	"fmt"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine    *cron.Cron
	scrapeJob *job.ScrapeJob
}

func NewCronManager(scrapeJob *job.ScrapeJob) *Manager {
	return &Manager{
		engine:    cron.New(),
		scrapeJob: scrapeJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	interval := config.Cfg.Scraper.IntervalHours
	if interval <= 0 {
		interval = 6
	}
	if _, err := s.engine.AddJob(fmt.Sprintf("@every %dh", interval), s.scrapeJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron 定时任务引擎启动")
	s.engine.Start()

	// 启动即跑一轮，不等首个间隔
	go s.scrapeJob.Run()
}

func (s *Manager) Stop() {
	log.Info("Cron 定时任务引擎停止")
	s.engine.Stop()
}

package job

import (
	"Pulse/internal/ingest"
	"Pulse/internal/model"
	"Pulse/internal/notifier"
	"Pulse/internal/pkg/logger"
	"Pulse/internal/service"
	"context"
	"errors"
	log "log/slog"

	"github.com/google/uuid"
)

// ScrapeJob 周期性采集任务，进程启动时先跑一轮，之后按配置间隔触发
type ScrapeJob struct {
	orchestrator *ingest.Orchestrator
	alerts       service.AlertService
}

func NewScrapeJob(orchestrator *ingest.Orchestrator, alerts service.AlertService) *ScrapeJob {
	return &ScrapeJob{
		orchestrator: orchestrator,
		alerts:       alerts,
	}
}

func (s *ScrapeJob) Run() {
	traceID := "job-scrape-" + uuid.NewString()
	ctx := context.WithValue(context.Background(), logger.TraceIDKey, traceID)

	report, err := s.orchestrator.Run(ctx)
	if err != nil {
		if errors.Is(err, service.ErrCycleRunning) {
			log.WarnContext(ctx, "previous scrape cycle still running, skipped")
			return
		}
		log.ErrorContext(ctx, "scrape cycle failed", "err", err)
		if notifyErr := s.alerts.Notify(ctx, model.AlertTypeCycleFail, notifier.BuildCycleFailureMessage(err)); notifyErr != nil {
			log.ErrorContext(ctx, "cycle failure alert failed", "err", notifyErr)
		}
		return
	}

	text := notifier.BuildCycleSummaryMessage(
		report.StartedAt,
		int(report.ProfilesOK),
		int(report.ProfilesFailed),
		int(report.NewPosts),
		int(report.ViralDetected),
	)
	if err := s.alerts.Notify(ctx, model.AlertTypeCycleSummary, text); err != nil {
		log.WarnContext(ctx, "cycle summary alert failed", "err", err)
	}
}

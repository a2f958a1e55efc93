package wire

import (
	"Pulse/internal/api"
	"Pulse/internal/api/config"
	"Pulse/internal/api/handler"
	"Pulse/internal/ingest"
	"Pulse/internal/job"
	"Pulse/internal/notifier"
	"Pulse/internal/pkg/cron"
	"Pulse/internal/repository"
	"Pulse/internal/scraper"
	"Pulse/internal/service"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, cfg *config.Config) (*ApplicationContainer, error) {
	profileRepo := repository.NewProfileRepo(db)
	postRepo := repository.NewPostRepo(db)
	alertLogRepo := repository.NewAlertLogRepo(db)
	dashboardRepo := repository.NewDashboardRepo(db)

	scrapers := scraper.NewRegistry(
		scraper.NewTikTokScraper(cfg.TikTok),
		scraper.NewTwitterScraper(),
		scraper.NewRedditScraper(),
	)

	transport := notifier.NewTelegramTransport(cfg.Telegram)
	locker := service.NewRedisLocker()

	baselineService := service.NewBaselineService(profileRepo, postRepo, &cfg.Scraper)
	classifierService := service.NewClassifierService(postRepo, &cfg.Scraper)
	alertService := service.NewAlertService(postRepo, alertLogRepo, transport, locker, &cfg.Scraper)
	watchlistService := service.NewWatchlistService(profileRepo, scrapers, alertService)
	dashboardService := service.NewDashboardService(dashboardRepo, profileRepo, postRepo, alertLogRepo)

	orchestrator := ingest.NewOrchestrator(
		profileRepo,
		postRepo,
		baselineService,
		classifierService,
		alertService,
		scrapers,
		locker,
		&cfg.Scraper,
	)
	scrapeJob := job.NewScrapeJob(orchestrator, alertService)

	handlers := &api.HandlersGroup{
		WatchlistHandler: handler.NewWatchlistHandler(watchlistService),
		DashboardHandler: handler.NewDashboardHandler(dashboardService),
		ScrapeHandler:    handler.NewScrapeHandler(scrapeJob),
	}

	router := api.SetupRouter(handlers)
	cronMgr := cron.NewCronManager(scrapeJob)

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}

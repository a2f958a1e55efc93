package ingest

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/repository"
	"Pulse/internal/scraper"
	"Pulse/internal/service"
	"Pulse/internal/snapshot"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Orchestrator 驱动一轮完整采集：逐账号抓取、落快照、判定爆款、
// 投递告警、重算基线。账号之间并发，单账号内部串行。
type Orchestrator struct {
	profileRepo repository.ProfileRepo
	postRepo    repository.PostRepo
	baseline    service.BaselineService
	classifier  service.ClassifierService
	alerts      service.AlertService
	scrapers    scraper.Registry
	locker      service.Locker
	cfg         *config.ScraperConfig
}

func NewOrchestrator(
	profileRepo repository.ProfileRepo,
	postRepo repository.PostRepo,
	baseline service.BaselineService,
	classifier service.ClassifierService,
	alerts service.AlertService,
	scrapers scraper.Registry,
	locker service.Locker,
	cfg *config.ScraperConfig,
) *Orchestrator {
	return &Orchestrator{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		baseline:    baseline,
		classifier:  classifier,
		alerts:      alerts,
		scrapers:    scrapers,
		locker:      locker,
		cfg:         cfg,
	}
}

// Run 执行一轮采集。整轮持全局锁，定时触发与手动触发互斥；
// 锁被占用时直接返回 ErrCycleRunning。单账号失败只计数不中断。
func (s *Orchestrator) Run(ctx context.Context) (*CycleReport, error) {
	lockVal := uuid.NewString()
	lockTTL := time.Duration(s.cfg.IntervalHours) * time.Hour
	locked, err := s.locker.TryLock(ctx, consts.CycleLock, lockVal, lockTTL, 1)
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, service.ErrCycleRunning
	}
	defer s.locker.UnLock(ctx, consts.CycleLock, lockVal)

	profiles, err := s.profileRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	log.InfoContext(ctx, "scrape cycle started", "profile_count", len(profiles))
	c := newCycle()

	workers := s.cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, profile := range profiles {
		profile := profile
		g.Go(func() error {
			s.processProfile(gctx, c, profile)
			return nil
		})
	}
	_ = g.Wait()

	report := c.report()
	s.cacheReport(ctx, report)

	log.InfoContext(ctx, "scrape cycle finished",
		"duration", report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond),
		"profiles_ok", report.ProfilesOK,
		"profiles_failed", report.ProfilesFailed,
		"new_posts", report.NewPosts,
		"viral_detected", report.ViralDetected,
		"alerts_sent", report.AlertsSent,
	)
	return report, nil
}

func (s *Orchestrator) processProfile(ctx context.Context, c *cycle, profile *model.Profile) {
	lockKey := consts.ProfileLock + strconv.FormatUint(profile.ID, 10)
	lockVal := uuid.NewString()
	locked, err := s.locker.TryLock(ctx, lockKey, lockVal, 10*time.Minute, 1)
	if err != nil || !locked {
		c.profilesFailed.Add(1)
		log.WarnContext(ctx, "profile locked by another worker, skipped",
			"profile_id", profile.ID, "username", profile.Username)
		return
	}
	defer s.locker.UnLock(ctx, lockKey, lockVal)

	sc, ok := s.scrapers.Get(profile.Platform)
	if !ok {
		c.profilesFailed.Add(1)
		log.ErrorContext(ctx, "no scraper for platform",
			"platform", profile.Platform, "username", profile.Username)
		return
	}

	now := time.Now()
	rawProfile, err := sc.FetchProfile(ctx, profile.Username)
	if err != nil {
		c.profilesFailed.Add(1)
		log.ErrorContext(ctx, "fetch profile failed",
			"platform", profile.Platform, "username", profile.Username, "err", err)
		return
	}

	profSnap, err := snapshot.NormalizeProfile(rawProfile)
	if err != nil {
		c.profilesFailed.Add(1)
		log.ErrorContext(ctx, "normalize profile failed",
			"username", profile.Username, "err", err)
		return
	}

	updated, err := s.profileRepo.ApplySnapshot(ctx, profile.ID, profSnap, now)
	if err != nil {
		c.profilesFailed.Add(1)
		log.ErrorContext(ctx, "apply profile snapshot failed",
			"username", profile.Username, "err", err)
		return
	}

	// 判定基线取本轮开始前的均值，新增内容不会立刻抬高自己的门槛
	baseline := updated.AverageViews

	// 上一轮投递失败、标记仍未置位的爆款，先补投
	s.retryPending(ctx, c, updated)

	rawPosts, err := sc.FetchPosts(ctx, updated, s.cfg.MaxPosts)
	if err != nil {
		c.profilesFailed.Add(1)
		log.ErrorContext(ctx, "fetch posts failed",
			"username", updated.Username, "err", err)
		return
	}

	for _, rawPost := range rawPosts {
		postSnap, err := snapshot.NormalizePost(rawPost)
		if err != nil {
			log.WarnContext(ctx, "malformed post dropped",
				"username", updated.Username, "err", err)
			continue
		}

		post, created, err := s.postRepo.ApplySnapshot(ctx, updated.ID, postSnap, now)
		if err != nil {
			log.ErrorContext(ctx, "apply post snapshot failed",
				"username", updated.Username, "post_id", postSnap.PostID, "err", err)
			continue
		}
		c.snapshots.Add(1)
		if created {
			c.newPosts.Add(1)
		}

		turnedViral, err := s.classifier.Classify(ctx, post, baseline)
		if err != nil {
			log.ErrorContext(ctx, "classify post failed",
				"post_id", post.ID, "err", err)
			continue
		}
		if turnedViral {
			c.viralDetected.Add(1)
		}

		if post.IsViral && !post.ViralAlertSent {
			s.dispatch(ctx, c, updated, post)
		}
	}

	if _, err := s.baseline.Recompute(ctx, updated); err != nil {
		log.ErrorContext(ctx, "recompute baseline failed",
			"username", updated.Username, "err", err)
	}

	c.profilesOK.Add(1)
}

func (s *Orchestrator) retryPending(ctx context.Context, c *cycle, profile *model.Profile) {
	pending, err := s.postRepo.ListUnsentViral(ctx, profile.ID)
	if err != nil {
		log.ErrorContext(ctx, "list pending viral alerts failed",
			"profile_id", profile.ID, "err", err)
		return
	}
	for _, post := range pending {
		s.dispatch(ctx, c, profile, post)
	}
}

func (s *Orchestrator) dispatch(ctx context.Context, c *cycle, profile *model.Profile, post *model.Post) {
	sent, err := s.alerts.DispatchViral(ctx, profile, post)
	if err != nil {
		c.alertsFailed.Add(1)
		return
	}
	if sent {
		c.alertsSent.Add(1)
	}
}

func (s *Orchestrator) cacheReport(ctx context.Context, report *CycleReport) {
	if redis.GetRdbClient() == nil {
		return
	}
	payload, err := json.Marshal(report)
	if err != nil {
		return
	}
	_ = redis.SetWithExpiration(ctx, consts.CycleLastRunKey, report.FinishedAt.Format(time.RFC3339), 0)
	_ = redis.SetWithExpiration(ctx, consts.CycleLastResultKey, string(payload), 0)
	// 本轮写入了新数据，作废看板总览缓存
	_ = redis.DeleteKey(ctx, consts.DashboardStatsKey)
}

// IsCycleRunning 判断是否存在进行中的采集轮
func IsCycleRunning(ctx context.Context) bool {
	if redis.GetRdbClient() == nil {
		return false
	}
	val, err := redis.GetValue(ctx, consts.CycleLock)
	return err == nil && val != ""
}

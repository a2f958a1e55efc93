package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"Pulse/internal/notifier"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Locker 分布式锁抽象，生产环境为 Redis 实现
type Locker interface {
	TryLock(ctx context.Context, key, value string, expiration time.Duration, retryTimes int) (bool, error)
	UnLock(ctx context.Context, key, value string)
}

type redisLocker struct{}

func NewRedisLocker() Locker {
	return &redisLocker{}
}

func (s *redisLocker) TryLock(ctx context.Context, key, value string, expiration time.Duration, retryTimes int) (bool, error) {
	return redis.TryLock(ctx, key, value, expiration, retryTimes)
}

func (s *redisLocker) UnLock(ctx context.Context, key, value string) {
	redis.UnLock(ctx, key, value)
}

type AlertService interface {
	DispatchViral(ctx context.Context, profile *model.Profile, post *model.Post) (bool, error)
	SendWelcome(ctx context.Context, profile *model.Profile) error
	Notify(ctx context.Context, alertType, text string) error
}

type alertServiceImpl struct {
	postRepo     repository.PostRepo
	alertLogRepo repository.AlertLogRepo
	transport    notifier.Transport
	locker       Locker
	cfg          *config.ScraperConfig
}

func NewAlertService(
	postRepo repository.PostRepo,
	alertLogRepo repository.AlertLogRepo,
	transport notifier.Transport,
	locker Locker,
	cfg *config.ScraperConfig,
) AlertService {
	return &alertServiceImpl{
		postRepo:     postRepo,
		alertLogRepo: alertLogRepo,
		transport:    transport,
		locker:       locker,
		cfg:          cfg,
	}
}

// DispatchViral 投递爆款告警，保证同一帖子至多送达一次：
// 帖子级锁排掉并发投递，投递成功后以 CAS 置位 viral_alert_sent，
// 抢到置位的一方才写 success 审计记录。投递失败不置位，下轮重试。
func (s *alertServiceImpl) DispatchViral(ctx context.Context, profile *model.Profile, post *model.Post) (bool, error) {
	lockKey := consts.ViralAlertLock + strconv.FormatUint(post.ID, 10)
	lockVal := uuid.NewString()
	locked, err := s.locker.TryLock(ctx, lockKey, lockVal, time.Minute, 3)
	if err != nil {
		return false, err
	}
	if !locked {
		return false, nil
	}
	defer s.locker.UnLock(ctx, lockKey, lockVal)

	// 锁内重读投递状态，另一个持锁者可能已经送达
	current, err := s.postRepo.GetByID(ctx, post.ID)
	if err != nil {
		return false, err
	}
	if current == nil || current.ViralAlertSent {
		return false, nil
	}

	text := notifier.BuildViralMessage(profile, current, profile.AverageViews, s.cfg.ViralThreshold)
	sentAt := time.Now()

	if err := s.transport.Send(ctx, text); err != nil {
		s.audit(ctx, &current.ID, &profile.ID, current.Platform, model.AlertTypeViral, text, sentAt, err)
		log.ErrorContext(ctx, "viral alert delivery failed",
			"post_id", current.ID, "username", profile.Username, "err", err)
		return false, err
	}

	won, err := s.postRepo.MarkAlertSent(ctx, current.ID)
	if err != nil {
		return false, err
	}
	if !won {
		return false, nil
	}

	s.audit(ctx, &current.ID, &profile.ID, current.Platform, model.AlertTypeViral, text, sentAt, nil)
	if redis.GetRdbClient() != nil {
		_ = redis.ZAdd(ctx, consts.ViralRecentKey, float64(sentAt.Unix()), strconv.FormatUint(current.ID, 10))
		_ = redis.ZRemRangeByRank(ctx, consts.ViralRecentKey, 0, -101)
	}

	log.InfoContext(ctx, "viral alert sent",
		"post_id", current.ID, "username", profile.Username, "views", current.ViewCount)
	return true, nil
}

func (s *alertServiceImpl) SendWelcome(ctx context.Context, profile *model.Profile) error {
	text := notifier.BuildWelcomeMessage(profile)
	sentAt := time.Now()
	err := s.transport.Send(ctx, text)
	s.audit(ctx, nil, &profile.ID, profile.Platform, model.AlertTypeWelcome, text, sentAt, err)
	return err
}

// Notify 发送不绑定具体帖子的运维类通知
func (s *alertServiceImpl) Notify(ctx context.Context, alertType, text string) error {
	sentAt := time.Now()
	err := s.transport.Send(ctx, text)
	s.audit(ctx, nil, nil, "", alertType, text, sentAt, err)
	return err
}

func (s *alertServiceImpl) audit(ctx context.Context, postID, profileID *uint64, platform, alertType, message string, sentAt time.Time, sendErr error) {
	entry := &model.AlertLog{
		PostID:    postID,
		ProfileID: profileID,
		Platform:  platform,
		AlertType: alertType,
		Message:   message,
		SentAt:    sentAt,
		Success:   sendErr == nil,
	}
	if sendErr != nil {
		msg := sendErr.Error()
		entry.ErrorMessage = &msg
	}
	if err := s.alertLogRepo.Create(ctx, entry); err != nil {
		log.ErrorContext(ctx, "write alert log failed", "err", err)
	}
}

package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"Pulse/internal/repository"
	"context"
	"time"
)

type BaselineService interface {
	Recompute(ctx context.Context, profile *model.Profile) (float64, error)
}

type baselineServiceImpl struct {
	profileRepo repository.ProfileRepo
	postRepo    repository.PostRepo
	cfg         *config.ScraperConfig
}

func NewBaselineService(profileRepo repository.ProfileRepo, postRepo repository.PostRepo, cfg *config.ScraperConfig) BaselineService {
	return &baselineServiceImpl{
		profileRepo: profileRepo,
		postRepo:    postRepo,
		cfg:         cfg,
	}
}

// Recompute 重新计算账号的滚动播放量基线并落库。
// 样本为回看窗口内、已满最小年龄、播放量大于 0 的内容；
// 样本为空时基线归零，后续轮次不会据此判定爆款。
func (s *baselineServiceImpl) Recompute(ctx context.Context, profile *model.Profile) (float64, error) {
	now := time.Now()
	since := now.AddDate(0, 0, -s.cfg.LookbackDays)
	cutoff := now.Add(-time.Duration(s.cfg.MinPostAgeHours) * time.Hour)

	posts, err := s.postRepo.ListRecent(ctx, profile.ID, since)
	if err != nil {
		return 0, err
	}

	avg := BaselineMean(posts, cutoff)
	if err := s.profileRepo.UpdateAverageViews(ctx, profile.ID, avg); err != nil {
		return 0, err
	}
	profile.AverageViews = avg
	return avg, nil
}

// BaselineMean 计算基线均值：只纳入播放量大于 0 且发布时间早于 cutoff
// 的内容，无合格样本时返回 0
func BaselineMean(posts []*model.Post, cutoff time.Time) float64 {
	var sum int64
	var count int
	for _, post := range posts {
		if post.ViewCount <= 0 {
			continue
		}
		if post.PostedAt == nil || post.PostedAt.After(cutoff) {
			continue
		}
		sum += post.ViewCount
		count++
	}
	if count == 0 {
		return 0
	}
	return float64(sum) / float64(count)
}

package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"Pulse/internal/repository"
	"context"
	log "log/slog"
)

type ClassifierService interface {
	Classify(ctx context.Context, post *model.Post, baseline float64) (bool, error)
}

type classifierServiceImpl struct {
	postRepo repository.PostRepo
	cfg      *config.ScraperConfig
}

func NewClassifierService(postRepo repository.PostRepo, cfg *config.ScraperConfig) ClassifierService {
	return &classifierServiceImpl{
		postRepo: postRepo,
		cfg:      cfg,
	}
}

// Classify 按本轮开始前的账号基线判定内容是否爆款。
// is_viral 一旦置位永不回退；基线未建立（<=0）时一律不判定，
// 避免新账号首轮全量误报。返回值表示本次是否发生了置位。
func (s *classifierServiceImpl) Classify(ctx context.Context, post *model.Post, baseline float64) (bool, error) {
	if post.IsViral {
		return false, nil
	}
	if !ExceedsBaseline(post.ViewCount, baseline, s.cfg.ViralThreshold) {
		return false, nil
	}

	if err := s.postRepo.MarkViral(ctx, post.ID); err != nil {
		return false, err
	}
	post.IsViral = true

	log.InfoContext(ctx, "viral post detected",
		"post_id", post.ID,
		"platform", post.Platform,
		"views", post.ViewCount,
		"baseline", baseline,
	)
	return true, nil
}

// ExceedsBaseline 爆款判定：播放量严格大于 基线 × 阈值，且基线已建立
func ExceedsBaseline(views int64, baseline, threshold float64) bool {
	if baseline <= 0 {
		return false
	}
	return float64(views) > baseline*threshold
}

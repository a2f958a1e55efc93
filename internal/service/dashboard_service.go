package service

import (
	"Pulse/internal/model"
	"Pulse/internal/pkg/consts"
	"Pulse/internal/pkg/redis"
	"Pulse/internal/pkg/util"
	"Pulse/internal/repository"
	"context"
	"time"

	"github.com/goccy/go-json"
)

// ProfileDetail 账号详情视图：当前指标、近期内容与指标曲线
type ProfileDetail struct {
	Profile *model.Profile          `json:"profile"`
	Posts   []*model.Post           `json:"posts"`
	History []*model.ProfileHistory `json:"history"`
}

// PostTrend 单条内容的指标曲线
type PostTrend struct {
	Post    *model.Post          `json:"post"`
	History []*model.PostHistory `json:"history"`
}

// DashboardOverview 看板总览
type DashboardOverview struct {
	Stats   *repository.DashboardStats `json:"stats"`
	LastRun string                     `json:"last_cycle_run,omitempty"`
}

// TopPost 热门内容条目，带相对账号基线的表现倍数
type TopPost struct {
	Post             *model.Post `json:"post"`
	Username         string      `json:"username"`
	Baseline         float64     `json:"baseline"`
	PerformanceRatio float64     `json:"performance_ratio"`
}

type DashboardService interface {
	GetOverview(ctx context.Context) (*DashboardOverview, error)
	GetProfileDetail(ctx context.Context, profileID uint64, days int) (*ProfileDetail, error)
	GetPostTrend(ctx context.Context, postID uint64, days int) (*PostTrend, error)
	ListTopPosts(ctx context.Context, days, limit int) ([]*TopPost, error)
	ListPlatformRollup(ctx context.Context, days int) ([]*repository.PlatformRollup, error)
	ListViral(ctx context.Context, limit int) ([]*model.Post, error)
	ListAlerts(ctx context.Context, alertType string, limit int) ([]*model.AlertLog, error)
}

type dashboardServiceImpl struct {
	dashboardRepo repository.DashboardRepo
	profileRepo   repository.ProfileRepo
	postRepo      repository.PostRepo
	alertLogRepo  repository.AlertLogRepo
}

func NewDashboardService(
	dashboardRepo repository.DashboardRepo,
	profileRepo repository.ProfileRepo,
	postRepo repository.PostRepo,
	alertLogRepo repository.AlertLogRepo,
) DashboardService {
	return &dashboardServiceImpl{
		dashboardRepo: dashboardRepo,
		profileRepo:   profileRepo,
		postRepo:      postRepo,
		alertLogRepo:  alertLogRepo,
	}
}

// GetOverview 看板总览，聚合计数走 60s Redis 缓存
func (s *dashboardServiceImpl) GetOverview(ctx context.Context) (*DashboardOverview, error) {
	useCache := redis.GetRdbClient() != nil

	if useCache {
		if cached, err := redis.GetValue(ctx, consts.DashboardStatsKey); err == nil && cached != "" {
			var overview DashboardOverview
			if err := json.Unmarshal([]byte(cached), &overview); err == nil {
				return &overview, nil
			}
		}
	}

	stats, err := s.dashboardRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	overview := &DashboardOverview{Stats: stats}
	if useCache {
		overview.LastRun, _ = redis.GetValue(ctx, consts.CycleLastRunKey)
		if payload, err := json.Marshal(overview); err == nil {
			_ = redis.SetWithExpiration(ctx, consts.DashboardStatsKey, string(payload), time.Minute)
		}
	}
	return overview, nil
}

func (s *dashboardServiceImpl) GetProfileDetail(ctx context.Context, profileID uint64, days int) (*ProfileDetail, error) {
	profile, err := s.profileRepo.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}

	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	posts, err := s.postRepo.ListByProfile(ctx, profileID, 20)
	if err != nil {
		return nil, err
	}
	history, err := s.profileRepo.GetHistory(ctx, profileID, since)
	if err != nil {
		return nil, err
	}

	return &ProfileDetail{
		Profile: profile,
		Posts:   posts,
		History: history,
	}, nil
}

func (s *dashboardServiceImpl) GetPostTrend(ctx context.Context, postID uint64, days int) (*PostTrend, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	history, err := s.postRepo.GetHistory(ctx, postID, since)
	if err != nil {
		return nil, err
	}
	return &PostTrend{Post: post, History: history}, nil
}

// ListTopPosts 滚动窗口内按播放量排序的内容，倍数按所属账号基线计算
func (s *dashboardServiceImpl) ListTopPosts(ctx context.Context, days, limit int) ([]*TopPost, error) {
	if days <= 0 {
		days = 30
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	since := time.Now().AddDate(0, 0, -days)

	posts, err := s.postRepo.ListTop(ctx, since, limit)
	if err != nil {
		return nil, err
	}

	profiles := make(map[uint64]*model.Profile)
	out := make([]*TopPost, 0, len(posts))
	for _, post := range posts {
		profile, ok := profiles[post.ProfileID]
		if !ok {
			profile, err = s.profileRepo.GetByID(ctx, post.ProfileID)
			if err != nil {
				return nil, err
			}
			profiles[post.ProfileID] = profile
		}

		entry := &TopPost{Post: post}
		if profile != nil {
			entry.Username = profile.Username
			entry.Baseline = profile.AverageViews
			if profile.AverageViews > 0 {
				entry.PerformanceRatio = float64(post.ViewCount) / profile.AverageViews
			}
		}
		out = append(out, entry)
	}
	return out, nil
}

func (s *dashboardServiceImpl) ListPlatformRollup(ctx context.Context, days int) ([]*repository.PlatformRollup, error) {
	if days <= 0 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)
	return s.dashboardRepo.GetPlatformRollup(ctx, since)
}

// ListViral 最近告警过的爆款优先走 viral:recent 有序集合（按送达时间倒序），
// Redis 不可用或集合为空时退回数据库按播放量排序
func (s *dashboardServiceImpl) ListViral(ctx context.Context, limit int) ([]*model.Post, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if redis.GetRdbClient() != nil {
		if posts, ok := s.viralFromRecentSet(ctx, limit); ok {
			return posts, nil
		}
	}
	return s.postRepo.ListViral(ctx, limit)
}

func (s *dashboardServiceImpl) viralFromRecentSet(ctx context.Context, limit int) ([]*model.Post, bool) {
	members, err := redis.ZRevRange(ctx, consts.ViralRecentKey, 0, int64(limit-1))
	if err != nil || len(members) == 0 {
		return nil, false
	}
	ids, err := util.StrSliceToUInt64Slice(members)
	if err != nil {
		return nil, false
	}

	posts := make([]*model.Post, 0, len(ids))
	for _, id := range ids {
		post, err := s.postRepo.GetByID(ctx, id)
		if err != nil {
			return nil, false
		}
		if post != nil {
			posts = append(posts, post)
		}
	}
	return posts, true
}

func (s *dashboardServiceImpl) ListAlerts(ctx context.Context, alertType string, limit int) ([]*model.AlertLog, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.alertLogRepo.ListRecent(ctx, alertType, limit)
}

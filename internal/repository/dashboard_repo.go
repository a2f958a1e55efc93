package repository

import (
	"Pulse/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

// DashboardStats 看板聚合统计
type DashboardStats struct {
	ProfileCount     int64 `json:"profile_count"`
	ActiveProfiles   int64 `json:"active_profiles"`
	PostCount        int64 `json:"post_count"`
	ViralPostCount   int64 `json:"viral_post_count"`
	AlertsSent       int64 `json:"alerts_sent"`
	AlertsFailed     int64 `json:"alerts_failed"`
	PostsLast24h     int64 `json:"posts_last_24h"`
	SnapshotsLast24  int64 `json:"snapshots_last_24h"`
	FollowerGrowth24 int64 `json:"follower_growth_24h"`
}

// PlatformRollup 单平台的滚动窗口汇总
type PlatformRollup struct {
	Platform       string `json:"platform"`
	ProfileCount   int64  `json:"profile_count"`
	TotalFollowers int64  `json:"total_followers"`
	PostCount      int64  `json:"post_count"`
	TotalViews     int64  `json:"total_views"`
	ViralCount     int64  `json:"viral_count"`
}

type DashboardRepo interface {
	GetStats(ctx context.Context) (*DashboardStats, error)
	GetPlatformRollup(ctx context.Context, since time.Time) ([]*PlatformRollup, error)
}

type dashboardRepoImpl struct {
	db *gorm.DB
}

func NewDashboardRepo(db *gorm.DB) DashboardRepo {
	return &dashboardRepoImpl{db: db}
}

func (s *dashboardRepoImpl) GetStats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	db := s.db.WithContext(ctx)
	dayAgo := time.Now().Add(-24 * time.Hour)

	if err := db.Model(&model.Profile{}).Count(&stats.ProfileCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Profile{}).Where("is_active = ?", true).Count(&stats.ActiveProfiles).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Post{}).Count(&stats.PostCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Post{}).Where("is_viral = ?", true).Count(&stats.ViralPostCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.AlertLog{}).Where("success = ?", true).Count(&stats.AlertsSent).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.AlertLog{}).Where("success = ?", false).Count(&stats.AlertsFailed).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.Post{}).Where("created_at >= ?", dayAgo).Count(&stats.PostsLast24h).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&model.PostHistory{}).Where("recorded_at >= ?", dayAgo).Count(&stats.SnapshotsLast24).Error; err != nil {
		return nil, err
	}
	err := db.Model(&model.ProfileHistory{}).
		Select("COALESCE(SUM(follower_change), 0)").
		Where("recorded_at >= ?", dayAgo).
		Scan(&stats.FollowerGrowth24).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}

func (s *dashboardRepoImpl) GetPlatformRollup(ctx context.Context, since time.Time) ([]*PlatformRollup, error) {
	db := s.db.WithContext(ctx)
	byPlatform := make(map[string]*PlatformRollup)
	rollup := func(platform string) *PlatformRollup {
		if r, ok := byPlatform[platform]; ok {
			return r
		}
		r := &PlatformRollup{Platform: platform}
		byPlatform[platform] = r
		return r
	}

	var profileRows []struct {
		Platform       string
		ProfileCount   int64
		TotalFollowers int64
	}
	err := db.Model(&model.Profile{}).
		Select("platform, COUNT(*) AS profile_count, COALESCE(SUM(follower_count), 0) AS total_followers").
		Where("is_active = ?", true).
		Group("platform").
		Scan(&profileRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range profileRows {
		r := rollup(row.Platform)
		r.ProfileCount = row.ProfileCount
		r.TotalFollowers = row.TotalFollowers
	}

	var postRows []struct {
		Platform   string
		PostCount  int64
		TotalViews int64
		ViralCount int64
	}
	err = db.Model(&model.Post{}).
		Select("platform, COUNT(*) AS post_count, COALESCE(SUM(view_count), 0) AS total_views, SUM(CASE WHEN is_viral THEN 1 ELSE 0 END) AS viral_count").
		Where("posted_at >= ?", since).
		Group("platform").
		Scan(&postRows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range postRows {
		r := rollup(row.Platform)
		r.PostCount = row.PostCount
		r.TotalViews = row.TotalViews
		r.ViralCount = row.ViralCount
	}

	out := make([]*PlatformRollup, 0, len(byPlatform))
	for _, platform := range []string{model.PlatformTikTok, model.PlatformTwitter, model.PlatformReddit} {
		if r, ok := byPlatform[platform]; ok {
			out = append(out, r)
		}
	}
	return out, nil
}

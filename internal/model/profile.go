package model

import (
	"time"
)

// Profile 监控列表中的账号，latest 指标随每轮抓取更新
type Profile struct {
	ID             uint64  `gorm:"primaryKey"`
	Platform       string  `gorm:"type:varchar(32);not null;default:'tiktok';uniqueIndex:idx_platform_username,priority:1;index" json:"platform"`
	PlatformUserID *string `gorm:"type:varchar(255)" json:"platform_user_id"` // 平台内部 ID（TikTok secUid）
	Username       string  `gorm:"type:varchar(64);not null;uniqueIndex:idx_platform_username,priority:2" json:"username"`

	DisplayName string `gorm:"type:varchar(128)" json:"display_name"`
	Bio         string `gorm:"type:text" json:"bio"`
	AvatarURL   string `gorm:"type:text" json:"avatar_url"`

	// 通用指标（最新快照）
	FollowerCount  int64 `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int64 `gorm:"not null;default:0" json:"following_count"`
	TotalLikes     int64 `gorm:"not null;default:0" json:"total_likes"`
	VideoCount     int   `gorm:"not null;default:0" json:"video_count"`

	// Reddit 专有字段，其他平台为 NULL
	SubredditName        *string `gorm:"type:varchar(128)" json:"subreddit_name,omitempty"`
	SubredditSubscribers *int64  `json:"subreddit_subscribers,omitempty"`
	ActiveUsers          *int    `json:"active_users,omitempty"`

	// 爆款判定基线（滚动均值）
	AverageViews float64 `gorm:"column:average_post_views;not null;default:0" json:"average_post_views"`

	IsActive      bool       `gorm:"not null;default:1;index" json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
	LastScrapedAt *time.Time `json:"last_scraped_at"`

	Posts   []Post           `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
	History []ProfileHistory `gorm:"foreignKey:ProfileID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Profile) TableName() string {
	return "profiles"
}

// MetricsEqual 判断当前行与一组快照指标是否完全一致，用于重复采集去重
func (p *Profile) MetricsEqual(follower, following, likes int64, videos int) bool {
	return p.FollowerCount == follower &&
		p.FollowingCount == following &&
		p.TotalLikes == likes &&
		p.VideoCount == videos
}

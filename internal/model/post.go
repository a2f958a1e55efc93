package model

import (
	"time"
)

// Post 被追踪账号的单条内容。平台专有指标放在可空扩展列上，
// 未观测到的字段保持 NULL，与「观测到 0」区分开。
type Post struct {
	ID        uint64 `gorm:"primaryKey"`
	ProfileID uint64 `gorm:"not null;index" json:"profile_id"`

	Platform       string `gorm:"type:varchar(32);not null;default:'tiktok';uniqueIndex:idx_platform_post,priority:1;index" json:"platform"`
	PlatformPostID string `gorm:"type:varchar(255);not null;uniqueIndex:idx_platform_post,priority:2" json:"platform_post_id"`

	Description     string `gorm:"type:text" json:"description"`
	MediaURL        string `gorm:"column:video_url;type:text" json:"video_url"`
	ThumbnailURL    string `gorm:"type:text" json:"thumbnail_url"`
	DurationSeconds *int   `json:"duration_seconds,omitempty"`

	// 通用互动指标（每轮抓取刷新）
	ViewCount    int64 `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int64 `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64 `gorm:"not null;default:0" json:"comment_count"`
	ShareCount   int64 `gorm:"not null;default:0" json:"share_count"`

	// Twitter 专有
	RetweetCount    *int64 `json:"retweet_count,omitempty"`
	QuoteCount      *int64 `json:"quote_count,omitempty"`
	BookmarkCount   *int64 `json:"bookmark_count,omitempty"`
	ImpressionCount *int64 `json:"impression_count,omitempty"`

	// Reddit 专有
	UpvoteRatio       *float64 `json:"upvote_ratio,omitempty"`
	RedditScore       *int     `json:"reddit_score,omitempty"`
	IsCrosspost       *bool    `json:"is_crosspost,omitempty"`
	OriginalSubreddit *string  `gorm:"type:varchar(128)" json:"original_subreddit,omitempty"`

	// 爆款检测：is_viral 一旦置位永不清除，viral_alert_sent 保证只告警一次
	IsViral        bool `gorm:"not null;default:0;index" json:"is_viral"`
	ViralAlertSent bool `gorm:"not null;default:0" json:"viral_alert_sent"`

	PostedAt  *time.Time `json:"posted_at"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	History []PostHistory `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}

// MetricsEqual 判断当前行与一组快照指标是否完全一致
func (p *Post) MetricsEqual(views, likes, comments, shares int64) bool {
	return p.ViewCount == views &&
		p.LikeCount == likes &&
		p.CommentCount == comments &&
		p.ShareCount == shares
}

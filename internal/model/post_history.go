package model

import (
	"time"
)

// PostHistory 单条内容的指标时间序列，只追加不修改
type PostHistory struct {
	ID     uint64 `gorm:"primaryKey"`
	PostID uint64 `gorm:"not null;index:idx_post_recorded,priority:1" json:"post_id"`

	ViewCount    int64 `gorm:"not null;default:0" json:"view_count"`
	LikeCount    int64 `gorm:"not null;default:0" json:"like_count"`
	CommentCount int64 `gorm:"not null;default:0" json:"comment_count"`
	ShareCount   int64 `gorm:"not null;default:0" json:"share_count"`

	RetweetCount *int64   `json:"retweet_count,omitempty"`
	QuoteCount   *int64   `json:"quote_count,omitempty"`
	UpvoteRatio  *float64 `json:"upvote_ratio,omitempty"`
	RedditScore  *int     `json:"reddit_score,omitempty"`

	ViewChange int64 `gorm:"not null;default:0" json:"view_change"`
	LikeChange int64 `gorm:"not null;default:0" json:"like_change"`

	RecordedAt time.Time `gorm:"not null;index:idx_post_recorded,priority:2;index" json:"recorded_at"`
}

func (PostHistory) TableName() string {
	return "post_history"
}

package model

import (
	"time"
)

// ProfileHistory 账号指标的时间序列快照，只追加不修改。
// 增量字段相对于同账号上一条记录计算，首条记录为 0。
type ProfileHistory struct {
	ID        uint64 `gorm:"primaryKey"`
	ProfileID uint64 `gorm:"not null;index:idx_profile_recorded,priority:1" json:"profile_id"`

	FollowerCount  int64 `gorm:"not null;default:0" json:"follower_count"`
	FollowingCount int64 `gorm:"not null;default:0" json:"following_count"`
	TotalLikes     int64 `gorm:"not null;default:0" json:"total_likes"`
	VideoCount     int   `gorm:"not null;default:0" json:"video_count"`

	SubredditSubscribers *int64 `json:"subreddit_subscribers,omitempty"`
	ActiveUsers          *int   `json:"active_users,omitempty"`

	FollowerChange int64 `gorm:"not null;default:0" json:"follower_change"`
	LikesChange    int64 `gorm:"not null;default:0" json:"likes_change"`

	RecordedAt time.Time `gorm:"not null;index:idx_profile_recorded,priority:2;index" json:"recorded_at"`
}

func (ProfileHistory) TableName() string {
	return "profile_history"
}

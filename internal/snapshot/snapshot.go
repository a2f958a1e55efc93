package snapshot

import (
	"time"
)

// RawProfile 平台客户端产出的原始账号数据，字段名已按规范 key 对齐，
// 值尚未做类型归一
type RawProfile struct {
	Platform string
	Fields   map[string]any
}

// RawPost 平台客户端产出的原始内容数据
type RawPost struct {
	Platform string
	Fields   map[string]any
}

// ProfileSnapshot 归一化后的账号快照，所有平台共用
type ProfileSnapshot struct {
	Platform    string
	UserID      string // 平台内部 ID，可为空（TikTok secUid）
	Username    string
	DisplayName string
	Bio         string
	AvatarURL   string

	FollowerCount  int64
	FollowingCount int64
	TotalLikes     int64
	VideoCount     int

	// 平台扩展字段，缺失即不存在（不会补 0）
	Extra map[string]any
}

// PostSnapshot 归一化后的内容快照。通用计数用指针表示「未观测」，
// 例如不暴露播放量的平台 ViewCount 为 nil
type PostSnapshot struct {
	Platform        string
	PostID          string
	Description     string
	MediaURL        string
	ThumbnailURL    string
	DurationSeconds *int

	ViewCount    *int64
	LikeCount    *int64
	CommentCount *int64
	ShareCount   *int64

	PostedAt *time.Time

	Extra map[string]any
}

// Views 返回观测到的播放量，未观测按 0 处理（仅用于比较与展示）
func (s *PostSnapshot) Views() int64 {
	if s.ViewCount == nil {
		return 0
	}
	return *s.ViewCount
}

// 扩展字段规范 key
const (
	ExtraRetweetCount         = "retweet_count"
	ExtraQuoteCount           = "quote_count"
	ExtraBookmarkCount        = "bookmark_count"
	ExtraImpressionCount      = "impression_count"
	ExtraUpvoteRatio          = "upvote_ratio"
	ExtraRedditScore          = "reddit_score"
	ExtraIsCrosspost          = "is_crosspost"
	ExtraOriginalSubreddit    = "original_subreddit"
	ExtraSubredditName        = "subreddit_name"
	ExtraSubredditSubscribers = "subreddit_subscribers"
	ExtraActiveUsers          = "active_users"
)

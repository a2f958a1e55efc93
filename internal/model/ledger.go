package model

import (
	"time"

	"Pulse/internal/snapshot"
)

// ApplySnapshot 把一份归一化快照套用到当前行：先基于套用前的值生成
// 增量历史记录，再覆盖当前行。首次观测增量为 0；快照与当前行完全一致
// 时返回 nil（去重，不追加历史），last_scraped_at 始终前移。
// 调用方需持有该行的排它锁以保证「历史追加 + 当前行更新」的原子性。
func (p *Profile) ApplySnapshot(s *snapshot.ProfileSnapshot, at time.Time) *ProfileHistory {
	first := p.LastScrapedAt == nil
	unchanged := !first && p.MetricsEqual(s.FollowerCount, s.FollowingCount, s.TotalLikes, s.VideoCount)

	var hist *ProfileHistory
	if !unchanged {
		hist = &ProfileHistory{
			ProfileID:      p.ID,
			FollowerCount:  s.FollowerCount,
			FollowingCount: s.FollowingCount,
			TotalLikes:     s.TotalLikes,
			VideoCount:     s.VideoCount,
			RecordedAt:     at,
		}
		if !first {
			hist.FollowerChange = s.FollowerCount - p.FollowerCount
			hist.LikesChange = s.TotalLikes - p.TotalLikes
		}
	}

	if s.UserID != "" {
		p.PlatformUserID = &s.UserID
	}
	if s.DisplayName != "" {
		p.DisplayName = s.DisplayName
	}
	if s.Bio != "" {
		p.Bio = s.Bio
	}
	if s.AvatarURL != "" {
		p.AvatarURL = s.AvatarURL
	}
	p.FollowerCount = s.FollowerCount
	p.FollowingCount = s.FollowingCount
	p.TotalLikes = s.TotalLikes
	p.VideoCount = s.VideoCount
	p.applyExtra(s.Extra, hist)
	p.LastScrapedAt = &at

	return hist
}

func (p *Profile) applyExtra(extra map[string]any, hist *ProfileHistory) {
	if v, ok := snapshot.ExtraString(extra, snapshot.ExtraSubredditName); ok {
		p.SubredditName = &v
	}
	if v, ok := snapshot.ExtraInt64(extra, snapshot.ExtraSubredditSubscribers); ok {
		p.SubredditSubscribers = &v
		if hist != nil {
			hist.SubredditSubscribers = &v
		}
	}
	if v, ok := snapshot.ExtraInt64(extra, snapshot.ExtraActiveUsers); ok {
		n := int(v)
		p.ActiveUsers = &n
		if hist != nil {
			hist.ActiveUsers = &n
		}
	}
}

// ApplySnapshot 把内容快照套用到当前行，语义与 Profile.ApplySnapshot 一致。
// 指针型计数为 nil 表示该平台未暴露此指标，保留旧值不回退为 0。
func (p *Post) ApplySnapshot(s *snapshot.PostSnapshot, at time.Time) *PostHistory {
	views := pick(s.ViewCount, p.ViewCount)
	likes := pick(s.LikeCount, p.LikeCount)
	comments := pick(s.CommentCount, p.CommentCount)
	shares := pick(s.ShareCount, p.ShareCount)

	first := p.ID == 0
	unchanged := !first && p.MetricsEqual(views, likes, comments, shares)

	var hist *PostHistory
	if !unchanged {
		hist = &PostHistory{
			PostID:       p.ID,
			ViewCount:    views,
			LikeCount:    likes,
			CommentCount: comments,
			ShareCount:   shares,
			RecordedAt:   at,
		}
		if !first {
			hist.ViewChange = views - p.ViewCount
			hist.LikeChange = likes - p.LikeCount
		}
	}

	if s.Description != "" {
		p.Description = s.Description
	}
	if s.MediaURL != "" {
		p.MediaURL = s.MediaURL
	}
	if s.ThumbnailURL != "" {
		p.ThumbnailURL = s.ThumbnailURL
	}
	if s.DurationSeconds != nil {
		p.DurationSeconds = s.DurationSeconds
	}
	if s.PostedAt != nil {
		p.PostedAt = s.PostedAt
	}
	p.ViewCount = views
	p.LikeCount = likes
	p.CommentCount = comments
	p.ShareCount = shares
	p.applyExtra(s.Extra, hist)

	return hist
}

func (p *Post) applyExtra(extra map[string]any, hist *PostHistory) {
	if v, ok := snapshot.ExtraInt64(extra, snapshot.ExtraRetweetCount); ok {
		p.RetweetCount = &v
		if hist != nil {
			hist.RetweetCount = &v
		}
	}
	if v, ok := snapshot.ExtraInt64(extra, snapshot.ExtraQuoteCount); ok {
		p.QuoteCount = &v
		if hist != nil {
			hist.QuoteCount = &v
		}
	}
	if v, ok := snapshot.ExtraInt64(extra, snapshot.ExtraBookmarkCount); ok {
		p.BookmarkCount = &v
	}
	if v, ok := snapshot.ExtraInt64(extra, snapshot.ExtraImpressionCount); ok {
		p.ImpressionCount = &v
	}
	if v, ok := snapshot.ExtraFloat64(extra, snapshot.ExtraUpvoteRatio); ok {
		p.UpvoteRatio = &v
		if hist != nil {
			hist.UpvoteRatio = &v
		}
	}
	if v, ok := snapshot.ExtraInt64(extra, snapshot.ExtraRedditScore); ok {
		n := int(v)
		p.RedditScore = &n
		if hist != nil {
			hist.RedditScore = &n
		}
	}
	if v, ok := snapshot.ExtraBool(extra, snapshot.ExtraIsCrosspost); ok {
		p.IsCrosspost = &v
	}
	if v, ok := snapshot.ExtraString(extra, snapshot.ExtraOriginalSubreddit); ok {
		p.OriginalSubreddit = &v
	}
}

func pick(v *int64, old int64) int64 {
	if v == nil {
		return old
	}
	return *v
}

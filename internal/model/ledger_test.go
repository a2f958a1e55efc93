package model

import (
	"testing"
	"time"

	"Pulse/internal/snapshot"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int64Ptr(v int64) *int64 { return &v }

func TestProfileApplySnapshot(t *testing.T) {
	now := time.Now()

	t.Run("first observation has zero deltas", func(t *testing.T) {
		p := &Profile{ID: 1, Platform: PlatformTikTok, Username: "alice"}
		hist := p.ApplySnapshot(&snapshot.ProfileSnapshot{
			Platform:      PlatformTikTok,
			Username:      "alice",
			FollowerCount: 1000,
			TotalLikes:    5000,
		}, now)

		require.NotNil(t, hist)
		assert.Equal(t, int64(0), hist.FollowerChange)
		assert.Equal(t, int64(0), hist.LikesChange)
		assert.Equal(t, int64(1000), hist.FollowerCount)
		assert.Equal(t, int64(1000), p.FollowerCount)
		require.NotNil(t, p.LastScrapedAt)
		assert.Equal(t, now, *p.LastScrapedAt)
	})

	t.Run("delta against pre apply values", func(t *testing.T) {
		earlier := now.Add(-6 * time.Hour)
		p := &Profile{ID: 1, FollowerCount: 1000, TotalLikes: 5000, LastScrapedAt: &earlier}
		hist := p.ApplySnapshot(&snapshot.ProfileSnapshot{
			Username:      "alice",
			FollowerCount: 1250,
			TotalLikes:    4900,
		}, now)

		require.NotNil(t, hist)
		assert.Equal(t, int64(250), hist.FollowerChange)
		assert.Equal(t, int64(-100), hist.LikesChange, "指标回落产生负增量")
		assert.Equal(t, int64(1250), p.FollowerCount)
	})

	t.Run("identical metrics append nothing", func(t *testing.T) {
		earlier := now.Add(-6 * time.Hour)
		p := &Profile{ID: 1, FollowerCount: 1000, FollowingCount: 10, TotalLikes: 5000, VideoCount: 3, LastScrapedAt: &earlier}
		hist := p.ApplySnapshot(&snapshot.ProfileSnapshot{
			Username:       "alice",
			FollowerCount:  1000,
			FollowingCount: 10,
			TotalLikes:     5000,
			VideoCount:     3,
		}, now)

		assert.Nil(t, hist)
		require.NotNil(t, p.LastScrapedAt)
		assert.Equal(t, now, *p.LastScrapedAt, "去重时 last_scraped_at 仍需前移")
	})

	t.Run("empty snapshot strings keep existing values", func(t *testing.T) {
		earlier := now.Add(-6 * time.Hour)
		p := &Profile{ID: 1, DisplayName: "Alice", Bio: "hello", LastScrapedAt: &earlier}
		p.ApplySnapshot(&snapshot.ProfileSnapshot{Username: "alice", FollowerCount: 1}, now)

		assert.Equal(t, "Alice", p.DisplayName)
		assert.Equal(t, "hello", p.Bio)
	})

	t.Run("reddit extras land on nullable columns", func(t *testing.T) {
		p := &Profile{ID: 2, Platform: PlatformReddit, Username: "r_golang"}
		hist := p.ApplySnapshot(&snapshot.ProfileSnapshot{
			Platform:      PlatformReddit,
			Username:      "r_golang",
			FollowerCount: 250000,
			Extra: map[string]any{
				snapshot.ExtraSubredditName:        "golang",
				snapshot.ExtraSubredditSubscribers: int64(250000),
				snapshot.ExtraActiveUsers:          1200,
			},
		}, now)

		require.NotNil(t, p.SubredditName)
		assert.Equal(t, "golang", *p.SubredditName)
		require.NotNil(t, p.SubredditSubscribers)
		assert.Equal(t, int64(250000), *p.SubredditSubscribers)
		require.NotNil(t, p.ActiveUsers)
		assert.Equal(t, 1200, *p.ActiveUsers)

		require.NotNil(t, hist)
		require.NotNil(t, hist.SubredditSubscribers)
		assert.Equal(t, int64(250000), *hist.SubredditSubscribers)
	})
}

func TestPostApplySnapshot(t *testing.T) {
	now := time.Now()

	t.Run("first observation", func(t *testing.T) {
		p := &Post{Platform: PlatformTikTok, PlatformPostID: "v-1"}
		hist := p.ApplySnapshot(&snapshot.PostSnapshot{
			Platform:  PlatformTikTok,
			PostID:    "v-1",
			ViewCount: int64Ptr(100),
			LikeCount: int64Ptr(10),
		}, now)

		require.NotNil(t, hist)
		assert.Equal(t, int64(0), hist.ViewChange)
		assert.Equal(t, int64(100), hist.ViewCount)
		assert.Equal(t, int64(100), p.ViewCount)
	})

	t.Run("deltas on growth", func(t *testing.T) {
		p := &Post{ID: 7, ViewCount: 100, LikeCount: 10}
		hist := p.ApplySnapshot(&snapshot.PostSnapshot{
			PostID:    "v-1",
			ViewCount: int64Ptr(600),
			LikeCount: int64Ptr(25),
		}, now)

		require.NotNil(t, hist)
		assert.Equal(t, uint64(7), hist.PostID)
		assert.Equal(t, int64(500), hist.ViewChange)
		assert.Equal(t, int64(15), hist.LikeChange)
	})

	t.Run("nil counters keep previous values", func(t *testing.T) {
		p := &Post{ID: 7, ViewCount: 600, LikeCount: 25, CommentCount: 3, ShareCount: 1}
		hist := p.ApplySnapshot(&snapshot.PostSnapshot{
			PostID:    "v-1",
			LikeCount: int64Ptr(30),
		}, now)

		require.NotNil(t, hist)
		assert.Equal(t, int64(600), p.ViewCount, "nil 计数不回退为 0")
		assert.Equal(t, int64(30), p.LikeCount)
		assert.Equal(t, int64(0), hist.ViewChange)
	})

	t.Run("unchanged metrics append nothing", func(t *testing.T) {
		p := &Post{ID: 7, ViewCount: 600, LikeCount: 30, CommentCount: 3, ShareCount: 1}
		hist := p.ApplySnapshot(&snapshot.PostSnapshot{
			PostID:       "v-1",
			ViewCount:    int64Ptr(600),
			LikeCount:    int64Ptr(30),
			CommentCount: int64Ptr(3),
			ShareCount:   int64Ptr(1),
		}, now)

		assert.Nil(t, hist)
	})

	t.Run("twitter extras", func(t *testing.T) {
		p := &Post{ID: 9, Platform: PlatformTwitter}
		hist := p.ApplySnapshot(&snapshot.PostSnapshot{
			PostID:    "tw-1",
			LikeCount: int64Ptr(50),
			Extra: map[string]any{
				snapshot.ExtraRetweetCount:  int64(12),
				snapshot.ExtraQuoteCount:    int64(4),
				snapshot.ExtraBookmarkCount: int64(8),
			},
		}, now)

		require.NotNil(t, p.RetweetCount)
		assert.Equal(t, int64(12), *p.RetweetCount)
		require.NotNil(t, p.BookmarkCount)
		assert.Equal(t, int64(8), *p.BookmarkCount)

		require.NotNil(t, hist)
		require.NotNil(t, hist.RetweetCount)
		assert.Equal(t, int64(12), *hist.RetweetCount)
	})
}

package snapshot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeProfile(t *testing.T) {
	t.Run("missing platform", func(t *testing.T) {
		_, err := NormalizeProfile(&RawProfile{Fields: map[string]any{"username": "alice"}})
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})

	t.Run("missing username", func(t *testing.T) {
		_, err := NormalizeProfile(&RawProfile{Platform: "tiktok", Fields: map[string]any{}})
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})

	t.Run("nil raw", func(t *testing.T) {
		_, err := NormalizeProfile(nil)
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})

	t.Run("core fields and numeric coercion", func(t *testing.T) {
		snap, err := NormalizeProfile(&RawProfile{
			Platform: "tiktok",
			Fields: map[string]any{
				"username":        "alice",
				"user_id":         "sec-123",
				"display_name":    "Alice",
				"follower_count":  float64(1500), // JSON 解码产出 float64
				"following_count": 42,
				"total_likes":     "98765",
				"video_count":     int64(7),
			},
		})
		require.NoError(t, err)
		assert.Equal(t, "tiktok", snap.Platform)
		assert.Equal(t, "alice", snap.Username)
		assert.Equal(t, "sec-123", snap.UserID)
		assert.Equal(t, int64(1500), snap.FollowerCount)
		assert.Equal(t, int64(42), snap.FollowingCount)
		assert.Equal(t, int64(98765), snap.TotalLikes)
		assert.Equal(t, 7, snap.VideoCount)
	})

	t.Run("platform specific fields go to extra", func(t *testing.T) {
		snap, err := NormalizeProfile(&RawProfile{
			Platform: "reddit",
			Fields: map[string]any{
				"username":              "r_golang",
				"subreddit_name":        "golang",
				"subreddit_subscribers": 250000,
				"follower_count":        250000,
			},
		})
		require.NoError(t, err)

		name, ok := ExtraString(snap.Extra, ExtraSubredditName)
		require.True(t, ok)
		assert.Equal(t, "golang", name)

		subs, ok := ExtraInt64(snap.Extra, ExtraSubredditSubscribers)
		require.True(t, ok)
		assert.Equal(t, int64(250000), subs)

		// 核心字段不进扩展包
		_, ok = snap.Extra["follower_count"]
		assert.False(t, ok)
		_, ok = snap.Extra["username"]
		assert.False(t, ok)
	})
}

func TestNormalizePost(t *testing.T) {
	t.Run("missing post id", func(t *testing.T) {
		_, err := NormalizePost(&RawPost{Platform: "tiktok", Fields: map[string]any{"description": "x"}})
		assert.ErrorIs(t, err, ErrMalformedSnapshot)
	})

	t.Run("absent counters stay nil", func(t *testing.T) {
		snap, err := NormalizePost(&RawPost{
			Platform: "twitter",
			Fields: map[string]any{
				"post_id":    "tw-1",
				"like_count": 10,
			},
		})
		require.NoError(t, err)
		assert.Nil(t, snap.ViewCount, "未观测的计数必须保持 nil")
		require.NotNil(t, snap.LikeCount)
		assert.Equal(t, int64(10), *snap.LikeCount)
		assert.Equal(t, int64(0), snap.Views())
	})

	t.Run("observed zero is not absent", func(t *testing.T) {
		snap, err := NormalizePost(&RawPost{
			Platform: "tiktok",
			Fields: map[string]any{
				"post_id":    "v-1",
				"view_count": 0,
			},
		})
		require.NoError(t, err)
		require.NotNil(t, snap.ViewCount)
		assert.Equal(t, int64(0), *snap.ViewCount)
	})

	t.Run("posted_at from unix timestamp", func(t *testing.T) {
		snap, err := NormalizePost(&RawPost{
			Platform: "tiktok",
			Fields: map[string]any{
				"post_id":   "v-2",
				"posted_at": int64(1700000000),
			},
		})
		require.NoError(t, err)
		require.NotNil(t, snap.PostedAt)
		assert.Equal(t, time.Unix(1700000000, 0).UTC(), *snap.PostedAt)
	})

	t.Run("posted_at from rfc3339", func(t *testing.T) {
		snap, err := NormalizePost(&RawPost{
			Platform: "reddit",
			Fields: map[string]any{
				"post_id":   "rd-1",
				"posted_at": "2026-08-01T12:00:00Z",
			},
		})
		require.NoError(t, err)
		require.NotNil(t, snap.PostedAt)
		assert.Equal(t, 2026, snap.PostedAt.Year())
	})

	t.Run("platform extras preserved", func(t *testing.T) {
		snap, err := NormalizePost(&RawPost{
			Platform: "reddit",
			Fields: map[string]any{
				"post_id":      "rd-2",
				"upvote_ratio": 0.97,
				"reddit_score": 4200,
				"is_crosspost": true,
			},
		})
		require.NoError(t, err)

		ratio, ok := ExtraFloat64(snap.Extra, ExtraUpvoteRatio)
		require.True(t, ok)
		assert.InDelta(t, 0.97, ratio, 1e-9)

		score, ok := ExtraInt64(snap.Extra, ExtraRedditScore)
		require.True(t, ok)
		assert.Equal(t, int64(4200), score)

		cross, ok := ExtraBool(snap.Extra, ExtraIsCrosspost)
		require.True(t, ok)
		assert.True(t, cross)
	})
}

package snapshot

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMalformedSnapshot 缺少 platform 或平台外部 ID 的记录，整条丢弃不入库
var ErrMalformedSnapshot = errors.New("malformed snapshot: missing platform or external id")

// 通用核心字段 key，归一化后从 Extra 中剔除
var profileCoreKeys = map[string]struct{}{
	"user_id": {}, "username": {}, "display_name": {}, "bio": {}, "avatar_url": {},
	"follower_count": {}, "following_count": {}, "total_likes": {}, "video_count": {},
}

var postCoreKeys = map[string]struct{}{
	"post_id": {}, "description": {}, "video_url": {}, "thumbnail_url": {},
	"duration_seconds": {}, "view_count": {}, "like_count": {}, "comment_count": {},
	"share_count": {}, "posted_at": {},
}

// NormalizeProfile 将原始账号数据归一化为通用快照
func NormalizeProfile(raw *RawProfile) (*ProfileSnapshot, error) {
	if raw == nil || raw.Platform == "" {
		return nil, ErrMalformedSnapshot
	}
	username, _ := asString(raw.Fields["username"])
	if username == "" {
		return nil, fmt.Errorf("%w: profile on %s has no username", ErrMalformedSnapshot, raw.Platform)
	}

	snap := &ProfileSnapshot{
		Platform: raw.Platform,
		Username: username,
		Extra:    make(map[string]any),
	}
	snap.UserID, _ = asString(raw.Fields["user_id"])
	snap.DisplayName, _ = asString(raw.Fields["display_name"])
	snap.Bio, _ = asString(raw.Fields["bio"])
	snap.AvatarURL, _ = asString(raw.Fields["avatar_url"])

	if v, ok := asInt64(raw.Fields["follower_count"]); ok {
		snap.FollowerCount = v
	}
	if v, ok := asInt64(raw.Fields["following_count"]); ok {
		snap.FollowingCount = v
	}
	if v, ok := asInt64(raw.Fields["total_likes"]); ok {
		snap.TotalLikes = v
	}
	if v, ok := asInt64(raw.Fields["video_count"]); ok {
		snap.VideoCount = int(v)
	}

	for k, v := range raw.Fields {
		if _, core := profileCoreKeys[k]; core || v == nil {
			continue
		}
		snap.Extra[k] = v
	}
	return snap, nil
}

// NormalizePost 将原始内容数据归一化为通用快照。
// 通用计数字段缺失时保持 nil，下游据此区分「未观测」与「观测到 0」。
func NormalizePost(raw *RawPost) (*PostSnapshot, error) {
	if raw == nil || raw.Platform == "" {
		return nil, ErrMalformedSnapshot
	}
	postID, _ := asString(raw.Fields["post_id"])
	if postID == "" {
		return nil, fmt.Errorf("%w: post on %s has no post_id", ErrMalformedSnapshot, raw.Platform)
	}

	snap := &PostSnapshot{
		Platform: raw.Platform,
		PostID:   postID,
		Extra:    make(map[string]any),
	}
	snap.Description, _ = asString(raw.Fields["description"])
	snap.MediaURL, _ = asString(raw.Fields["video_url"])
	snap.ThumbnailURL, _ = asString(raw.Fields["thumbnail_url"])

	if v, ok := asInt64(raw.Fields["duration_seconds"]); ok {
		d := int(v)
		snap.DurationSeconds = &d
	}
	snap.ViewCount = optInt64(raw.Fields["view_count"])
	snap.LikeCount = optInt64(raw.Fields["like_count"])
	snap.CommentCount = optInt64(raw.Fields["comment_count"])
	snap.ShareCount = optInt64(raw.Fields["share_count"])

	if t, ok := asTime(raw.Fields["posted_at"]); ok {
		snap.PostedAt = &t
	}

	for k, v := range raw.Fields {
		if _, core := postCoreKeys[k]; core || v == nil {
			continue
		}
		snap.Extra[k] = v
	}
	return snap, nil
}

// ExtraInt64 从扩展字段取整数值，带类型归一
func ExtraInt64(extra map[string]any, key string) (int64, bool) {
	v, ok := extra[key]
	if !ok {
		return 0, false
	}
	return asInt64(v)
}

// ExtraFloat64 从扩展字段取浮点值
func ExtraFloat64(extra map[string]any, key string) (float64, bool) {
	v, ok := extra[key]
	if !ok {
		return 0, false
	}
	return asFloat64(v)
}

// ExtraBool 从扩展字段取布尔值
func ExtraBool(extra map[string]any, key string) (bool, bool) {
	v, ok := extra[key].(bool)
	return v, ok
}

// ExtraString 从扩展字段取字符串值
func ExtraString(extra map[string]any, key string) (string, bool) {
	v, ok := extra[key]
	if !ok {
		return "", false
	}
	return asString(v)
}

func optInt64(v any) *int64 {
	n, ok := asInt64(v)
	if !ok {
		return nil
	}
	return &n
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	return s, ok
}

// asInt64 归一化 JSON 解码产生的各种数值类型
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint64:
		return int64(n), true
	case float64:
		return int64(n), true
	case float32:
		return int64(n), true
	case string:
		parsed, err := strconv.ParseInt(n, 10, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	case string:
		parsed, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, false
		}
		return parsed, true
	default:
		return 0, false
	}
}

func asTime(v any) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case int64:
		return time.Unix(t, 0).UTC(), true
	case float64:
		return time.Unix(int64(t), 0).UTC(), true
	case string:
		parsed, err := time.Parse(time.RFC3339, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	default:
		return time.Time{}, false
	}
}

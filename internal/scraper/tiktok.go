package scraper

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"Pulse/internal/snapshot"
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

// TikTokScraper 经 RapidAPI 网关访问 TikTok 公开数据。
// 账号信息按 uniqueId 查询，内容列表需要先拿到 secUid。
type TikTokScraper struct {
	client *resty.Client
	host   string
}

func NewTikTokScraper(cfg config.TikTokConfig) *TikTokScraper {
	client := resty.New().
		SetTimeout(30*time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(time.Second).
		SetHeader("X-RapidAPI-Key", cfg.APIKey).
		SetHeader("X-RapidAPI-Host", cfg.APIHost)

	return &TikTokScraper{
		client: client,
		host:   cfg.APIHost,
	}
}

func (s *TikTokScraper) Platform() string {
	return model.PlatformTikTok
}

type tiktokUserResp struct {
	UserInfo struct {
		User struct {
			ID           string `json:"id"`
			SecUID       string `json:"secUid"`
			UniqueID     string `json:"uniqueId"`
			Nickname     string `json:"nickname"`
			Signature    string `json:"signature"`
			AvatarLarger string `json:"avatarLarger"`
		} `json:"user"`
		Stats struct {
			FollowerCount  int64 `json:"followerCount"`
			FollowingCount int64 `json:"followingCount"`
			HeartCount     int64 `json:"heartCount"`
			VideoCount     int64 `json:"videoCount"`
		} `json:"stats"`
	} `json:"userInfo"`
}

type tiktokPostsResp struct {
	Data struct {
		ItemList []tiktokItem `json:"itemList"`
	} `json:"data"`
	ItemList []tiktokItem `json:"itemList"`
}

type tiktokItem struct {
	ID         string `json:"id"`
	Desc       string `json:"desc"`
	CreateTime int64  `json:"createTime"`
	Video      struct {
		PlayAddr string `json:"playAddr"`
		Cover    string `json:"cover"`
		Duration int    `json:"duration"`
	} `json:"video"`
	Stats struct {
		PlayCount    int64 `json:"playCount"`
		DiggCount    int64 `json:"diggCount"`
		CommentCount int64 `json:"commentCount"`
		ShareCount   int64 `json:"shareCount"`
	} `json:"stats"`
}

func (s *TikTokScraper) FetchProfile(ctx context.Context, username string) (*snapshot.RawProfile, error) {
	var result tiktokUserResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParam("uniqueId", username).
		SetResult(&result).
		Get(fmt.Sprintf("https://%s/api/user/info", s.host))
	if err != nil {
		return nil, &FetchError{Platform: s.Platform(), Username: username, Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{
			Platform: s.Platform(),
			Username: username,
			Err:      fmt.Errorf("user info status %d", resp.StatusCode()),
		}
	}

	user := result.UserInfo.User
	stats := result.UserInfo.Stats
	if user.SecUID == "" {
		return nil, &FetchError{
			Platform: s.Platform(),
			Username: username,
			Err:      fmt.Errorf("user not found"),
		}
	}

	return &snapshot.RawProfile{
		Platform: s.Platform(),
		Fields: map[string]any{
			"user_id":         user.SecUID,
			"username":        username,
			"display_name":    user.Nickname,
			"bio":             user.Signature,
			"avatar_url":      user.AvatarLarger,
			"follower_count":  stats.FollowerCount,
			"following_count": stats.FollowingCount,
			"total_likes":     stats.HeartCount,
			"video_count":     stats.VideoCount,
		},
	}, nil
}

// FetchPosts 按 secUid 拉取最近内容；账号行缺少 secUid 时先回源补齐
func (s *TikTokScraper) FetchPosts(ctx context.Context, profile *model.Profile, limit int) ([]*snapshot.RawPost, error) {
	secUID := ""
	if profile.PlatformUserID != nil {
		secUID = *profile.PlatformUserID
	}
	if secUID == "" {
		raw, err := s.FetchProfile(ctx, profile.Username)
		if err != nil {
			return nil, err
		}
		secUID, _ = raw.Fields["user_id"].(string)
		if secUID == "" {
			return nil, &FetchError{
				Platform: s.Platform(),
				Username: profile.Username,
				Err:      fmt.Errorf("secUid unavailable"),
			}
		}
	}

	var result tiktokPostsResp
	resp, err := s.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"secUid": secUID,
			"count":  fmt.Sprintf("%d", limit),
			"cursor": "0",
		}).
		SetResult(&result).
		Get(fmt.Sprintf("https://%s/api/user/posts", s.host))
	if err != nil {
		return nil, &FetchError{Platform: s.Platform(), Username: profile.Username, Err: err}
	}
	if resp.IsError() {
		return nil, &FetchError{
			Platform: s.Platform(),
			Username: profile.Username,
			Err:      fmt.Errorf("user posts status %d", resp.StatusCode()),
		}
	}

	items := result.Data.ItemList
	if len(items) == 0 {
		items = result.ItemList
	}

	posts := make([]*snapshot.RawPost, 0, len(items))
	for _, item := range items {
		if item.ID == "" {
			continue
		}
		posts = append(posts, &snapshot.RawPost{
			Platform: s.Platform(),
			Fields: map[string]any{
				"post_id":          item.ID,
				"description":      item.Desc,
				"video_url":        item.Video.PlayAddr,
				"thumbnail_url":    item.Video.Cover,
				"duration_seconds": item.Video.Duration,
				"view_count":       item.Stats.PlayCount,
				"like_count":       item.Stats.DiggCount,
				"comment_count":    item.Stats.CommentCount,
				"share_count":      item.Stats.ShareCount,
				"posted_at":        item.CreateTime,
			},
		})
	}
	return posts, nil
}

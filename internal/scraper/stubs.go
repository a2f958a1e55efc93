package scraper

import (
	"Pulse/internal/model"
	"Pulse/internal/snapshot"
	"context"
	"errors"
)

// ErrNotConfigured 平台已纳入数据模型但采集端尚未接入凭据
var ErrNotConfigured = errors.New("platform scraper not configured")

// TwitterScraper 占位实现。归一化层与存储层已支持 Twitter 字段，
// 接入官方 API 凭据后在此补全请求逻辑即可。
type TwitterScraper struct{}

func NewTwitterScraper() *TwitterScraper {
	return &TwitterScraper{}
}

func (s *TwitterScraper) Platform() string {
	return model.PlatformTwitter
}

func (s *TwitterScraper) FetchProfile(ctx context.Context, username string) (*snapshot.RawProfile, error) {
	return nil, &FetchError{Platform: s.Platform(), Username: username, Err: ErrNotConfigured}
}

func (s *TwitterScraper) FetchPosts(ctx context.Context, profile *model.Profile, limit int) ([]*snapshot.RawPost, error) {
	return nil, &FetchError{Platform: s.Platform(), Username: profile.Username, Err: ErrNotConfigured}
}

// RedditScraper 占位实现，同 TwitterScraper
type RedditScraper struct{}

func NewRedditScraper() *RedditScraper {
	return &RedditScraper{}
}

func (s *RedditScraper) Platform() string {
	return model.PlatformReddit
}

func (s *RedditScraper) FetchProfile(ctx context.Context, username string) (*snapshot.RawProfile, error) {
	return nil, &FetchError{Platform: s.Platform(), Username: username, Err: ErrNotConfigured}
}

func (s *RedditScraper) FetchPosts(ctx context.Context, profile *model.Profile, limit int) ([]*snapshot.RawPost, error) {
	return nil, &FetchError{Platform: s.Platform(), Username: profile.Username, Err: ErrNotConfigured}
}

package scraper

import (
	"Pulse/internal/model"
	"Pulse/internal/snapshot"
	"context"
	"fmt"
)

// Scraper 单个平台的数据采集客户端
type Scraper interface {
	Platform() string
	FetchProfile(ctx context.Context, username string) (*snapshot.RawProfile, error)
	FetchPosts(ctx context.Context, profile *model.Profile, limit int) ([]*snapshot.RawPost, error)
}

// FetchError 封装采集失败的平台与账号信息，单账号失败不影响整轮
type FetchError struct {
	Platform string
	Username string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s@%s: %v", e.Platform, e.Username, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Registry 平台到采集客户端的路由表
type Registry map[string]Scraper

func NewRegistry(scrapers ...Scraper) Registry {
	r := make(Registry, len(scrapers))
	for _, s := range scrapers {
		r[s.Platform()] = s
	}
	return r
}

func (r Registry) Get(platform string) (Scraper, bool) {
	s, ok := r[platform]
	return s, ok
}

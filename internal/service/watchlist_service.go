package service

import (
	"Pulse/internal/model"
	"Pulse/internal/repository"
	"Pulse/internal/scraper"
	"Pulse/internal/snapshot"
	"context"
	log "log/slog"
	"strings"
	"time"
)

// WatchedProfile 监控列表条目：当前指标加近 24 小时粉丝净变化
type WatchedProfile struct {
	*model.Profile
	FollowerChange24h int64 `json:"follower_change_24h"`
}

type WatchlistService interface {
	Add(ctx context.Context, platform, username string) (*model.Profile, error)
	Remove(ctx context.Context, platform, username string) error
	List(ctx context.Context, platform string) ([]*WatchedProfile, error)
	Get(ctx context.Context, id uint64) (*model.Profile, error)
}

type watchlistServiceImpl struct {
	profileRepo repository.ProfileRepo
	scrapers    scraper.Registry
	alerts      AlertService
}

func NewWatchlistService(profileRepo repository.ProfileRepo, scrapers scraper.Registry, alerts AlertService) WatchlistService {
	return &watchlistServiceImpl{
		profileRepo: profileRepo,
		scrapers:    scrapers,
		alerts:      alerts,
	}
}

// Add 将账号加入监控列表并立即做一次初始抓取。
// 已停止监控的账号重新加入时只恢复 is_active，保留全部历史。
func (s *watchlistServiceImpl) Add(ctx context.Context, platform, username string) (*model.Profile, error) {
	platform = strings.ToLower(strings.TrimSpace(platform))
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))
	if username == "" {
		return nil, ErrParamInvalid
	}
	if _, ok := model.SupportedPlatforms[platform]; !ok {
		return nil, ErrPlatformNotSupported
	}

	existing, err := s.profileRepo.GetByPlatformUsername(ctx, platform, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsActive {
			return nil, ErrProfileExist
		}
		if err := s.profileRepo.SetActive(ctx, existing.ID, true); err != nil {
			return nil, err
		}
		existing.IsActive = true
		return existing, nil
	}

	sc, ok := s.scrapers.Get(platform)
	if !ok {
		return nil, ErrPlatformNotSupported
	}

	raw, err := sc.FetchProfile(ctx, username)
	if err != nil {
		log.ErrorContext(ctx, "initial scrape failed",
			"platform", platform, "username", username, "err", err)
		return nil, ErrScrapeFailed
	}
	snap, err := snapshot.NormalizeProfile(raw)
	if err != nil {
		return nil, ErrScrapeFailed
	}

	profile := &model.Profile{
		Platform: platform,
		Username: username,
		IsActive: true,
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	profile, err = s.profileRepo.ApplySnapshot(ctx, profile.ID, snap, time.Now())
	if err != nil {
		return nil, err
	}

	if err := s.alerts.SendWelcome(ctx, profile); err != nil {
		log.WarnContext(ctx, "welcome alert failed",
			"username", username, "err", err)
	}
	return profile, nil
}

// Remove 停止监控但保留历史数据，后续可重新加入恢复
func (s *watchlistServiceImpl) Remove(ctx context.Context, platform, username string) error {
	platform = strings.ToLower(strings.TrimSpace(platform))
	username = strings.TrimSpace(strings.TrimPrefix(username, "@"))

	profile, err := s.profileRepo.GetByPlatformUsername(ctx, platform, username)
	if err != nil {
		return err
	}
	if profile == nil {
		return ErrProfileNotFound
	}
	if !profile.IsActive {
		return ErrProfileInactive
	}
	return s.profileRepo.SetActive(ctx, profile.ID, false)
}

func (s *watchlistServiceImpl) List(ctx context.Context, platform string) ([]*WatchedProfile, error) {
	profiles, err := s.profileRepo.ListByPlatform(ctx, strings.ToLower(strings.TrimSpace(platform)))
	if err != nil {
		return nil, err
	}

	changes, err := s.profileRepo.SumFollowerChanges(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		return nil, err
	}

	out := make([]*WatchedProfile, 0, len(profiles))
	for _, profile := range profiles {
		out = append(out, &WatchedProfile{
			Profile:           profile,
			FollowerChange24h: changes[profile.ID],
		})
	}
	return out, nil
}

func (s *watchlistServiceImpl) Get(ctx context.Context, id uint64) (*model.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

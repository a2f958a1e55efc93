package service

import (
	"Pulse/internal/model"
	"Pulse/internal/snapshot"
	"context"
	"errors"
	"sync"
	"time"
)

// fakePostRepo 内存版 PostRepo，仅实现测试用到的路径
type fakePostRepo struct {
	mu    sync.Mutex
	posts map[uint64]*model.Post
}

func newFakePostRepo(posts ...*model.Post) *fakePostRepo {
	repo := &fakePostRepo{posts: make(map[uint64]*model.Post)}
	for _, p := range posts {
		repo.posts[p.ID] = p
	}
	return repo
}

func (s *fakePostRepo) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakePostRepo) GetByPlatformPostID(ctx context.Context, platform, platformPostID string) (*model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.Platform == platform && p.PlatformPostID == platformPostID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakePostRepo) ListByProfile(ctx context.Context, profileID uint64, limit int) ([]*model.Post, error) {
	return s.listBy(func(p *model.Post) bool { return p.ProfileID == profileID }), nil
}

func (s *fakePostRepo) ListRecent(ctx context.Context, profileID uint64, since time.Time) ([]*model.Post, error) {
	return s.listBy(func(p *model.Post) bool {
		return p.ProfileID == profileID && p.PostedAt != nil && !p.PostedAt.Before(since)
	}), nil
}

func (s *fakePostRepo) ListViral(ctx context.Context, limit int) ([]*model.Post, error) {
	return s.listBy(func(p *model.Post) bool { return p.IsViral }), nil
}

func (s *fakePostRepo) ListTop(ctx context.Context, since time.Time, limit int) ([]*model.Post, error) {
	return s.listBy(func(p *model.Post) bool {
		return p.PostedAt != nil && !p.PostedAt.Before(since)
	}), nil
}

func (s *fakePostRepo) ListUnsentViral(ctx context.Context, profileID uint64) ([]*model.Post, error) {
	return s.listBy(func(p *model.Post) bool {
		return p.ProfileID == profileID && p.IsViral && !p.ViralAlertSent
	}), nil
}

func (s *fakePostRepo) listBy(match func(*model.Post) bool) []*model.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Post, 0)
	for _, p := range s.posts {
		if match(p) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out
}

func (s *fakePostRepo) ApplySnapshot(ctx context.Context, profileID uint64, snap *snapshot.PostSnapshot, at time.Time) (*model.Post, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.posts {
		if p.Platform == snap.Platform && p.PlatformPostID == snap.PostID {
			p.ApplySnapshot(snap, at)
			cp := *p
			return &cp, false, nil
		}
	}
	post := &model.Post{
		ID:             uint64(len(s.posts) + 1),
		ProfileID:      profileID,
		Platform:       snap.Platform,
		PlatformPostID: snap.PostID,
	}
	post.ApplySnapshot(snap, at)
	s.posts[post.ID] = post
	cp := *post
	return &cp, true, nil
}

func (s *fakePostRepo) MarkViral(ctx context.Context, id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return errors.New("post not found")
	}
	p.IsViral = true
	return nil
}

func (s *fakePostRepo) MarkAlertSent(ctx context.Context, id uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok || p.ViralAlertSent {
		return false, nil
	}
	p.ViralAlertSent = true
	return true, nil
}

func (s *fakePostRepo) GetHistory(ctx context.Context, postID uint64, since time.Time) ([]*model.PostHistory, error) {
	return nil, nil
}

// fakeProfileRepo 内存版 ProfileRepo
type fakeProfileRepo struct {
	mu              sync.Mutex
	profiles        map[uint64]*model.Profile
	followerChanges map[uint64]int64
}

func newFakeProfileRepo(profiles ...*model.Profile) *fakeProfileRepo {
	repo := &fakeProfileRepo{profiles: make(map[uint64]*model.Profile)}
	for _, p := range profiles {
		repo.profiles[p.ID] = p
	}
	return repo
}

func (s *fakeProfileRepo) Create(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if profile.ID == 0 {
		profile.ID = uint64(len(s.profiles) + 1)
	}
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *fakeProfileRepo) Save(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *profile
	s.profiles[profile.ID] = &cp
	return nil
}

func (s *fakeProfileRepo) GetByID(ctx context.Context, id uint64) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (s *fakeProfileRepo) GetByPlatformUsername(ctx context.Context, platform, username string) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.profiles {
		if p.Platform == platform && p.Username == username {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (s *fakeProfileRepo) ListActive(ctx context.Context) ([]*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Profile, 0)
	for _, p := range s.profiles {
		if p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeProfileRepo) ListByPlatform(ctx context.Context, platform string) ([]*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*model.Profile, 0)
	for _, p := range s.profiles {
		if platform == "" || p.Platform == platform {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *fakeProfileRepo) SetActive(ctx context.Context, id uint64, active bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return errors.New("profile not found")
	}
	p.IsActive = active
	return nil
}

func (s *fakeProfileRepo) UpdateAverageViews(ctx context.Context, id uint64, avg float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return errors.New("profile not found")
	}
	p.AverageViews = avg
	return nil
}

func (s *fakeProfileRepo) ApplySnapshot(ctx context.Context, id uint64, snap *snapshot.ProfileSnapshot, at time.Time) (*model.Profile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[id]
	if !ok {
		return nil, errors.New("profile not found")
	}
	p.ApplySnapshot(snap, at)
	cp := *p
	return &cp, nil
}

func (s *fakeProfileRepo) GetHistory(ctx context.Context, profileID uint64, since time.Time) ([]*model.ProfileHistory, error) {
	return nil, nil
}

func (s *fakeProfileRepo) SumFollowerChanges(ctx context.Context, since time.Time) (map[uint64]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[uint64]int64, len(s.followerChanges))
	for id, delta := range s.followerChanges {
		out[id] = delta
	}
	return out, nil
}

// fakeAlertLogRepo 记录写入的审计条目
type fakeAlertLogRepo struct {
	mu      sync.Mutex
	entries []*model.AlertLog
}

func (s *fakeAlertLogRepo) Create(ctx context.Context, alertLog *model.AlertLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, alertLog)
	return nil
}

func (s *fakeAlertLogRepo) ListRecent(ctx context.Context, alertType string, limit int) ([]*model.AlertLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*model.AlertLog(nil), s.entries...), nil
}

func (s *fakeAlertLogRepo) CountByPost(ctx context.Context, postID uint64, onlySuccess bool) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var count int64
	for _, e := range s.entries {
		if e.PostID == nil || *e.PostID != postID {
			continue
		}
		if onlySuccess && !e.Success {
			continue
		}
		count++
	}
	return count, nil
}

// fakeTransport 可注入失败的投递通道
type fakeTransport struct {
	mu       sync.Mutex
	sent     []string
	failWith error
}

func (s *fakeTransport) Send(ctx context.Context, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWith != nil {
		return s.failWith
	}
	s.sent = append(s.sent, text)
	return nil
}

// fakeLocker 进程内锁，语义与 Redis 实现一致
type fakeLocker struct {
	mu   sync.Mutex
	held map[string]string
	deny bool
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: make(map[string]string)}
}

func (s *fakeLocker) TryLock(ctx context.Context, key, value string, expiration time.Duration, retryTimes int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deny {
		return false, nil
	}
	if _, ok := s.held[key]; ok {
		return false, nil
	}
	s.held[key] = value
	return true, nil
}

func (s *fakeLocker) UnLock(ctx context.Context, key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.held[key] == value {
		delete(s.held, key)
	}
}

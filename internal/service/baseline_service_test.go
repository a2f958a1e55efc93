package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func TestBaselineMean(t *testing.T) {
	now := time.Now()
	cutoff := now.Add(-24 * time.Hour)
	old := timePtr(now.Add(-48 * time.Hour))

	tests := []struct {
		name  string
		posts []*model.Post
		want  float64
	}{
		{
			name:  "no posts",
			posts: nil,
			want:  0,
		},
		{
			name: "simple mean",
			posts: []*model.Post{
				{ViewCount: 100, PostedAt: old},
				{ViewCount: 300, PostedAt: old},
			},
			want: 200,
		},
		{
			name: "zero view posts excluded",
			posts: []*model.Post{
				{ViewCount: 0, PostedAt: old},
				{ViewCount: 100, PostedAt: old},
			},
			want: 100,
		},
		{
			name: "posts younger than cutoff excluded",
			posts: []*model.Post{
				{ViewCount: 1_000_000, PostedAt: timePtr(now.Add(-time.Hour))},
				{ViewCount: 100, PostedAt: old},
				{ViewCount: 200, PostedAt: old},
			},
			want: 150,
		},
		{
			name: "posts without timestamp excluded",
			posts: []*model.Post{
				{ViewCount: 500},
				{ViewCount: 100, PostedAt: old},
			},
			want: 100,
		},
		{
			name: "all samples filtered out",
			posts: []*model.Post{
				{ViewCount: 0, PostedAt: old},
				{ViewCount: 900, PostedAt: timePtr(now)},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, BaselineMean(tt.posts, cutoff), 1e-9)
		})
	}
}

func TestBaselineRecompute(t *testing.T) {
	now := time.Now()
	profile := &model.Profile{ID: 1, Platform: model.PlatformTikTok, Username: "alice", IsActive: true, AverageViews: 50}

	profileRepo := newFakeProfileRepo(profile)
	postRepo := newFakePostRepo(
		&model.Post{ID: 1, ProfileID: 1, ViewCount: 100, PostedAt: timePtr(now.Add(-48 * time.Hour))},
		&model.Post{ID: 2, ProfileID: 1, ViewCount: 300, PostedAt: timePtr(now.Add(-72 * time.Hour))},
		&model.Post{ID: 3, ProfileID: 1, ViewCount: 0, PostedAt: timePtr(now.Add(-72 * time.Hour))},
	)

	cfg := &config.ScraperConfig{LookbackDays: 30, MinPostAgeHours: 24, ViralThreshold: 5}
	svc := NewBaselineService(profileRepo, postRepo, cfg)

	avg, err := svc.Recompute(context.Background(), profile)
	require.NoError(t, err)
	assert.InDelta(t, 200, avg, 1e-9)
	assert.InDelta(t, 200, profile.AverageViews, 1e-9)

	stored, err := profileRepo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.InDelta(t, 200, stored.AverageViews, 1e-9, "新基线需要落库")
}

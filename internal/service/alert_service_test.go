package service

import (
	"Pulse/internal/api/config"
	"Pulse/internal/model"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAlertFixture(post *model.Post, transport *fakeTransport) (AlertService, *fakePostRepo, *fakeAlertLogRepo) {
	postRepo := newFakePostRepo(post)
	logRepo := &fakeAlertLogRepo{}
	cfg := &config.ScraperConfig{ViralThreshold: 5}
	svc := NewAlertService(postRepo, logRepo, transport, newFakeLocker(), cfg)
	return svc, postRepo, logRepo
}

func TestDispatchViral(t *testing.T) {
	ctx := context.Background()
	profile := &model.Profile{ID: 1, Platform: model.PlatformTikTok, Username: "alice", AverageViews: 1000}

	t.Run("successful delivery sets gate once", func(t *testing.T) {
		post := &model.Post{ID: 1, ProfileID: 1, Platform: model.PlatformTikTok, ViewCount: 9000, IsViral: true}
		transport := &fakeTransport{}
		svc, postRepo, logRepo := newAlertFixture(post, transport)

		sent, err := svc.DispatchViral(ctx, profile, post)
		require.NoError(t, err)
		assert.True(t, sent)

		stored, _ := postRepo.GetByID(ctx, 1)
		assert.True(t, stored.ViralAlertSent)

		require.Len(t, logRepo.entries, 1)
		entry := logRepo.entries[0]
		assert.True(t, entry.Success)
		assert.Equal(t, model.AlertTypeViral, entry.AlertType)
		require.NotNil(t, entry.PostID)
		assert.Equal(t, uint64(1), *entry.PostID)

		require.Len(t, transport.sent, 1)
		assert.True(t, strings.Contains(transport.sent[0], "@alice"))

		// 第二次投递同一帖子必须是空操作
		sent, err = svc.DispatchViral(ctx, profile, stored)
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Len(t, transport.sent, 1)
		assert.Len(t, logRepo.entries, 1)

		successCount, err := logRepo.CountByPost(ctx, 1, true)
		require.NoError(t, err)
		assert.EqualValues(t, 1, successCount, "同一帖子至多一条 success 审计记录")
	})

	t.Run("delivery failure leaves gate unset for retry", func(t *testing.T) {
		post := &model.Post{ID: 2, ProfileID: 1, Platform: model.PlatformTikTok, ViewCount: 9000, IsViral: true}
		transport := &fakeTransport{failWith: errors.New("telegram down")}
		svc, postRepo, logRepo := newAlertFixture(post, transport)

		sent, err := svc.DispatchViral(ctx, profile, post)
		require.Error(t, err)
		assert.False(t, sent)

		stored, _ := postRepo.GetByID(ctx, 2)
		assert.False(t, stored.ViralAlertSent, "失败不置位，下轮重试")

		require.Len(t, logRepo.entries, 1)
		assert.False(t, logRepo.entries[0].Success)
		require.NotNil(t, logRepo.entries[0].ErrorMessage)

		// 通道恢复后重试成功
		transport.failWith = nil
		sent, err = svc.DispatchViral(ctx, profile, stored)
		require.NoError(t, err)
		assert.True(t, sent)

		stored, _ = postRepo.GetByID(ctx, 2)
		assert.True(t, stored.ViralAlertSent)
		assert.Len(t, logRepo.entries, 2)

		successCount, _ := logRepo.CountByPost(ctx, 2, true)
		totalCount, _ := logRepo.CountByPost(ctx, 2, false)
		assert.EqualValues(t, 1, successCount)
		assert.EqualValues(t, 2, totalCount, "不过滤 success 时统计全部审计记录")
	})

	t.Run("lock contention skips without error", func(t *testing.T) {
		post := &model.Post{ID: 3, ProfileID: 1, Platform: model.PlatformTikTok, ViewCount: 9000, IsViral: true}
		transport := &fakeTransport{}
		postRepo := newFakePostRepo(post)
		logRepo := &fakeAlertLogRepo{}
		locker := newFakeLocker()
		locker.deny = true
		svc := NewAlertService(postRepo, logRepo, transport, locker, &config.ScraperConfig{ViralThreshold: 5})

		sent, err := svc.DispatchViral(ctx, profile, post)
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Empty(t, transport.sent)
		assert.Empty(t, logRepo.entries)
	})

	t.Run("gate already set under lock is a no-op", func(t *testing.T) {
		post := &model.Post{ID: 4, ProfileID: 1, Platform: model.PlatformTikTok, ViewCount: 9000, IsViral: true, ViralAlertSent: true}
		transport := &fakeTransport{}
		svc, _, logRepo := newAlertFixture(post, transport)

		sent, err := svc.DispatchViral(ctx, profile, post)
		require.NoError(t, err)
		assert.False(t, sent)
		assert.Empty(t, transport.sent)
		assert.Empty(t, logRepo.entries)
	})
}

func TestSendWelcomeAndNotify(t *testing.T) {
	ctx := context.Background()
	profile := &model.Profile{ID: 1, Platform: model.PlatformTikTok, Username: "alice", FollowerCount: 1500}

	t.Run("welcome writes audit entry", func(t *testing.T) {
		transport := &fakeTransport{}
		svc, _, logRepo := newAlertFixture(&model.Post{ID: 99}, transport)

		require.NoError(t, svc.SendWelcome(ctx, profile))
		require.Len(t, logRepo.entries, 1)
		assert.Equal(t, model.AlertTypeWelcome, logRepo.entries[0].AlertType)
		assert.True(t, logRepo.entries[0].Success)
		assert.Nil(t, logRepo.entries[0].PostID)
	})

	t.Run("notify failure is audited", func(t *testing.T) {
		transport := &fakeTransport{failWith: errors.New("down")}
		svc, _, logRepo := newAlertFixture(&model.Post{ID: 99}, transport)

		err := svc.Notify(ctx, model.AlertTypeCycleFail, "boom")
		require.Error(t, err)
		require.Len(t, logRepo.entries, 1)
		assert.False(t, logRepo.entries[0].Success)
		assert.Equal(t, model.AlertTypeCycleFail, logRepo.entries[0].AlertType)
	})
}

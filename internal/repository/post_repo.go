package repository

import (
	"Pulse/internal/model"
	"Pulse/internal/snapshot"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostRepo interface {
	GetByID(ctx context.Context, id uint64) (*model.Post, error)
	GetByPlatformPostID(ctx context.Context, platform, platformPostID string) (*model.Post, error)
	ListByProfile(ctx context.Context, profileID uint64, limit int) ([]*model.Post, error)
	ListRecent(ctx context.Context, profileID uint64, since time.Time) ([]*model.Post, error)
	ListViral(ctx context.Context, limit int) ([]*model.Post, error)
	ListTop(ctx context.Context, since time.Time, limit int) ([]*model.Post, error)
	ListUnsentViral(ctx context.Context, profileID uint64) ([]*model.Post, error)
	ApplySnapshot(ctx context.Context, profileID uint64, snap *snapshot.PostSnapshot, at time.Time) (*model.Post, bool, error)
	MarkViral(ctx context.Context, id uint64) error
	MarkAlertSent(ctx context.Context, id uint64) (bool, error)
	GetHistory(ctx context.Context, postID uint64, since time.Time) ([]*model.PostHistory, error)
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

func (s *postRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) GetByPlatformPostID(ctx context.Context, platform, platformPostID string) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Where("platform = ? AND platform_post_id = ?", platform, platformPostID).
		First(&post).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) ListByProfile(ctx context.Context, profileID uint64, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("posted_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postRepoImpl) ListRecent(ctx context.Context, profileID uint64, since time.Time) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Where("profile_id = ? AND posted_at >= ?", profileID, since).
		Order("posted_at DESC").
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

func (s *postRepoImpl) ListViral(ctx context.Context, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).
		Where("is_viral = ?", true).
		Order("view_count DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postRepoImpl) ListTop(ctx context.Context, since time.Time, limit int) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	query := s.db.WithContext(ctx).
		Where("posted_at >= ?", since).
		Order("view_count DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func (s *postRepoImpl) ListUnsentViral(ctx context.Context, profileID uint64) ([]*model.Post, error) {
	posts := make([]*model.Post, 0)
	result := s.db.WithContext(ctx).
		Where("profile_id = ? AND is_viral = ? AND viral_alert_sent = ?", profileID, true, false).
		Find(&posts)
	if result.Error != nil {
		return nil, result.Error
	}
	return posts, nil
}

// ApplySnapshot 按 (platform, platform_post_id) 定位内容行，不存在则新建。
// 已存在时先加行锁再套用快照，历史追加与当前行更新处于同一事务。
// 第二个返回值表示本次是否新建了内容行。
func (s *postRepoImpl) ApplySnapshot(ctx context.Context, profileID uint64, snap *snapshot.PostSnapshot, at time.Time) (*model.Post, bool, error) {
	var post model.Post
	var created bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("platform = ? AND platform_post_id = ?", snap.Platform, snap.PostID).
			First(&post).Error

		if errors.Is(err, gorm.ErrRecordNotFound) {
			created = true
			post = model.Post{
				ProfileID:      profileID,
				Platform:       snap.Platform,
				PlatformPostID: snap.PostID,
			}
			hist := post.ApplySnapshot(snap, at)
			if err := tx.Create(&post).Error; err != nil {
				return err
			}
			if hist != nil {
				hist.PostID = post.ID
				return tx.Create(hist).Error
			}
			return nil
		}
		if err != nil {
			return err
		}

		hist := post.ApplySnapshot(snap, at)
		if hist != nil {
			if err := tx.Create(hist).Error; err != nil {
				return err
			}
		}
		return tx.Save(&post).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &post, created, nil
}

func (s *postRepoImpl) MarkViral(ctx context.Context, id uint64) error {
	return s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ?", id).
		Update("is_viral", true).Error
}

// MarkAlertSent 以 CAS 方式置位告警标记，返回本次调用是否抢到置位。
// 并发投递同一帖子时只有一方返回 true。
func (s *postRepoImpl) MarkAlertSent(ctx context.Context, id uint64) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&model.Post{}).
		Where("id = ? AND viral_alert_sent = ?", id, false).
		Update("viral_alert_sent", true)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s *postRepoImpl) GetHistory(ctx context.Context, postID uint64, since time.Time) ([]*model.PostHistory, error) {
	history := make([]*model.PostHistory, 0)
	result := s.db.WithContext(ctx).
		Where("post_id = ? AND recorded_at >= ?", postID, since).
		Order("recorded_at ASC").
		Find(&history)
	if result.Error != nil {
		return nil, result.Error
	}
	return history, nil
}

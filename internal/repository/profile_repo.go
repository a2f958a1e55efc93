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

type ProfileRepo interface {
	Create(ctx context.Context, profile *model.Profile) error
	Save(ctx context.Context, profile *model.Profile) error
	GetByID(ctx context.Context, id uint64) (*model.Profile, error)
	GetByPlatformUsername(ctx context.Context, platform, username string) (*model.Profile, error)
	ListActive(ctx context.Context) ([]*model.Profile, error)
	ListByPlatform(ctx context.Context, platform string) ([]*model.Profile, error)
	SetActive(ctx context.Context, id uint64, active bool) error
	UpdateAverageViews(ctx context.Context, id uint64, avg float64) error
	ApplySnapshot(ctx context.Context, id uint64, snap *snapshot.ProfileSnapshot, at time.Time) (*model.Profile, error)
	GetHistory(ctx context.Context, profileID uint64, since time.Time) ([]*model.ProfileHistory, error)
	SumFollowerChanges(ctx context.Context, since time.Time) (map[uint64]int64, error)
}

type profileRepoImpl struct {
	db *gorm.DB
}

func NewProfileRepo(db *gorm.DB) ProfileRepo {
	return &profileRepoImpl{db: db}
}

func (s *profileRepoImpl) Create(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).Create(profile).Error
}

func (s *profileRepoImpl) Save(ctx context.Context, profile *model.Profile) error {
	return s.db.WithContext(ctx).Save(profile).Error
}

func (s *profileRepoImpl) GetByID(ctx context.Context, id uint64) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).First(&profile, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *profileRepoImpl) GetByPlatformUsername(ctx context.Context, platform, username string) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).
		Where("platform = ? AND username = ?", platform, username).
		First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (s *profileRepoImpl) ListActive(ctx context.Context) ([]*model.Profile, error) {
	profiles := make([]*model.Profile, 0)
	result := s.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("id ASC").
		Find(&profiles)
	if result.Error != nil {
		return nil, result.Error
	}
	return profiles, nil
}

func (s *profileRepoImpl) ListByPlatform(ctx context.Context, platform string) ([]*model.Profile, error) {
	profiles := make([]*model.Profile, 0)
	query := s.db.WithContext(ctx).Order("id ASC")
	if platform != "" {
		query = query.Where("platform = ?", platform)
	}
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (s *profileRepoImpl) SetActive(ctx context.Context, id uint64, active bool) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}

func (s *profileRepoImpl) UpdateAverageViews(ctx context.Context, id uint64, avg float64) error {
	return s.db.WithContext(ctx).
		Model(&model.Profile{}).
		Where("id = ?", id).
		Update("average_post_views", avg).Error
}

// ApplySnapshot 在单个事务内锁定账号行，套用快照并追加历史。
// 行锁保证同一账号的「历史追加 + 当前行更新」不会交错。
func (s *profileRepoImpl) ApplySnapshot(ctx context.Context, id uint64, snap *snapshot.ProfileSnapshot, at time.Time) (*model.Profile, error) {
	var profile model.Profile
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&profile, id).Error; err != nil {
			return err
		}

		hist := profile.ApplySnapshot(snap, at)
		if hist != nil {
			if err := tx.Create(hist).Error; err != nil {
				return err
			}
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// SumFollowerChanges 汇总 since 以来各账号的粉丝净变化，无快照的账号不在结果中
func (s *profileRepoImpl) SumFollowerChanges(ctx context.Context, since time.Time) (map[uint64]int64, error) {
	var rows []struct {
		ProfileID uint64
		Delta     int64
	}
	err := s.db.WithContext(ctx).
		Model(&model.ProfileHistory{}).
		Select("profile_id, COALESCE(SUM(follower_change), 0) AS delta").
		Where("recorded_at >= ?", since).
		Group("profile_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[uint64]int64, len(rows))
	for _, row := range rows {
		out[row.ProfileID] = row.Delta
	}
	return out, nil
}

func (s *profileRepoImpl) GetHistory(ctx context.Context, profileID uint64, since time.Time) ([]*model.ProfileHistory, error) {
	history := make([]*model.ProfileHistory, 0)
	result := s.db.WithContext(ctx).
		Where("profile_id = ? AND recorded_at >= ?", profileID, since).
		Order("recorded_at ASC").
		Find(&history)
	if result.Error != nil {
		return nil, result.Error
	}
	return history, nil
}

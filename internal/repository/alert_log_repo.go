package repository

import (
	"Pulse/internal/model"
	"context"

	"gorm.io/gorm"
)

type AlertLogRepo interface {
	Create(ctx context.Context, alertLog *model.AlertLog) error
	ListRecent(ctx context.Context, alertType string, limit int) ([]*model.AlertLog, error)
	CountByPost(ctx context.Context, postID uint64, onlySuccess bool) (int64, error)
}

type alertLogRepoImpl struct {
	db *gorm.DB
}

func NewAlertLogRepo(db *gorm.DB) AlertLogRepo {
	return &alertLogRepoImpl{db: db}
}

func (s *alertLogRepoImpl) Create(ctx context.Context, alertLog *model.AlertLog) error {
	return s.db.WithContext(ctx).Create(alertLog).Error
}

func (s *alertLogRepoImpl) ListRecent(ctx context.Context, alertType string, limit int) ([]*model.AlertLog, error) {
	logs := make([]*model.AlertLog, 0)
	query := s.db.WithContext(ctx).Order("sent_at DESC")
	if alertType != "" {
		query = query.Where("alert_type = ?", alertType)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (s *alertLogRepoImpl) CountByPost(ctx context.Context, postID uint64, onlySuccess bool) (int64, error) {
	var count int64
	query := s.db.WithContext(ctx).
		Model(&model.AlertLog{}).
		Where("post_id = ?", postID)
	if onlySuccess {
		query = query.Where("success = ?", true)
	}
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

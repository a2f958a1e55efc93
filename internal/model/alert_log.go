package model

import (
	"time"
)

// AlertLog 每次告警投递尝试的审计记录，只追加不修改。
// 约束：同一帖子 alert_type=viral_post 且 success=true 的记录至多一条，
// 由 viral_alert_sent 的 CAS 更新保证。
type AlertLog struct {
	ID        uint64  `gorm:"primaryKey"`
	PostID    *uint64 `gorm:"index;constraint:OnDelete:SET NULL" json:"post_id"`
	ProfileID *uint64 `gorm:"index;constraint:OnDelete:SET NULL" json:"profile_id"`

	Platform  string `gorm:"type:varchar(32)" json:"platform"`
	AlertType string `gorm:"type:varchar(32);not null;index" json:"alert_type"`
	Message   string `gorm:"type:text;not null" json:"message"`

	SentAt       time.Time `gorm:"not null" json:"sent_at"`
	Success      bool      `gorm:"not null;default:1" json:"success"`
	ErrorMessage *string   `gorm:"type:text" json:"error_message,omitempty"`
}

func (AlertLog) TableName() string {
	return "alert_logs"
}

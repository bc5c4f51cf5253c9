package model

import "time"

// Like is the per-user engagement marker. Its presence is the whole
// "liked" state; the composite unique index makes the toggle race-safe.
type Like struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"not null;index:idx_user_activity,unique" json:"userId"`
	ActivityID uint      `gorm:"not null;index:idx_user_activity,unique" json:"activityId"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

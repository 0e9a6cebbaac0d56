package model

import "time"

// RefreshToken is the server-side half of a session. The token value is the
// primary key so a rotation invalidates the old value outright, and the
// (user_id, user_agent) unique index guarantees one live row per device.
type RefreshToken struct {
	Token     string `gorm:"primaryKey"`
	UserID    string `gorm:"uniqueIndex:idx_refresh_user_device;not null"`
	UserAgent string `gorm:"uniqueIndex:idx_refresh_user_device"`
	ExpiresAt time.Time
	CreatedAt time.Time
}

package model

import "time"

// MailConfirmation maps a one-shot confirmation token to the address that
// must prove ownership. The row is deleted the moment it's consumed.
type MailConfirmation struct {
	Token     string `gorm:"primaryKey"`
	Email     string `gorm:"index;not null"`
	CreatedAt time.Time
}

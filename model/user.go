package model

import (
	"slices"
	"time"
)

// Roles a user can hold. Every account has at least USER.
const (
	RoleUser       = "USER"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	ID           string      `gorm:"primaryKey" json:"id"`
	Email        string      `gorm:"uniqueIndex;not null" json:"email"`
	FullName     string      `json:"fullName"`
	PasswordHash string      `gorm:"not null" json:"-"`
	Roles        StringSlice `gorm:"type:text;not null" json:"roles"`
	Verified     bool        `gorm:"default:false" json:"verified"`
	Banned       bool        `gorm:"default:false" json:"banned"`
	CreatedAt    time.Time   `json:"createdAt"`

	RefreshTokens []RefreshToken `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

func (u *User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

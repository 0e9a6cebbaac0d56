package internal

import (
	"bitwise74/auth-api/internal/auth"
	"bitwise74/auth-api/internal/store"
	"bitwise74/auth-api/pkg/security"

	"gorm.io/gorm"
)

type Deps struct {
	DB            *gorm.DB
	Argon         *security.ArgonHash
	Auth          *auth.Service
	Users         *store.Users
	Tokens        *store.RefreshTokens
	Confirmations *store.Confirmations
}

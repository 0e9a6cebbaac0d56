package store_test

import (
	"fmt"
	"testing"

	"bitwise74/auth-api/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}, model.RefreshToken{}, model.MailConfirmation{}))

	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           id,
		Email:        email,
		FullName:     "Seeded User",
		PasswordHash: "x",
		Roles:        model.StringSlice{model.RoleUser},
		Verified:     true,
	}
	require.NoError(t, db.Create(user).Error)

	return user
}

package store_test

import (
	"testing"
	"time"

	"bitwise74/auth-api/internal/apperr"
	"bitwise74/auth-api/internal/store"
	"bitwise74/auth-api/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, 0)

	require.NoError(t, users.Create(&model.User{
		ID: "u1", Email: "a@b.com", PasswordHash: "x", Roles: model.StringSlice{model.RoleUser},
	}))

	err := users.Create(&model.User{
		ID: "u2", Email: "a@b.com", PasswordHash: "x", Roles: model.StringSlice{model.RoleUser},
	})
	require.ErrorIs(t, err, apperr.ErrConflict)
}

func TestLookupMiss(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, 0)

	_, err := users.ByEmail("ghost@test.com")
	require.ErrorIs(t, err, apperr.ErrNotFound)

	_, err = users.ByID("ghost")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCacheInvalidatedOnUpdate(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, time.Minute)
	seedUser(t, db, "u1", "a@b.com")

	// Warm the cache under both keys
	_, err := users.ByEmail("a@b.com")
	require.NoError(t, err)
	_, err = users.ByID("u1")
	require.NoError(t, err)

	_, err = users.Update("u1", map[string]any{"banned": true})
	require.NoError(t, err)

	fresh, err := users.ByEmail("a@b.com")
	require.NoError(t, err)
	assert.True(t, fresh.Banned, "cached copy must not survive an update")
}

func TestCacheInvalidatedOnDelete(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, time.Minute)
	seedUser(t, db, "u1", "a@b.com")

	_, err := users.ByID("u1")
	require.NoError(t, err)

	require.NoError(t, users.Delete("u1"))

	_, err = users.ByID("u1")
	require.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestDeleteRemovesOwnedRecords(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, 0)
	tokens := store.NewRefreshTokens(db)
	confirmations := store.NewConfirmations(db, users)
	seedUser(t, db, "u1", "a@b.com")

	_, err := tokens.Rotate("u1", "deviceA", time.Hour)
	require.NoError(t, err)
	_, err = confirmations.Create("a@b.com")
	require.NoError(t, err)

	require.NoError(t, users.Delete("u1"))

	var count int64
	db.Model(&model.RefreshToken{}).Where("user_id = ?", "u1").Count(&count)
	assert.EqualValues(t, 0, count)
	db.Model(&model.MailConfirmation{}).Where("email = ?", "a@b.com").Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestListFiltersAndPages(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, 0)

	seedUser(t, db, "u1", "u1@test.com")
	seedUser(t, db, "u2", "u2@test.com")

	admin := seedUser(t, db, "u3", "admin@test.com")
	require.NoError(t, db.Model(admin).Update("roles", model.StringSlice{model.RoleUser, model.RoleAdmin}).Error)

	all, total, err := users.List(nil, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, all, 3)

	admins, total, err := users.List([]string{model.RoleAdmin}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, admins, 1)
	assert.Equal(t, "u3", admins[0].ID)

	page2, total, err := users.List(nil, 2, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Len(t, page2, 1)

	empty, _, err := users.List(nil, 5, 2)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

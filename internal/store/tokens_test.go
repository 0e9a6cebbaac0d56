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

func TestRotateReplacesInPlace(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "u1@test.com")
	tokens := store.NewRefreshTokens(db)

	first, err := tokens.Rotate("u1", "deviceA", time.Hour)
	require.NoError(t, err)

	second, err := tokens.Rotate("u1", "deviceA", time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, first.Token, second.Token)

	var count int64
	db.Model(&model.RefreshToken{}).Where("user_id = ?", "u1").Count(&count)
	assert.EqualValues(t, 1, count, "rotation must replace, not append")

	// Old value is gone, new one resolves
	_, err = tokens.Find(first.Token)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	found, err := tokens.Find(second.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", found.UserID)
	assert.Equal(t, "deviceA", found.UserAgent)
}

func TestRotateSeparateDevices(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "u1@test.com")
	tokens := store.NewRefreshTokens(db)

	_, err := tokens.Rotate("u1", "deviceA", time.Hour)
	require.NoError(t, err)
	_, err = tokens.Rotate("u1", "deviceB", time.Hour)
	require.NoError(t, err)

	var count int64
	db.Model(&model.RefreshToken{}).Where("user_id = ?", "u1").Count(&count)
	assert.EqualValues(t, 2, count)
}

func TestFindDeletesExpired(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "u1@test.com")
	tokens := store.NewRefreshTokens(db)

	token, err := tokens.Rotate("u1", "deviceA", -time.Minute)
	require.NoError(t, err)

	_, err = tokens.Find(token.Token)
	require.ErrorIs(t, err, apperr.ErrNotFound)

	var count int64
	db.Model(&model.RefreshToken{}).Count(&count)
	assert.EqualValues(t, 0, count)
}

func TestDeleteReportsMissing(t *testing.T) {
	db := newTestDB(t)
	tokens := store.NewRefreshTokens(db)

	require.ErrorIs(t, tokens.Delete("no-such-token"), apperr.ErrNotFound)
}

func TestDeleteExpiredSweep(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1", "u1@test.com")
	tokens := store.NewRefreshTokens(db)

	_, err := tokens.Rotate("u1", "deviceA", -time.Minute)
	require.NoError(t, err)
	live, err := tokens.Rotate("u1", "deviceB", time.Hour)
	require.NoError(t, err)

	n, err := tokens.DeleteExpired()
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	_, err = tokens.Find(live.Token)
	require.NoError(t, err)
}

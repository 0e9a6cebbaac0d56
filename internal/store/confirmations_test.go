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

func TestConsumeFlipsVerified(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, 0)
	confirmations := store.NewConfirmations(db, users)

	user := seedUser(t, db, "u1", "a@b.com")
	require.NoError(t, db.Model(user).Update("verified", false).Error)

	confirmation, err := confirmations.Create("a@b.com")
	require.NoError(t, err)
	assert.NotEmpty(t, confirmation.Token)

	confirmed, err := confirmations.Consume(confirmation.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", confirmed.ID)
	assert.True(t, confirmed.Verified)

	// One-shot: the second consume fails like an unknown token
	_, err = confirmations.Consume(confirmation.Token)
	require.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestConsumeUnknownToken(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, 0)
	confirmations := store.NewConfirmations(db, users)

	_, err := confirmations.Consume("never-created")
	require.ErrorIs(t, err, apperr.ErrBadRequest)
}

func TestDeleteStale(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUsers(db, 0)
	confirmations := store.NewConfirmations(db, users)
	seedUser(t, db, "u1", "a@b.com")

	old, err := confirmations.Create("a@b.com")
	require.NoError(t, err)
	require.NoError(t, db.Model(&model.MailConfirmation{}).
		Where("token = ?", old.Token).
		Update("created_at", time.Now().Add(-100*time.Hour)).Error)

	fresh, err := confirmations.Create("a@b.com")
	require.NoError(t, err)

	n, err := confirmations.DeleteStale(72 * time.Hour)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	var count int64
	db.Model(&model.MailConfirmation{}).Where("token = ?", fresh.Token).Count(&count)
	assert.EqualValues(t, 1, count)
}

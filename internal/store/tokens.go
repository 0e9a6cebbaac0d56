package store

import (
	"bitwise74/auth-api/internal/apperr"
	"bitwise74/auth-api/model"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RefreshTokens manages the persisted session credentials. The invariant it
// enforces is one live token per (user, device): rotation is a single
// atomic upsert keyed on the (user_id, user_agent) unique index, so two
// concurrent logins from the same device can never leave two rows behind.
type RefreshTokens struct {
	db *gorm.DB
}

func NewRefreshTokens(db *gorm.DB) *RefreshTokens {
	return &RefreshTokens{db: db}
}

// Rotate issues a fresh token value for the (user, device) pair, replacing
// any previous value in place. Holders of the old value are invalidated the
// moment this returns.
func (s *RefreshTokens) Rotate(userID, userAgent string, validity time.Duration) (*model.RefreshToken, error) {
	token := &model.RefreshToken{
		Token:     uuid.NewString(),
		UserID:    userID,
		UserAgent: userAgent,
		ExpiresAt: time.Now().Add(validity),
		CreatedAt: time.Now(),
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "user_agent"}},
		DoUpdates: clause.Assignments(map[string]any{
			"token":      token.Token,
			"expires_at": token.ExpiresAt,
		}),
	}).Create(token).Error
	if err != nil {
		return nil, apperr.Internal(err)
	}

	return token, nil
}

// Find looks a refresh token up by its value. An expired row is deleted on
// detection and reported as not found, so storage reclaims itself without
// waiting for the cleanup sweep.
func (s *RefreshTokens) Find(token string) (*model.RefreshToken, error) {
	var record model.RefreshToken

	err := s.db.Where("token = ?", token).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("refresh token not found")
		}

		return nil, apperr.Internal(err)
	}

	if record.ExpiresAt.Before(time.Now()) {
		if err := s.Delete(token); err != nil {
			return nil, err
		}

		return nil, apperr.NotFound("refresh token expired")
	}

	return &record, nil
}

// Delete removes a refresh token by value. Reports not found when nothing
// was deleted so logout can tell a stale token apart from a real one.
func (s *RefreshTokens) Delete(token string) error {
	res := s.db.Where("token = ?", token).Delete(&model.RefreshToken{})
	if res.Error != nil {
		return apperr.Internal(res.Error)
	}

	if res.RowsAffected == 0 {
		return apperr.NotFound("refresh token not found")
	}

	return nil
}

// DeleteExpired removes every token past its expiry. Used by the
// background sweep.
func (s *RefreshTokens) DeleteExpired() (int64, error) {
	res := s.db.Where("expires_at < ?", time.Now()).Delete(&model.RefreshToken{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}

	return res.RowsAffected, nil
}

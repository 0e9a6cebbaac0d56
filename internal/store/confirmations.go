package store

import (
	"bitwise74/auth-api/internal/apperr"
	"bitwise74/auth-api/model"
	"bitwise74/auth-api/pkg/security"
	"errors"
	"time"

	"gorm.io/gorm"
)

const confirmationTokenSize = 32

// Confirmations is the one-shot register of pending email confirmations.
type Confirmations struct {
	db    *gorm.DB
	users *Users
}

func NewConfirmations(db *gorm.DB, users *Users) *Confirmations {
	return &Confirmations{db: db, users: users}
}

func (s *Confirmations) Create(email string) (*model.MailConfirmation, error) {
	token, err := security.GenerateToken(confirmationTokenSize)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	confirmation := &model.MailConfirmation{
		Token:     token,
		Email:     email,
		CreatedAt: time.Now(),
	}

	if err := s.db.Create(confirmation).Error; err != nil {
		return nil, apperr.Internal(err)
	}

	return confirmation, nil
}

// Consume deletes the confirmation and flips the matching user to verified
// in one transaction, so a token can never be spent without the user state
// changing with it. A second consume of the same token fails the same way
// an unknown token does.
func (s *Confirmations) Consume(token string) (*model.User, error) {
	var user model.User

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var confirmation model.MailConfirmation

		err := tx.Where("token = ?", token).First(&confirmation).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.BadRequest("invalid confirmation token")
			}

			return err
		}

		if err := tx.Where("token = ?", token).Delete(&model.MailConfirmation{}).Error; err != nil {
			return err
		}

		err = tx.Model(&model.User{}).
			Where("email = ?", confirmation.Email).
			Update("verified", true).
			Error
		if err != nil {
			return err
		}

		return tx.Where("email = ?", confirmation.Email).First(&user).Error
	})
	if err != nil {
		if errors.Is(err, apperr.ErrBadRequest) {
			return nil, err
		}

		return nil, apperr.Internal(err)
	}

	s.users.Invalidate(&user)

	return &user, nil
}

// DeleteStale removes confirmations that were never consumed within maxAge.
func (s *Confirmations) DeleteStale(maxAge time.Duration) (int64, error) {
	res := s.db.Where("created_at < ?", time.Now().Add(-maxAge)).Delete(&model.MailConfirmation{})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error)
	}

	return res.RowsAffected, nil
}

// Package store holds the gorm-backed repositories the auth core runs on.
// All durable state lives here; nothing above this layer caches records
// beyond the optional read-through user cache.
package store

import (
	"bitwise74/auth-api/internal/apperr"
	"bitwise74/auth-api/model"
	"errors"
	"time"

	"github.com/jellydator/ttlcache/v2"
	"gorm.io/gorm"
)

// Users wraps user persistence with an optional read-through cache keyed by
// both id and email. The cache is a latency optimization only; its TTL
// should equal the access token TTL so a stale gate decision can never
// outlive the token that carried it.
type Users struct {
	db    *gorm.DB
	cache *ttlcache.Cache
}

func NewUsers(db *gorm.DB, cacheTTL time.Duration) *Users {
	s := &Users{db: db}

	if cacheTTL > 0 {
		c := ttlcache.NewCache()
		c.SetTTL(cacheTTL)
		c.SkipTTLExtensionOnHit(true)
		s.cache = c
	}

	return s
}

func (s *Users) Create(u *model.User) error {
	if err := s.db.Create(u).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperr.Conflict("this email is already registered")
		}

		return apperr.Internal(err)
	}

	return nil
}

func (s *Users) ByEmail(email string) (*model.User, error) {
	if u := s.cached(email); u != nil {
		return u, nil
	}

	var user model.User

	err := s.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}

		return nil, apperr.Internal(err)
	}

	s.remember(&user)
	return &user, nil
}

func (s *Users) ByID(id string) (*model.User, error) {
	if u := s.cached(id); u != nil {
		return u, nil
	}

	var user model.User

	err := s.db.Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("user not found")
		}

		return nil, apperr.Internal(err)
	}

	s.remember(&user)
	return &user, nil
}

// Update applies a column patch and returns the fresh record. The cache is
// invalidated under both keys, including the old email when it changes.
func (s *Users) Update(id string, patch map[string]any) (*model.User, error) {
	prev, err := s.ByID(id)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&model.User{}).Where("id = ?", id).Updates(patch).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("this email is already registered")
		}

		return nil, apperr.Internal(err)
	}

	s.Invalidate(prev)

	return s.ByID(id)
}

// Delete removes the user together with their refresh tokens and any
// pending mail confirmation, in one transaction.
func (s *Users) Delete(id string) error {
	user, err := s.ByID(id)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.RefreshToken{}).Error; err != nil {
			return err
		}

		if err := tx.Where("email = ?", user.Email).Delete(&model.MailConfirmation{}).Error; err != nil {
			return err
		}

		return tx.Where("id = ?", id).Delete(&model.User{}).Error
	})
	if err != nil {
		return apperr.Internal(err)
	}

	s.Invalidate(user)
	return nil
}

// List returns a page of users, optionally filtered to those holding any of
// the given roles. Role filtering happens in memory because roles live in a
// single comma-joined column.
func (s *Users) List(roles []string, page, pageSize int) (users []model.User, total int64, err error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	var all []model.User
	if err := s.db.Order("created_at desc").Find(&all).Error; err != nil {
		return nil, 0, apperr.Internal(err)
	}

	if len(roles) > 0 {
		filtered := all[:0]
		for _, u := range all {
			for _, r := range roles {
				if u.HasRole(r) {
					filtered = append(filtered, u)
					break
				}
			}
		}
		all = filtered
	}

	total = int64(len(all))

	start := (page - 1) * pageSize
	if start >= len(all) {
		return []model.User{}, total, nil
	}

	end := min(start+pageSize, len(all))
	return all[start:end], total, nil
}

// Invalidate drops the user from the read-through cache under both keys.
func (s *Users) Invalidate(u *model.User) {
	if s.cache == nil || u == nil {
		return
	}

	s.cache.Remove(u.ID)
	s.cache.Remove(u.Email)
}

func (s *Users) cached(key string) *model.User {
	if s.cache == nil {
		return nil
	}

	v, err := s.cache.Get(key)
	if err != nil {
		return nil
	}

	u, ok := v.(model.User)
	if !ok {
		return nil
	}

	return &u
}

func (s *Users) remember(u *model.User) {
	if s.cache == nil {
		return
	}

	s.cache.Set(u.ID, *u)
	s.cache.Set(u.Email, *u)
}

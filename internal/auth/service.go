// Package auth implements the authentication core: credential
// verification, token pair issuance with per-device rotation, and the
// register / login / refresh / logout / confirm-email flows. The HTTP
// layer above it is thin glue; everything here takes plain data and
// returns typed failures from apperr.
package auth

import (
	"bitwise74/auth-api/internal/apperr"
	"bitwise74/auth-api/internal/store"
	"bitwise74/auth-api/model"
	"bitwise74/auth-api/pkg/security"
	"bitwise74/auth-api/validators"
	"errors"
	"fmt"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.uber.org/zap"
)

const idCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Mailer dispatches the confirmation mail. Abstracted so tests and
// development mode don't need an SMTP server.
type Mailer interface {
	SendConfirmation(to, link string) error
}

type Config struct {
	Secret      []byte
	AccessTTL   time.Duration
	RefreshTTL  time.Duration
	FrontendURL string
	Production  bool
}

type Service struct {
	users         *store.Users
	tokens        *store.RefreshTokens
	confirmations *store.Confirmations
	argon         *security.ArgonHash
	mailer        Mailer
	cfg           Config
}

func New(users *store.Users, tokens *store.RefreshTokens, confirmations *store.Confirmations, argon *security.ArgonHash, mailer Mailer, cfg Config) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		confirmations: confirmations,
		argon:         argon,
		mailer:        mailer,
		cfg:           cfg,
	}
}

// Register creates a new account. In production the account starts
// unverified and a confirmation mail is dispatched; if that dispatch
// fails the account is deleted again so registration never leaves an
// unconfirmable orphan behind.
func (s *Service) Register(email, fullName, password string) (*model.User, error) {
	if err := validators.EmailValidator(email); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	if err := validators.FullNameValidator(fullName); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	if err := validators.PasswordValidator(password); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	hash, err := s.argon.GenerateFromPassword(password)
	if err != nil {
		zap.L().Error("Failed to hash password", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	id, err := gonanoid.Generate(idCharset, 16)
	if err != nil {
		zap.L().Error("Failed to generate user ID", zap.Error(err))
		return nil, apperr.Internal(err)
	}

	user := &model.User{
		ID:           id,
		Email:        email,
		FullName:     fullName,
		PasswordHash: hash,
		Roles:        model.StringSlice{model.RoleUser},
		Verified:     !s.cfg.Production,
		CreatedAt:    time.Now(),
	}

	if err := s.users.Create(user); err != nil {
		zap.L().Error("Failed to create user", zap.Error(err), zap.String("email", email))
		return nil, err
	}

	if s.cfg.Production {
		if err := s.dispatchConfirmation(user); err != nil {
			// Compensating delete. Best effort only: if it fails we log the
			// orphan but still report the registration as failed
			if delErr := s.users.Delete(user.ID); delErr != nil {
				zap.L().Error("Failed to delete user after mail failure, orphan account remains",
					zap.Error(delErr), zap.String("userID", user.ID))
			}

			return nil, apperr.Internal(err)
		}
	}

	zap.L().Info("Registered new user", zap.String("userID", user.ID), zap.Bool("verified", user.Verified))
	return user, nil
}

// Login verifies credentials and account gates, then issues a token pair.
// A missing user and a wrong password are indistinguishable to the caller.
func (s *Service) Login(email, password, userAgent string) (*LoginResult, error) {
	user, err := s.users.ByEmail(email)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid email or password")
		}

		return nil, err
	}

	ok, err := s.argon.VerifyPasswd(password, user.PasswordHash)
	if err != nil {
		zap.L().Error("Failed to verify password", zap.Error(err), zap.String("userID", user.ID))
		return nil, apperr.Internal(err)
	}

	if !ok {
		return nil, apperr.Unauthorized("invalid email or password")
	}

	if err := checkGates(user); err != nil {
		zap.L().Warn("Login rejected", zap.Error(err), zap.String("userID", user.ID))
		return nil, err
	}

	result, err := s.issueTokenPair(user, userAgent)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Logged in user", zap.String("userID", user.ID))
	return result, nil
}

// Refresh exchanges a refresh token for a new pair, rotating the stored
// value. Account gates are rechecked so a ban takes effect no later than
// the next refresh.
func (s *Service) Refresh(refreshToken, userAgent string) (*LoginResult, error) {
	if refreshToken == "" {
		return nil, apperr.Unauthorized("invalid refresh token")
	}

	record, err := s.tokens.Find(refreshToken)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid refresh token")
		}

		return nil, err
	}

	user, err := s.users.ByID(record.UserID)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return nil, apperr.Unauthorized("invalid refresh token")
		}

		return nil, err
	}

	if err := checkGates(user); err != nil {
		zap.L().Warn("Refresh rejected", zap.Error(err), zap.String("userID", user.ID))
		return nil, err
	}

	result, err := s.issueTokenPair(user, userAgent)
	if err != nil {
		return nil, err
	}

	zap.L().Debug("Refreshed tokens", zap.String("userID", user.ID))
	return result, nil
}

// Logout revokes the presented refresh token. Unknown tokens are rejected
// so the caller can't mistake a no-op for a revocation.
func (s *Service) Logout(refreshToken string) error {
	if refreshToken == "" {
		return apperr.Unauthorized("invalid refresh token")
	}

	if err := s.tokens.Delete(refreshToken); err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return apperr.Unauthorized("invalid refresh token")
		}

		return err
	}

	zap.L().Info("User logged out")
	return nil
}

// ConfirmEmail consumes a one-shot confirmation token and marks the
// matching account verified. Replaying a consumed token fails.
func (s *Service) ConfirmEmail(token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.BadRequest("no confirmation token provided")
	}

	user, err := s.confirmations.Consume(token)
	if err != nil {
		return nil, err
	}

	zap.L().Info("Confirmed email", zap.String("userID", user.ID))
	return user, nil
}

// checkGates enforces the account-state gates in a fixed order:
// verified before banned
func checkGates(user *model.User) error {
	if !user.Verified {
		return apperr.Forbidden("account not verified")
	}

	if user.Banned {
		return apperr.Forbidden("account banned")
	}

	return nil
}

func (s *Service) dispatchConfirmation(user *model.User) error {
	confirmation, err := s.confirmations.Create(user.Email)
	if err != nil {
		zap.L().Error("Failed to create mail confirmation", zap.Error(err), zap.String("userID", user.ID))
		return err
	}

	link := fmt.Sprintf("%s/confirm?token=%s", s.cfg.FrontendURL, confirmation.Token)

	if err := s.mailer.SendConfirmation(user.Email, link); err != nil {
		zap.L().Error("Failed to send confirmation mail", zap.Error(err), zap.String("userID", user.ID))
		return err
	}

	zap.L().Info("Sent confirmation mail", zap.String("userID", user.ID))
	return nil
}

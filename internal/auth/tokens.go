package auth

import (
	"bitwise74/auth-api/model"
	"bitwise74/auth-api/pkg/security"
	"time"

	"go.uber.org/zap"
)

// AccessToken is the signed, short-lived half of a session. It's never
// stored server-side.
type AccessToken struct {
	Token     string
	ExpiresAt time.Time
}

// LoginResult is what a successful login or refresh hands back to the
// transport layer. The refresh token value is for the caller to stash
// however it likes (cookie, header); the core doesn't care.
type LoginResult struct {
	User         *model.User
	AccessToken  AccessToken
	RefreshToken *model.RefreshToken
}

// issueTokenPair always mints a fresh access token and rotates the refresh
// token for the (user, device) pair. Rotation happens on every issue, not
// just on refresh, so a leaked value survives at most one interval.
func (s *Service) issueTokenPair(user *model.User, userAgent string) (*LoginResult, error) {
	signed, expiresAt, err := security.SignAccessToken(
		user.ID, user.Email, user.Roles, user.Verified, s.cfg.Secret, s.cfg.AccessTTL)
	if err != nil {
		zap.L().Error("Failed to sign access token", zap.Error(err), zap.String("userID", user.ID))
		return nil, err
	}

	refresh, err := s.tokens.Rotate(user.ID, userAgent, s.cfg.RefreshTTL)
	if err != nil {
		zap.L().Error("Failed to rotate refresh token", zap.Error(err), zap.String("userID", user.ID))
		return nil, err
	}

	return &LoginResult{
		User:         user,
		AccessToken:  AccessToken{Token: signed, ExpiresAt: expiresAt},
		RefreshToken: refresh,
	}, nil
}

package service

import (
	"bitwise74/auth-api/internal/store"
	"time"

	"go.uber.org/zap"
)

// AuthCleanup defines a function used to periodically remove expired
// refresh tokens and mail confirmations that were never consumed
func AuthCleanup(t time.Duration, confirmationMaxAge time.Duration, tokens *store.RefreshTokens, confirmations *store.Confirmations) {
	ticker := time.NewTicker(t)

	zap.L().Debug("Auth cleanup attached", zap.Duration("tick_every", t))

	go func() {
		for range ticker.C {
			n, err := tokens.DeleteExpired()
			if err != nil {
				zap.L().Error("Failed to clean up expired refresh tokens", zap.Error(err))
			} else if n > 0 {
				zap.L().Debug("Cleaned up expired refresh tokens", zap.Int64("count", n))
			}

			n, err = confirmations.DeleteStale(confirmationMaxAge)
			if err != nil {
				zap.L().Error("Failed to clean up stale mail confirmations", zap.Error(err))
			} else if n > 0 {
				zap.L().Debug("Cleaned up stale mail confirmations", zap.Int64("count", n))
			}
		}
	}()
}

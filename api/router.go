// Package api contains all endpoints available
package api

import (
	"bitwise74/auth-api/config"
	"bitwise74/auth-api/db"
	"bitwise74/auth-api/internal"
	"bitwise74/auth-api/internal/auth"
	"bitwise74/auth-api/internal/service"
	"bitwise74/auth-api/internal/store"
	"bitwise74/auth-api/middleware"
	"bitwise74/auth-api/model"
	"bitwise74/auth-api/pkg/security"
	"fmt"
	"time"

	ginzap "github.com/gin-contrib/zap"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	gray  = "\x1b[90m"
	reset = "\x1b[0m"
)

type API struct {
	Router *gin.Engine
	*internal.Deps
}

func NewRouter() (*API, error) {
	database, err := db.New()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database, %w", err)
	}

	makeLogger()

	accessTTL := viper.GetDuration("jwt.access_ttl")

	cacheTTL := time.Duration(0)
	if viper.GetBool("cache.user_lookups") {
		// Cache entries live exactly as long as an access token, so a gate
		// decision served from cache can't outlive the token that carried it
		cacheTTL = accessTTL
	}

	users := store.NewUsers(database, cacheTTL)
	tokens := store.NewRefreshTokens(database)
	confirmations := store.NewConfirmations(database, users)
	argon := security.NewArgon()

	a := &API{
		Deps: &internal.Deps{
			DB:            database,
			Argon:         argon,
			Users:         users,
			Tokens:        tokens,
			Confirmations: confirmations,
			Auth: auth.New(users, tokens, confirmations, argon, service.NewMailSender(), auth.Config{
				Secret:      []byte(viper.GetString("jwt.secret")),
				AccessTTL:   accessTTL,
				RefreshTTL:  viper.GetDuration("jwt.refresh_ttl"),
				FrontendURL: viper.GetString("host.frontend_url"),
				Production:  config.IsProduction(),
			}),
		},
	}

	router := gin.New()
	a.Router = router

	router.Use(
		cors.New(cors.Config{
			AllowOrigins:     []string{viper.GetString("host.frontend_url")},
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}),
		gin.Recovery(),
		middleware.NewRequestIDMiddleware(),
		ginzap.GinzapWithConfig(zap.L(), &ginzap.Config{
			TimeFormat: "15:04:05.000",
			UTC:        true,
			Skipper: func(c *gin.Context) bool {
				return c.Request.Method == "HEAD"
			},
			Context: func(c *gin.Context) []zapcore.Field {
				fields := []zapcore.Field{}

				if v := c.GetString("requestID"); v != "" {
					fields = append(fields, zap.String("request_id", v))
				}

				if v := c.GetString("userID"); v != "" {
					fields = append(fields, zap.String("userID", v))
				}

				return fields
			},
		}),
	)

	router.HandleMethodNotAllowed = true
	router.RedirectFixedPath = true

	jwt := middleware.NewJWTMiddleware()
	admin := middleware.RequireRoles(model.RoleAdmin, model.RoleSuperAdmin)

	main := router.Group("/api", middleware.BodySizeLimiter(1<<20))
	{
		// HEAD /api/heartbeat 		-> Used to check if the server is alive
		main.HEAD("/heartbeat", a.Heartbeat)
	}

	authGroup := main.Group("/auth")
	{
		// POST /api/auth/register	-> Registers a new user
		authGroup.POST("/register", a.AuthRegister)

		// POST /api/auth/login 	-> Logs in a user and returns a token pair
		authGroup.POST("/login", a.AuthLogin)

		// GET /api/auth/refresh-tokens	-> Rotates the refresh token and mints a new access token
		authGroup.GET("/refresh-tokens", a.AuthRefresh)

		// GET /api/auth/logout		-> Revokes the caller's refresh token
		authGroup.GET("/logout", a.AuthLogout)

		// GET /api/auth/confirm	-> Consumes an email confirmation token
		authGroup.GET("/confirm", a.AuthConfirm)
	}

	usersGroup := main.Group("/users", jwt)
	{
		// GET /api/users		-> Lists users (admin only)
		usersGroup.GET("", admin, a.UserList)

		// GET /api/users/me		-> Returns the calling user
		usersGroup.GET("/me", a.UserMe)

		// GET /api/users/:id		-> Returns a user (self or admin)
		usersGroup.GET("/:id", a.UserFetch)

		// PATCH /api/users/:id 	-> Edits a user (admin only)
		usersGroup.PATCH("/:id", admin, a.UserEdit)

		// DELETE /api/users/:id 	-> Deletes a user (self or admin)
		usersGroup.DELETE("/:id", a.UserDelete)
	}

	service.AuthCleanup(
		viper.GetDuration("cleanup.interval"),
		viper.GetDuration("cleanup.confirmation_max_age"),
		tokens,
		confirmations,
	)

	return a, nil
}

func makeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = func(t time.Time, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + t.Format("15:04:05.000") + reset)
	}
	cfg.EncoderConfig.EncodeCaller = func(ec zapcore.EntryCaller, pae zapcore.PrimitiveArrayEncoder) {
		pae.AppendString(gray + ec.TrimmedPath() + reset)
	}

	cfg.DisableStacktrace = true

	log, _ := cfg.Build()
	zap.ReplaceGlobals(log)
}

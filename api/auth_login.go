package api

import (
	"bitwise74/auth-api/model"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const refreshCookie = "refresh_token"

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (a *API) AuthLogin(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data loginBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Email field can't be empty",
			"requestID": requestID,
		})
		return
	}

	if data.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Password field can't be empty",
			"requestID": requestID,
		})
		return
	}

	result, err := a.Auth.Login(data.Email, data.Password, c.Request.UserAgent())
	if err != nil {
		fail(c, err)
		return
	}

	setRefreshCookie(c, result.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"user":        result.User,
		"accessToken": result.AccessToken.Token,
		"expiresIn":   result.AccessToken.ExpiresAt.UnixMilli(),
	})
}

// setRefreshCookie stashes the refresh token as an httpOnly cookie. The
// core only hands out the raw value; transport is this layer's decision.
func setRefreshCookie(c *gin.Context, token *model.RefreshToken) {
	maxAge := int(time.Until(token.ExpiresAt).Seconds())

	c.SetCookie(refreshCookie, token.Token, maxAge, "/", "", viper.GetBool("host.ssl.enabled"), true)
}

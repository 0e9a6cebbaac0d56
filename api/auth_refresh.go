package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

func (a *API) AuthRefresh(c *gin.Context) {
	token, _ := c.Cookie(refreshCookie)

	// An Authorization: Refresh <token> header wins over the cookie so
	// non-browser clients don't need cookie jars
	if header := c.GetHeader("Authorization"); header != "" {
		if v, ok := strings.CutPrefix(header, "Refresh "); ok {
			token = v
		}
	}

	result, err := a.Auth.Refresh(token, c.Request.UserAgent())
	if err != nil {
		fail(c, err)
		return
	}

	setRefreshCookie(c, result.RefreshToken)

	c.JSON(http.StatusOK, gin.H{
		"accessToken": result.AccessToken.Token,
		"expiresIn":   result.AccessToken.ExpiresAt.UnixMilli(),
	})
}

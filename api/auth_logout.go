package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
)

func (a *API) AuthLogout(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	token, _ := c.Cookie(refreshCookie)

	if err := a.Auth.Logout(token); err != nil {
		fail(c, err)
		return
	}

	c.SetCookie(refreshCookie, "", -1, "/", "", viper.GetBool("host.ssl.enabled"), true)

	c.JSON(http.StatusOK, gin.H{
		"message":   "Logged out",
		"requestID": requestID,
	})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) AuthConfirm(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	user, err := a.Auth.ConfirmEmail(c.Query("token"))
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "Email confirmed",
		"userID":    user.ID,
		"requestID": requestID,
	})
}

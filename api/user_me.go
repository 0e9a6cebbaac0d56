package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) UserMe(c *gin.Context) {
	userID := c.MustGet("userID").(string)

	user, err := a.Users.ByID(userID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

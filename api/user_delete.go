package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) UserDelete(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)
	userID := c.MustGet("userID").(string)
	targetID := c.Param("id")

	if userID != targetID && !callerIsAdmin(c) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":     "insufficient_role",
			"requestID": requestID,
		})
		return
	}

	if err := a.Users.Delete(targetID); err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":   "User deleted",
		"requestID": requestID,
	})
}

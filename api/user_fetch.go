package api

import (
	"bitwise74/auth-api/model"
	"bitwise74/auth-api/pkg/security"
	"net/http"

	"github.com/gin-gonic/gin"
)

func (a *API) UserFetch(c *gin.Context) {
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

	user, err := a.Users.ByID(targetID)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

func callerIsAdmin(c *gin.Context) bool {
	claims, ok := c.MustGet("claims").(*security.AccessClaims)
	if !ok {
		return false
	}

	for _, r := range claims.Roles {
		if r == model.RoleAdmin || r == model.RoleSuperAdmin {
			return true
		}
	}

	return false
}

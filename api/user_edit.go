package api

import (
	"bitwise74/auth-api/model"
	"bitwise74/auth-api/pkg/security"
	"bitwise74/auth-api/validators"
	"net/http"
	"slices"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type editUserBody struct {
	FullName *string  `json:"fullName"`
	Verified *bool    `json:"verified"`
	Banned   *bool    `json:"banned"`
	Roles    []string `json:"roles"`
}

var knownRoles = []string{model.RoleUser, model.RoleAdmin, model.RoleSuperAdmin}

func (a *API) UserEdit(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data editUserBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	patch := map[string]any{}

	if data.FullName != nil {
		if err := validators.FullNameValidator(*data.FullName); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{
				"error":     err.Error(),
				"requestID": requestID,
			})
			return
		}

		patch["full_name"] = *data.FullName
	}

	if data.Verified != nil {
		patch["verified"] = *data.Verified
	}

	if data.Banned != nil {
		patch["banned"] = *data.Banned
	}

	if data.Roles != nil {
		// Only a super admin may change role sets
		claims := c.MustGet("claims").(*security.AccessClaims)
		if !slices.Contains(claims.Roles, model.RoleSuperAdmin) {
			c.JSON(http.StatusForbidden, gin.H{
				"error":     "insufficient_role",
				"requestID": requestID,
			})
			return
		}

		for _, r := range data.Roles {
			if !slices.Contains(knownRoles, r) {
				c.JSON(http.StatusBadRequest, gin.H{
					"error":     "unknown role " + r,
					"requestID": requestID,
				})
				return
			}
		}

		patch["roles"] = model.StringSlice(data.Roles)
	}

	if len(patch) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Nothing to update",
			"requestID": requestID,
		})
		return
	}

	user, err := a.Users.Update(c.Param("id"), patch)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": user,
	})
}

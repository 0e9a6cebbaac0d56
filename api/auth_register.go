package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type registerBody struct {
	Email          string `json:"email"`
	FullName       string `json:"fullName"`
	Password       string `json:"password"`
	PasswordRepeat string `json:"passwordRepeat"`
}

func (a *API) AuthRegister(c *gin.Context) {
	requestID := c.MustGet("requestID").(string)

	var data registerBody
	if err := c.ShouldBind(&data); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Invalid request body",
			"requestID": requestID,
		})

		zap.L().Error("Can't bind request body", zap.Error(err), zap.String("requestID", requestID))
		return
	}

	if data.Password != data.PasswordRepeat {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":     "Passwords don't match",
			"requestID": requestID,
		})
		return
	}

	user, err := a.Auth.Register(data.Email, data.FullName, data.Password)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user": user,
	})
}

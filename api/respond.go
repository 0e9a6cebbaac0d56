package api

import (
	"bitwise74/auth-api/internal/apperr"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// fail maps a typed core error onto an HTTP response. Internal failures
// get a generic body so storage details never leak to the caller.
func fail(c *gin.Context, err error) {
	requestID := c.MustGet("requestID").(string)
	status := apperr.Status(err)

	msg := err.Error()
	if status == http.StatusInternalServerError {
		msg = "Internal server error"
		zap.L().Error("Request failed", zap.Error(err), zap.String("requestID", requestID))
	}

	c.JSON(status, gin.H{
		"error":     msg,
		"requestID": requestID,
	})
}

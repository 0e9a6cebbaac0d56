package api

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

func (a *API) UserList(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "20"))
	if err != nil || pageSize < 1 {
		pageSize = 20
	}

	var roles []string
	if raw := c.Query("roles"); raw != "" {
		roles = strings.Split(raw, ",")
	}

	users, total, err := a.Users.List(roles, page, pageSize)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":     users,
		"count":     total,
		"page":      page,
		"pageSize":  pageSize,
		"pageCount": int(math.Ceil(float64(total) / float64(pageSize))),
	})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"salonbot/utils"
)

// Health reports the last dependency snapshot from the health monitor.
// The endpoint itself always answers 200 while the process serves traffic.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":       "ok",
		"dependencies": utils.GetHealthStatus(),
	})
}

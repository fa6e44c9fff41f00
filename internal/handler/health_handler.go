package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Ping is the unauthenticated liveness probe.
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "pong"})
}
